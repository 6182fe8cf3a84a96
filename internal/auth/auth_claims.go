package auth

import (
	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the session token payload.
type Claims struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into the caller identity carried on the
// request context.
func (c Claims) Identity() (contextutil.Identity, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return contextutil.Identity{}, err
	}
	return contextutil.Identity{
		UserID:   id,
		Username: c.Username,
		Role:     c.Role,
	}, nil
}
