package middleware

import (
	"strings"

	autherrors "github.com/cuti-management/backend/internal/auth/errors"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin keys set once the bearer token is verified.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenAuthenticator turns a raw bearer token into the caller identity.
type TokenAuthenticator interface {
	Authenticate(token string) (contextutil.Identity, error)
}

func AuthMiddleware(authn TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		identity, err := authn.Authenticate(tokenString)
		if err != nil {
			abortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, identity.UserID.String())
		c.Set(ContextRole, identity.Role.String())

		// identitas diteruskan lewat context, bukan mutasi request
		ctx := contextutil.WithIdentity(c.Request.Context(), identity)
		l := contextutil.GetLogger(ctx, zap.L())
		ctx = contextutil.WithLogger(ctx, l.With(zap.String("user_id", identity.UserID.String())))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
