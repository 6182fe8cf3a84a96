package user

import (
	"errors"
	"strings"

	usererrors "github.com/cuti-management/backend/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_username" {
			return usererrors.ErrUsernameTaken
		}
	}

	// sqlite and drivers that do not expose a typed error
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_username") {
		return usererrors.ErrUsernameTaken
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "users.username") {
		return usererrors.ErrUsernameTaken
	}

	return err
}
