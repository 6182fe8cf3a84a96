package auth

import (
	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/user"
)

func init() {
	apperror.RegisterFieldMessages(map[string]string{
		"username": "Username wajib diisi",
		"password": "Password wajib diisi",
	})
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  user.UserPublic `json:"user"`
}
