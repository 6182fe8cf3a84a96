package usererrors

import (
	"net/http"

	"github.com/cuti-management/backend/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengguna tidak ditemukan",
		http.StatusNotFound,
	)

	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username sudah digunakan",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role tidak valid",
		http.StatusBadRequest,
	)
)
