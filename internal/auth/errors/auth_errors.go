package autherrors

import (
	"net/http"

	"github.com/cuti-management/backend/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Username atau password salah",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token tidak valid",
		http.StatusUnauthorized,
	)

	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token tidak ditemukan",
		http.StatusUnauthorized,
	)

	ErrAdminOnly = apperror.New(
		apperror.CodeForbidden,
		"Akses ditolak. Hanya admin yang diizinkan.",
		http.StatusForbidden,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Gagal membuat token",
		http.StatusInternalServerError,
	)
)
