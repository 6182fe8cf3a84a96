package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Data tidak ditemukan",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		CodeNotFound,
		"Endpoint tidak ditemukan",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Anda tidak memiliki akses",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal Server Error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Autentikasi diperlukan",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Input tidak valid",
		http.StatusBadRequest,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"Layanan tidak tersedia",
		http.StatusServiceUnavailable,
	)
)
