package leaveerrors

import (
	"net/http"

	"github.com/cuti-management/backend/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengajuan cuti tidak ditemukan",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Anda tidak memiliki akses",
		http.StatusForbidden,
	)
	ErrOnlyPendingDeletable = apperror.New(
		apperror.CodeInvalidState,
		"Hanya pengajuan pending yang dapat dihapus",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Pengajuan sudah diproses",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format tanggal harus YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Alasan penolakan wajib diisi",
		http.StatusBadRequest,
	)
)
