package auth

import (
	"net/http"

	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/shared/request"
	"github.com/cuti-management/backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		writeServiceError(c, appErr)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout is stateless; the client discards its token.
func (h *Handler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, http.StatusOK, "Logout berhasil", nil)
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := contextutil.GetIdentity(c.Request.Context())
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), identity.UserID.String())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
