package leave

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/shared/request"
	"github.com/cuti-management/backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	log := contextutil.GetLogger(c.Request.Context(), h.logger)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		log.Error("leave request failed", append(fields, zap.Error(err))...)
	} else {
		log.Warn("leave request failed", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// identity is set by the auth middleware; a missing one means the route was
// mounted without it.
func (h *Handler) identity(c *gin.Context) (contextutil.Identity, bool) {
	id, ok := contextutil.GetIdentity(c.Request.Context())
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) GetMine(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	var q ListQuery
	if appErr := request.BindQuery(c, &q); appErr != nil {
		h.writeServiceError(c, appErr)
		return
	}

	resp, err := h.service.GetByUser(c.Request.Context(), id.UserID, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateLeaveRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		h.writeServiceError(c, appErr)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Pengajuan cuti berhasil dibuat", resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"), &id.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), id.UserID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Pengajuan cuti berhasil dihapus", nil)
}

func (h *Handler) UserStats(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	resp, err := h.service.GetUserStats(c.Request.Context(), id.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q AdminListQuery
	if appErr := request.BindQuery(c, &q); appErr != nil {
		h.writeServiceError(c, appErr)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), id.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Pengajuan cuti berhasil disetujui", resp)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	var req RejectLeaveRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		h.writeServiceError(c, appErr)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), id.UserID, req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Pengajuan cuti ditolak", resp)
}

func (h *Handler) AdminStats(c *gin.Context) {
	resp, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Export(c *gin.Context) {
	var q AdminListQuery
	if appErr := request.BindQuery(c, &q); appErr != nil {
		h.writeServiceError(c, appErr)
		return
	}

	buf, err := h.service.Export(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("pengajuan-cuti-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, ExportContentType, buf.Bytes())
}
