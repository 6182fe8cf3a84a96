package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const readinessTimeout = 3 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type LivenessResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	db     Pinger
	rdb    redis.UniversalClient
	now    func() time.Time
	logger *zap.Logger
}

// NewHandler; rdb may be nil when redis is not configured.
func NewHandler(db Pinger, rdb redis.UniversalClient, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{db: db, rdb: rdb, now: time.Now, logger: l}
}

func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "error"
		ready = false
		h.logger.Warn("database ping failed", zap.Error(err))
	} else {
		checks["database"] = "ok"
	}

	if h.rdb == nil {
		checks["redis"] = "not configured"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		checks["redis"] = "error"
		ready = false
		h.logger.Warn("redis ping failed", zap.Error(err))
	} else {
		checks["redis"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "not_ready", Checks: checks})
		return
	}
	c.JSON(http.StatusOK, ReadinessResponse{Status: "ready", Checks: checks})
}

func RegisterRoutes(r gin.IRoutes, handler *Handler) {
	r.GET("/health", handler.Liveness)
	r.GET("/health/ready", handler.Readiness)
}
