package leave

import (
	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// export membangun workbook penuh, dibatasi per admin
const (
	exportRatePerSec = 0.2
	exportBurst      = 2
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.TokenAuthenticator,
	rbacService middleware.RBACService,
	rdb redis.UniversalClient,
) {
	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware(authn))

	leaves := authed.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetMine)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetByID)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionDelete), handler.Delete)
	}

	authed.GET("/user/stats", middleware.RBACAuthorize(rbacService, domain.ResourceUserStats, domain.ActionRead), handler.UserStats)

	admin := authed.Group("/admin")
	{
		admin.GET("/leaves", middleware.RBACAuthorize(rbacService, domain.ResourceAdminLeave, domain.ActionRead), handler.GetAll)
		admin.GET("/leaves/export",
			middleware.RBACAuthorize(rbacService, domain.ResourceAdminLeave, domain.ActionExport),
			middleware.RateLimitByUser(rate.Limit(exportRatePerSec), exportBurst),
			handler.Export,
		)
		admin.PUT("/leaves/:id/approve", middleware.RBACAuthorize(rbacService, domain.ResourceAdminLeave, domain.ActionApprove), handler.Approve)
		admin.PUT("/leaves/:id/reject", middleware.RBACAuthorize(rbacService, domain.ResourceAdminLeave, domain.ActionApprove), handler.Reject)
		admin.GET("/stats", middleware.RBACAuthorize(rbacService, domain.ResourceAdminStats, domain.ActionRead), handler.AdminStats)
	}
}
