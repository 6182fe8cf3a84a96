package auth

import (
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn middleware.TokenAuthenticator, loginRate config.LoginRateConfig) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(loginRate.PerSecond), loginRate.Burst), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(authn), handler.Me)
	}
}
