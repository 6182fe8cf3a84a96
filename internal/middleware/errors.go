package middleware

import (
	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

// NotFound answers unknown routes with the standard envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, apperror.ErrRouteNotFound)
	}
}

// Recovery converts panics into a 500 envelope and logs the panic value.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		contextutil.GetLogger(c.Request.Context(), zap.L()).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		abortWithError(c, apperror.ErrInternal)
	})
}
