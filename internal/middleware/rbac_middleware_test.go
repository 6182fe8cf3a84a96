package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/middleware"
	rbacMock "github.com/cuti-management/backend/internal/rbac/mock"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func withIdentity(userID uuid.UUID, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := contextutil.WithIdentity(c.Request.Context(), contextutil.Identity{UserID: userID, Username: "x", Role: role})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func TestRBACAuthorize(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rbacMock.NewMockService(ctrl)
		svc.EXPECT().
			Enforce(domain.EnforceRequest{Role: domain.RoleAdmin, Resource: domain.ResourceAdminLeave, Action: domain.ActionApprove}).
			Return(true, nil)

		router := setupRouter()
		router.PUT("/a", withIdentity(uuid.New(), domain.RoleAdmin), middleware.RBACAuthorize(svc, domain.ResourceAdminLeave, domain.ActionApprove), ok)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/a", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied gives admin only message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rbacMock.NewMockService(ctrl)
		svc.EXPECT().Enforce(gomock.Any()).Return(false, nil)

		router := setupRouter()
		router.PUT("/a", withIdentity(uuid.New(), domain.RoleUser), middleware.RBACAuthorize(svc, domain.ResourceAdminLeave, domain.ActionApprove), ok)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/a", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Akses ditolak. Hanya admin yang diizinkan.", decodeEnvelope(t, w).Message)
	})

	t.Run("enforcer error is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rbacMock.NewMockService(ctrl)
		svc.EXPECT().Enforce(gomock.Any()).Return(false, errors.New("boom"))

		router := setupRouter()
		router.GET("/a", withIdentity(uuid.New(), domain.RoleUser), middleware.RBACAuthorize(svc, domain.ResourceLeave, domain.ActionRead), ok)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rbacMock.NewMockService(ctrl)

		router := setupRouter()
		router.GET("/a", middleware.RBACAuthorize(svc, domain.ResourceLeave, domain.ActionRead), ok)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
