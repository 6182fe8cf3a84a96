package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/middleware"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	identity contextutil.Identity
	err      error
	gotToken string
}

func (f *fakeAuthenticator) Authenticate(token string) (contextutil.Identity, error) {
	f.gotToken = token
	return f.identity, f.err
}

type envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	t.Run("missing header", func(t *testing.T) {
		router := setupRouter()
		router.GET("/p", middleware.AuthMiddleware(&fakeAuthenticator{}), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token tidak ditemukan", decodeEnvelope(t, w).Message)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		router := setupRouter()
		router.GET("/p", middleware.AuthMiddleware(&fakeAuthenticator{}), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token tidak ditemukan", decodeEnvelope(t, w).Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		router := setupRouter()
		router.GET("/p", middleware.AuthMiddleware(&fakeAuthenticator{err: errors.New("bad")}), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		env := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Token tidak valid", env.Message)
	})

	t.Run("valid token propagates identity", func(t *testing.T) {
		authn := &fakeAuthenticator{identity: contextutil.Identity{UserID: userID, Username: "john", Role: domain.RoleUser}}
		router := setupRouter()

		var got contextutil.Identity
		router.GET("/p", middleware.AuthMiddleware(authn), func(c *gin.Context) {
			got, _ = contextutil.GetIdentity(c.Request.Context())
			assert.Equal(t, userID.String(), c.GetString(middleware.ContextUserID))
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "good-token", authn.gotToken)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, domain.RoleUser, got.Role)
	})
}
