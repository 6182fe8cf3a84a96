package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cuti-management/backend/internal/auth"
	autherrors "github.com/cuti-management/backend/internal/auth/errors"
	authMock "github.com/cuti-management/backend/internal/auth/mock"
	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/user"
)

type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	return gin.New()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var res apiResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("Success Login", func(t *testing.T) {
		reqBody := auth.LoginRequest{Username: "john", Password: "user123"}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Login(gomock.Any(), "john", "user123").
			Return(auth.LoginResponse{Token: "signed", User: user.UserPublic{ID: uuid.NewString(), Username: "john", Role: domain.RoleUser}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		res := decode(t, w)
		assert.True(t, res.Success)

		var data auth.LoginResponse
		assert.NoError(t, json.Unmarshal(res.Data, &data))
		assert.Equal(t, "signed", data.Token)
		assert.Equal(t, "john", data.User.Username)
	})

	t.Run("Failed Login - Validation Error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decode(t, w)
		assert.False(t, res.Success)
		assert.Equal(t, "Validasi gagal", res.Message)
		assert.Equal(t, []string{"Username wajib diisi"}, res.Errors["username"])
		assert.Equal(t, []string{"Password wajib diisi"}, res.Errors["password"])
	})

	t.Run("Failed Login - Invalid Credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		body, _ := json.Marshal(auth.LoginRequest{Username: "john", Password: "nope"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Username atau password salah", decode(t, w).Message)
	})
}

func TestHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := auth.NewHandler(authMock.NewMockService(ctrl))
	router := setupAuthRouter()
	router.POST("/logout", handler.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.True(t, res.Success)
	assert.Equal(t, "Logout berhasil", res.Message)
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	userID := uuid.New()

	router := setupAuthRouter()
	router.GET("/me", func(c *gin.Context) {
		ctx := contextutil.WithIdentity(c.Request.Context(), contextutil.Identity{UserID: userID, Username: "john", Role: domain.RoleUser})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, handler.Me)

	mockService.EXPECT().
		GetMe(gomock.Any(), userID.String()).
		DoAndReturn(func(_ context.Context, id string) (user.UserPublic, error) {
			return user.UserPublic{ID: id, Username: "john"}, nil
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var data user.UserPublic
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, userID.String(), data.ID)
}
