package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	if key != "" {
		req.Header.Set(middleware.HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	userID := uuid.New()
	var calls int32
	router := setupRouter()
	router.POST("/leaves", withIdentity(userID, domain.RoleUser), middleware.Idempotency(rdb), func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusCreated, gin.H{"success": true, "n": n})
	})

	first := postWithKey(router, "abc")
	second := postWithKey(router, "abc")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.HeaderReplayed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotency_KeyIsScopedPerUser(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	var calls int32
	handler := func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusCreated, gin.H{"success": true, "n": n})
	}
	router := setupRouter()
	router.POST("/leaves", withIdentity(uuid.New(), domain.RoleUser), middleware.Idempotency(rdb), handler)
	other := setupRouter()
	other.POST("/leaves", withIdentity(uuid.New(), domain.RoleUser), middleware.Idempotency(rdb), handler)

	first := postWithKey(router, "abc")
	second := postWithKey(other, "abc")

	assert.NotEqual(t, first.Body.String(), second.Body.String())
	assert.Empty(t, second.Header().Get(middleware.HeaderReplayed))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_DoesNotStoreFailures(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	var calls int32
	router := setupRouter()
	router.POST("/leaves", withIdentity(uuid.New(), domain.RoleUser), middleware.Idempotency(rdb), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
	})

	postWithKey(router, "k1")
	postWithKey(router, "k1")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	_, rdb := newMiniredisClient(t)

	var calls int32
	router := setupRouter()
	router.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.Status(http.StatusCreated)
	})

	postWithKey(router, "")
	postWithKey(router, "")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_NilClientDisabled(t *testing.T) {
	router := setupRouter()
	router.POST("/leaves", middleware.Idempotency(nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := postWithKey(router, "abc")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_RedisErrorFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/leaves::abc").SetErr(errors.New("connection refused"))

	router := setupRouter()
	router.POST("/leaves", middleware.Idempotency(db), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := postWithKey(router, "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_LockHeldReturnsConflict(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/leaves::abc").RedisNil()
	mock.ExpectSetNX("idemp:/leaves::abc:lock", "locked", 30*time.Second).SetVal(false)

	router := setupRouter()
	router.POST("/leaves", middleware.Idempotency(db), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := postWithKey(router, "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
