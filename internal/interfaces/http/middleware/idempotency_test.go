package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-upi.backend/internal/interfaces/http/middleware"
	"smart-upi.backend/pkg/redis"
)

func newIdempotentRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	calls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", middleware.IdempotencyMiddleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	return r, &calls
}

func doPost(r *gin.Engine, idempotencyKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyHeader, idempotencyKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	r, calls := newIdempotentRouter(t)

	first := doPost(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, *calls)

	second := doPost(r, "key-1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replay"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls, "handler must not run again")
}

func TestIdempotency_DistinctKeysRunSeparately(t *testing.T) {
	r, calls := newIdempotentRouter(t)

	doPost(r, "key-1")
	doPost(r, "key-2")
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	r, calls := newIdempotentRouter(t)

	doPost(r, "")
	doPost(r, "")
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_ErrorResponsesAreNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	calls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", middleware.IdempotencyMiddleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusBadRequest, gin.H{"message": "nope"})
	})

	first := doPost(r, "key-1")
	require.Equal(t, http.StatusBadRequest, first.Code)

	second := doPost(r, "key-1")
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, 2, calls, "failed requests should be retryable")
}

func TestIdempotency_NoRedisPassesThrough(t *testing.T) {
	redis.SetClient(nil)

	calls := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", middleware.IdempotencyMiddleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	doPost(r, "key-1")
	doPost(r, "key-1")
	assert.Equal(t, 2, calls)
}
