package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/redis"
)

// countingLimiter overrides only the rate-limit call; embedding the nil
// interface keeps the compiler happy about the methods the middleware
// never touches.
type countingLimiter struct {
	redis.ServiceInterface
	count int
	limit int
	err   error
}

func (f *countingLimiter) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.count++
	return f.count <= f.limit, nil
}

func rateLimitedRouter(service redis.ServiceInterface, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(service, limit))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doPing(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddlewareWithoutRedis(t *testing.T) {
	r := rateLimitedRouter(nil, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPing(r).Code)
	}
}

func TestRateLimitMiddlewareBlocksOverLimit(t *testing.T) {
	r := rateLimitedRouter(&countingLimiter{limit: 2}, 2)

	assert.Equal(t, http.StatusOK, doPing(r).Code)
	assert.Equal(t, http.StatusOK, doPing(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(r).Code)
}

func TestRateLimitMiddlewareFailsOpenOnRedisError(t *testing.T) {
	r := rateLimitedRouter(&countingLimiter{err: errors.New("connection refused")}, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPing(r).Code)
	}
}
