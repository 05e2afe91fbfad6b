package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/middleware"
	"github.com/unations/tax-engine/internal/types/api/responses"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCorrelationIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin":     middleware.GetCorrelationID(c),
			"context": middleware.CorrelationIDFromContext(c.Request.Context()),
		})
	})

	t.Run("propagates caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.CorrelationIDHeader, "corr-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "corr-123", w.Header().Get(middleware.CorrelationIDHeader))
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "corr-123", body["gin"])
		assert.Equal(t, "corr-123", body["context"])
	})

	t.Run("mints id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(middleware.CorrelationIDHeader)
		assert.Len(t, id, 36)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, id, body["context"])
	})

	t.Run("falls back to gateway request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.RequestIDHeader, "apigw-42")
		router.ServeHTTP(w, req)

		assert.Equal(t, "apigw-42", w.Header().Get(middleware.CorrelationIDHeader))
	})

	t.Run("replaces unusable id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.CorrelationIDHeader, "has spaces in it")
		router.ServeHTTP(w, req)

		id := w.Header().Get(middleware.CorrelationIDHeader)
		assert.NotEqual(t, "has spaces in it", id)
		assert.Len(t, id, 36)
	})
}

func TestRateLimiter(t *testing.T) {
	newRouter := func(rl *middleware.RateLimiter) *gin.Engine {
		router := gin.New()
		router.Use(middleware.CorrelationIDMiddleware(), rl.Middleware())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}
	do := func(router *gin.Engine, path, forwardedFor string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Forwarded-For", forwardedFor)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allows requests within burst", func(t *testing.T) {
		router := newRouter(middleware.NewRateLimiter(10, 20))
		for i := 0; i < 10; i++ {
			w := do(router, "/test", "192.168.1.1")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "20", w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("blocks requests beyond burst", func(t *testing.T) {
		router := newRouter(middleware.NewRateLimiter(0.001, 2))
		assert.Equal(t, http.StatusOK, do(router, "/test", "192.168.1.2").Code)
		assert.Equal(t, http.StatusOK, do(router, "/test", "192.168.1.2").Code)

		w := do(router, "/test", "192.168.1.2")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))

		var body responses.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "rate_limited", body.Code)
		assert.NotEmpty(t, body.CorrelationID)
	})

	t.Run("buckets are per client", func(t *testing.T) {
		router := newRouter(middleware.NewRateLimiter(0.001, 1))
		assert.Equal(t, http.StatusOK, do(router, "/test", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, do(router, "/test", "10.0.0.1, 10.9.9.9").Code)
		assert.Equal(t, http.StatusOK, do(router, "/test", "10.0.0.2").Code)
	})

	t.Run("health is never limited", func(t *testing.T) {
		router := newRouter(middleware.NewRateLimiter(0.001, 1))
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, do(router, "/health", "10.0.0.3").Code)
		}
	})
}

func TestLoggingMiddlewarePreservesBody(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware(), middleware.EnhancedLoggingMiddleware(true), middleware.RequestLoggingMiddleware())
	router.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, body)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"holder_name":"Jane Doe","jurisdiction":"ON"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"holder_name":"Jane Doe","jurisdiction":"ON"}`, w.Body.String())
}
