package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/SscSPs/social_media_app/internal/metrics"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	var got *slog.Logger
	r.GET("/ping", func(c *gin.Context) {
		got = middleware.GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.NotNil(t, got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewRateLimiter("2-M", nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/users/login", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewRateLimiter("often", nil)
	assert.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(middleware.MetricsMiddleware(m))
	r.GET("/users/:username", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/alice", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "/users/:username", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "unmatched", "404")))
}

type trackedEvent struct {
	userID, event string
}

type eventRecorder struct {
	events []trackedEvent
}

func (r *eventRecorder) Track(_ context.Context, userID, event string, _ map[string]any) {
	r.events = append(r.events, trackedEvent{userID, event})
}

func TestRequestTrackingMiddleware(t *testing.T) {
	rec := &eventRecorder{}
	r := gin.New()
	r.Use(middleware.RequestTrackingMiddleware(rec))
	r.GET("/users/me", func(c *gin.Context) {
		middleware.SetAuthenticatedUser(c, &domain.TokenPayload{UserID: "u1"})
		c.Status(http.StatusOK)
	})
	r.GET("/users/:username", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/users/follow/:user_id", func(c *gin.Context) {
		middleware.SetAuthenticatedUser(c, &domain.TokenPayload{UserID: "u1"})
		c.Status(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/me", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/bob", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/users/follow/u2", nil))

	assert.Equal(t, []trackedEvent{{"u1", "users_me"}}, rec.events)
}
