package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestGetClientIP(t *testing.T) {
	r := gin.New()
	var got string
	r.GET("/", func(c *gin.Context) { got = getClientIP(c) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.10", got)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/send", RateLimitMiddleware(2), okHandler)

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("X-Real-IP", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/bookings", JWTAuthAdminMiddleware("s3cret"), okHandler)

	get := func(auth string) int {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	token, err := utils.GenerateAdminToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	forged, err := utils.GenerateAdminToken("wrong", "ops", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(""))
	assert.Equal(t, http.StatusUnauthorized, get("Basic abc"))
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+forged))
	assert.Equal(t, http.StatusOK, get("Bearer "+token))
}

func TestJWTAuthAdminMiddleware_Disabled(t *testing.T) {
	r := gin.New()
	r.GET("/bookings", JWTAuthAdminMiddleware(""), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	var scoped any
	r.GET("/", func(c *gin.Context) {
		scoped, _ = c.Get(LoggerKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.IsType(t, &zap.Logger{}, scoped)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRateLimiterStore_EvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return now }
	store.lastSweep = now

	first := store.getLimiter("198.51.100.1")
	store.getLimiter("198.51.100.2")
	assert.Equal(t, 2, store.size())
	assert.Same(t, first, store.getLimiter("198.51.100.1"))

	now = now.Add(limiterIdleTTL / 2)
	store.getLimiter("198.51.100.1")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	store.getLimiter("198.51.100.3")

	// .2 was idle past the TTL; .1 was seen half a TTL ago.
	assert.Equal(t, 2, store.size())
	assert.Same(t, first, store.getLimiter("198.51.100.1"))
}
