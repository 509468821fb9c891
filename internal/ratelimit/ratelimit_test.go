package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinuteWindow(t *testing.T) {
	rl := NewRateLimiter(2, 0)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ok, _ := rl.AllowAt(start)
	assert.True(t, ok)
	ok, _ = rl.AllowAt(start.Add(10 * time.Second))
	assert.True(t, ok)

	ok, wait := rl.AllowAt(start.Add(20 * time.Second))
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, wait)

	ok, _ = rl.AllowAt(start.Add(61 * time.Second))
	assert.True(t, ok)
}

func TestRateLimiterHourWindow(t *testing.T) {
	rl := NewRateLimiter(0, 3)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ok, _ := rl.AllowAt(start.Add(time.Duration(i) * time.Minute))
		require.True(t, ok)
	}
	ok, _ := rl.AllowAt(start.Add(30 * time.Minute))
	assert.False(t, ok)
	ok, _ = rl.AllowAt(start.Add(61 * time.Minute))
	assert.True(t, ok)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 0, true)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.False(t, ok)
	ok, _ = l.Allow("b")
	assert.True(t, ok)

	stats := l.GetStats("a")
	assert.Equal(t, 2, stats.TrackedCallers)
	assert.Equal(t, 1, stats.RequestsLastMinute)
	assert.Equal(t, 0, stats.RemainingThisMinute)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 2, l.Prune())
	assert.Equal(t, 0, l.GetStats("a").TrackedCallers)
}

func TestLimiterDisabled(t *testing.T) {
	l := New(1, 1, false)
	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("a")
		assert.True(t, ok)
	}
	assert.False(t, l.GetStats("a").Enabled)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(New(1, 0, true)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if user != "" {
			req.Header.Set(CallerHeader, user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do("alice").Code)
	w := do("alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusNoContent, do("bob").Code)
	assert.Equal(t, http.StatusNoContent, do("").Code)
}
