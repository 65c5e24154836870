package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(rl *RateLimiter) http.Handler {
	return Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), rl.Middleware())
}

func doRequest(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimitConfig{RPS: 1, Burst: 3})
	h := newTestHandler(rl)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, h, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimitConfig{RPS: 1, Burst: 2})
	h := newTestHandler(rl)

	doRequest(t, h, "10.0.0.1:1234")
	doRequest(t, h, "10.0.0.1:1234")
	rec := doRequest(t, h, "10.0.0.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `{"code":429,"message":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimitConfig{RPS: 1, Burst: 1})
	h := newTestHandler(rl)

	require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, h, "10.0.0.1:1234").Code)

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.2:1234").Code)
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimitConfig{RPS: 100, Burst: 1})
	h := newTestHandler(rl)

	require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, h, "10.0.0.1:1234").Code)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.1:1234").Code)
}
