package intervals

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Header names the API uses to announce the request quota.
const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// rateLimitTracker records the most recent quota signal seen on any
// response. Values are last-write-wins; under concurrent calls they reflect
// whichever response arrived last.
type rateLimitTracker struct {
	mu        sync.Mutex
	remaining *int
	reset     *time.Time
}

func newRateLimitTracker() *rateLimitTracker {
	return &rateLimitTracker{}
}

// update reads the quota headers from a response. Missing or non-numeric
// headers leave the corresponding stored value unchanged.
func (t *rateLimitTracker) update(h http.Header) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v := h.Get(headerRateLimitRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			t.remaining = &n
		}
	}
	if v := h.Get(headerRateLimitReset); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			at := time.Unix(epoch, 0)
			t.reset = &at
		}
	}
}

// Remaining returns the last observed remaining request count. ok is false
// until a response carrying the header has been seen.
func (t *rateLimitTracker) Remaining() (remaining int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining == nil {
		return 0, false
	}
	return *t.remaining, true
}

// Reset returns the last observed quota reset time. ok is false until a
// response carrying the header has been seen.
func (t *rateLimitTracker) Reset() (reset time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reset == nil {
		return time.Time{}, false
	}
	return *t.reset, true
}

// rateLimiter is an optional local token bucket for callers who want to
// stay under the published quota without watching the headers themselves.
// Unlike the server-side tracker it gates requests before they are sent.
type rateLimiter struct {
	limiter        *rate.Limiter
	isAutoLimiting atomic.Bool
}

// newRateLimiter initializes a token bucket sized to 60 requests per
// minute. Disabled by default; the client never queues requests unless
// WithRateLimiting(true) is set.
func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(1), 60),
	}
	rl.isAutoLimiting.Store(false)
	return rl
}

// Wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) Wait(ctx context.Context) error {
	if !rl.isAutoLimiting.Load() {
		return nil
	}
	return rl.limiter.Wait(ctx)
}

// SetAutoLimiting enables or disables the local limiter.
func (rl *rateLimiter) SetAutoLimiting(enabled bool) {
	rl.isAutoLimiting.Store(enabled)
}
