package githubapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
)

// Rate limit headers per the GitHub REST convention.
const (
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateReset     = "X-RateLimit-Reset"
	headerRetryAfter    = "Retry-After"
)

// rateLimiter tracks quota signals across requests. It is the single source
// of truth for the observed RateLimit state; the mutex keeps it consistent
// should requests ever run concurrently.
type rateLimiter struct {
	mu     sync.Mutex
	state  model.RateLimit
	margin time.Duration
	nowFn  func() time.Time
}

func newRateLimiter(margin time.Duration) *rateLimiter {
	return &rateLimiter{
		margin: margin,
		nowFn:  time.Now,
	}
}

// beforeRequest returns how long to wait before the next attempt. Non-zero
// only when the last observed quota was exhausted and its reset is still in
// the future.
func (x *rateLimiter) beforeRequest() time.Duration {
	x.mu.Lock()
	defer x.mu.Unlock()

	now := x.nowFn()
	if !x.state.Exhausted(now) {
		return 0
	}
	return x.state.ResetAt.Sub(now) + x.margin
}

// afterResponse updates quota state from response headers. Called for every
// attempt regardless of status so bookkeeping stays accurate on failures.
func (x *rateLimiter) afterResponse(header http.Header) {
	remaining, okRemaining := parseIntHeader(header, headerRateRemaining)
	limit, okLimit := parseIntHeader(header, headerRateLimit)
	reset, okReset := parseIntHeader(header, headerRateReset)
	if !okRemaining && !okLimit && !okReset {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if okRemaining {
		x.state.Remaining = remaining
	}
	if okLimit {
		x.state.Limit = limit
	}
	if okReset {
		x.state.ResetAt = time.Unix(int64(reset), 0)
	}
}

// snapshot returns the current state for rendering. No network call.
func (x *rateLimiter) snapshot() model.RateLimit {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

func parseIntHeader(header http.Header, key string) (int, bool) {
	raw := header.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// hasRateLimitSignal reports whether a 403/429 response carries evidence of
// quota exhaustion rather than plain forbidden access.
func hasRateLimitSignal(header http.Header) bool {
	if remaining, ok := parseIntHeader(header, headerRateRemaining); ok && remaining == 0 {
		return true
	}
	return header.Get(headerRetryAfter) != ""
}
