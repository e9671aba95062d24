package githubapi

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func TestRateLimiterAfterResponse(t *testing.T) {
	limiter := newRateLimiter(time.Second)

	header := http.Header{}
	header.Set(headerRateRemaining, "42")
	header.Set(headerRateLimit, "60")
	header.Set(headerRateReset, "1700000000")
	limiter.afterResponse(header)

	state := limiter.snapshot()
	gt.V(t, state.Remaining).Equal(42)
	gt.V(t, state.Limit).Equal(60)
	gt.V(t, state.ResetAt).Equal(time.Unix(1700000000, 0))
}

func TestRateLimiterIgnoresUnrelatedHeaders(t *testing.T) {
	limiter := newRateLimiter(time.Second)

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	limiter.afterResponse(header)

	state := limiter.snapshot()
	gt.V(t, state.Limit).Equal(0)
	gt.V(t, state.Remaining).Equal(0)
}

func TestRateLimiterBeforeRequest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("quota left means no delay", func(t *testing.T) {
		limiter := newRateLimiter(time.Second)
		limiter.nowFn = func() time.Time { return now }

		header := http.Header{}
		header.Set(headerRateRemaining, "10")
		header.Set(headerRateLimit, "60")
		header.Set(headerRateReset, strconv.FormatInt(now.Add(time.Hour).Unix(), 10))
		limiter.afterResponse(header)

		gt.V(t, limiter.beforeRequest()).Equal(time.Duration(0))
	})

	t.Run("exhausted quota waits until reset plus margin", func(t *testing.T) {
		limiter := newRateLimiter(time.Second)
		limiter.nowFn = func() time.Time { return now }

		header := http.Header{}
		header.Set(headerRateRemaining, "0")
		header.Set(headerRateLimit, "60")
		header.Set(headerRateReset, strconv.FormatInt(now.Add(5*time.Second).Unix(), 10))
		limiter.afterResponse(header)

		gt.V(t, limiter.beforeRequest()).Equal(5*time.Second + time.Second)
	})

	t.Run("past reset means no delay", func(t *testing.T) {
		limiter := newRateLimiter(time.Second)
		limiter.nowFn = func() time.Time { return now }

		header := http.Header{}
		header.Set(headerRateRemaining, "0")
		header.Set(headerRateLimit, "60")
		header.Set(headerRateReset, strconv.FormatInt(now.Add(-time.Minute).Unix(), 10))
		limiter.afterResponse(header)

		gt.V(t, limiter.beforeRequest()).Equal(time.Duration(0))
	})
}

func TestHasRateLimitSignal(t *testing.T) {
	t.Run("remaining zero", func(t *testing.T) {
		header := http.Header{}
		header.Set(headerRateRemaining, "0")
		gt.True(t, hasRateLimitSignal(header))
	})

	t.Run("retry-after", func(t *testing.T) {
		header := http.Header{}
		header.Set(headerRetryAfter, "30")
		gt.True(t, hasRateLimitSignal(header))
	})

	t.Run("plain forbidden carries no signal", func(t *testing.T) {
		header := http.Header{}
		header.Set(headerRateRemaining, "55")
		gt.False(t, hasRateLimitSignal(header))
	})
}
