package githubapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// retryPolicy wraps transport and rateLimiter: it classifies each outcome,
// decides retry vs give up, and bounds the attempt budget.
type retryPolicy struct {
	transport   *transport
	limiter     *rateLimiter
	maxAttempts int
	backoffBase time.Duration
}

func newRetryPolicy(cfg Config, tp *transport, limiter *rateLimiter) *retryPolicy {
	return &retryPolicy{
		transport:   tp,
		limiter:     limiter,
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
	}
}

// execute runs one logical request through the full attempt budget. It
// returns the first 2xx response, fails fast on non-retryable statuses, and
// wraps the last retryable cause in ErrRetryExhausted once the budget is
// spent.
func (x *retryPolicy) execute(ctx context.Context, path string, query url.Values) (*apiResponse, error) {
	backoff := x.backoffBase
	var lastErr error

	for attempt := 0; attempt < x.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
		}

		if delay := x.limiter.beforeRequest(); delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		resp, err := x.transport.send(ctx, path, query)
		if err != nil {
			if errors.Is(err, types.ErrNetwork) {
				lastErr = err
				continue
			}
			return nil, err
		}

		x.limiter.afterResponse(resp.Header)

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil

		case (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) && hasRateLimitSignal(resp.Header):
			lastErr = goerr.Wrap(types.ErrRateLimited, "quota exhausted",
				goerr.V("status", resp.StatusCode),
				goerr.V("reset", x.limiter.snapshot().ResetAt),
			)
			continue

		case resp.StatusCode >= 500:
			lastErr = goerr.Wrap(types.ErrServerError, "server failure",
				goerr.V("status", resp.StatusCode),
				goerr.V("path", path),
			)
			continue

		default:
			return nil, goerr.Wrap(types.ErrClientError, "request rejected",
				goerr.V("status", resp.StatusCode),
				goerr.V("path", path),
				goerr.V("message", apiErrorMessage(resp.Body)),
			)
		}
	}

	return nil, goerr.Wrap(types.ErrRetryExhausted, "giving up",
		goerr.V("attempts", x.maxAttempts),
		goerr.V("lastError", lastErr),
	)
}

// apiErrorMessage extracts the API's human-readable message from an error
// payload, best effort.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "canceled while waiting to retry")
	case <-timer.C:
		return nil
	}
}
