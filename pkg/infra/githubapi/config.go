package githubapi

import (
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/types"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	defaultTimeout     = 10 * time.Second
	defaultCacheTTL    = 5 * time.Minute
	defaultMaxAttempts = 4
	defaultBackoffBase = 500 * time.Millisecond
	defaultRateMargin  = time.Second
	defaultPerPage     = 100
	defaultMaxPages    = 10
	defaultUserAgent   = "gitnav"
)

// Config carries every knob of the API client. It replaces the original
// tool's process-wide globals; the CLI builds one from flags and passes it to
// New.
type Config struct {
	// BaseURL is the API root. Overridable for GitHub Enterprise and tests.
	BaseURL string

	// Token is attached as a bearer credential when non-empty. Absence means
	// unauthenticated access with a lower quota.
	Token types.GitHubToken

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// CacheTTL bounds how long listings are served from memory. Zero
	// disables caching.
	CacheTTL time.Duration

	// MaxAttempts bounds retries per logical request, the first attempt
	// included.
	MaxAttempts int

	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration

	// RateLimitMargin is added on top of the reported reset time before the
	// next attempt after quota exhaustion.
	RateLimitMargin time.Duration

	// PerPage is the page size requested from list endpoints.
	PerPage int

	// MaxPages caps pagination per listing. Zero means no cap.
	MaxPages int

	UserAgent string
}

func (x Config) withDefaults() Config {
	if x.BaseURL == "" {
		x.BaseURL = DefaultBaseURL
	}
	if x.Timeout <= 0 {
		x.Timeout = defaultTimeout
	}
	if x.MaxAttempts <= 0 {
		x.MaxAttempts = defaultMaxAttempts
	}
	if x.BackoffBase <= 0 {
		x.BackoffBase = defaultBackoffBase
	}
	if x.RateLimitMargin <= 0 {
		x.RateLimitMargin = defaultRateMargin
	}
	if x.PerPage <= 0 {
		x.PerPage = defaultPerPage
	}
	if x.MaxPages < 0 {
		x.MaxPages = 0
	}
	if x.UserAgent == "" {
		x.UserAgent = defaultUserAgent
	}
	return x
}
