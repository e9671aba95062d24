package config

import (
	"log/slog"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/infra/githubapi"
	"github.com/urfave/cli/v3"
)

// GitHub collects every API client knob. It replaces the original tool's
// globals with explicit configuration passed to the client constructor.
type GitHub struct {
	token    types.GitHubToken `masq:"secret"`
	baseURL  string
	timeout  time.Duration
	cacheTTL time.Duration
	maxPages int64
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub API token (optional; unauthenticated access has a lower quota)",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("GITNAV_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "GitHub API base URL",
			Category:    "GitHub",
			Value:       githubapi.DefaultBaseURL,
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("GITNAV_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-request timeout",
			Category:    "GitHub",
			Value:       10 * time.Second,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("GITNAV_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "In-memory result cache TTL (0 disables caching)",
			Category:    "GitHub",
			Value:       5 * time.Minute,
			Destination: &x.cacheTTL,
			Sources:     cli.EnvVars("GITNAV_CACHE_TTL"),
		},
		&cli.Int64Flag{
			Name:        "max-pages",
			Usage:       "Maximum pages fetched per listing (0 for no cap)",
			Category:    "GitHub",
			Value:       10,
			Destination: &x.maxPages,
			Sources:     cli.EnvVars("GITNAV_MAX_PAGES"),
		},
	}
}

func (x GitHub) New() (*githubapi.Client, error) {
	return githubapi.New(githubapi.Config{
		BaseURL:  x.baseURL,
		Token:    x.token,
		Timeout:  x.timeout,
		CacheTTL: x.cacheTTL,
		MaxPages: int(x.maxPages),
	})
}

// Authenticated reports whether a token was supplied.
func (x GitHub) Authenticated() bool {
	return x.token != ""
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", x.baseURL),
		slog.Int("token.len", len(x.token)),
		slog.Duration("timeout", x.timeout),
		slog.Duration("cacheTTL", x.cacheTTL),
		slog.Int64("maxPages", x.maxPages),
	)
}
