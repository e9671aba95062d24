package interfaces

import (
	"context"
	"net/http"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
)

// GitHub is the single entry point the presentation layer uses for API
// access. Implementations own pagination, retries, rate limiting, and
// caching; callers only see mapped entities or structured errors.
type GitHub interface {
	ListRepositories(ctx context.Context, owner string) ([]*model.Repository, error)
	SearchRepositories(ctx context.Context, owner, query string) ([]*model.Repository, error)
	GetIssues(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error)
	GetReleases(ctx context.Context, owner, repo string) ([]*model.Release, error)
	GetUserProfile(ctx context.Context, owner string) (*model.UserProfile, error)
	GetReadme(ctx context.Context, owner, repo string) (*model.Readme, error)
	DownloadAsset(ctx context.Context, asset *model.Asset, opt DownloadOptions) (int64, error)

	// RateLimit returns the most recently observed quota state without
	// touching the network.
	RateLimit() model.RateLimit

	// InvalidateCache drops every cached listing. Used by the explicit
	// refresh action in the menu.
	InvalidateCache()
}

// ProgressFunc receives the running byte count after each written chunk.
// total is -1 when the server did not report a content length.
type ProgressFunc func(written, total int64)

type DownloadOptions struct {
	Destination string
	Overwrite   bool
	OnProgress  ProgressFunc
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
