// Package githubapi implements the resilient GitHub REST access layer:
// transport, rate limiting, retries, pagination, caching, response mapping,
// and streaming asset downloads behind a single client.
package githubapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/infra/cache"
	"github.com/0xb0rn3/gitnav/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type Client struct {
	cfg        Config
	limiter    *rateLimiter
	retry      *retryPolicy
	pager      *paginator
	downloader *downloader
	store      cache.Cache
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*options)

type options struct {
	httpClient interfaces.HTTPClient
	store      cache.Cache
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// script transport outcomes.
func WithHTTPClient(httpClient interfaces.HTTPClient) Option {
	return func(x *options) {
		x.httpClient = httpClient
	}
}

// WithCache replaces the result cache.
func WithCache(store cache.Cache) Option {
	return func(x *options) {
		x.store = store
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()

	opt := &options{
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(opt)
	}
	if opt.store == nil {
		if cfg.CacheTTL > 0 {
			opt.store = cache.NewMemory()
		} else {
			opt.store = cache.NewNull()
		}
	}

	tp, err := newTransport(cfg, opt.httpClient)
	if err != nil {
		return nil, err
	}

	limiter := newRateLimiter(cfg.RateLimitMargin)
	retry := newRetryPolicy(cfg, tp, limiter)

	return &Client{
		cfg:        cfg,
		limiter:    limiter,
		retry:      retry,
		pager:      newPaginator(cfg, retry),
		downloader: newDownloader(cfg, opt.httpClient),
		store:      opt.store,
	}, nil
}

func (x *Client) ListRepositories(ctx context.Context, owner string) ([]*model.Repository, error) {
	if owner == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner is empty")
	}

	path := fmt.Sprintf("users/%s/repos", url.PathEscape(owner))
	query := url.Values{
		"sort":     []string{"updated"},
		"per_page": []string{strconv.Itoa(x.cfg.PerPage)},
	}

	return fetchMapped(ctx, x, path, query, mapRepositoryPage)
}

// SearchRepositories filters the owner's repositories client-side: a
// case-insensitive substring match, OR across name, description, and
// language. The issues endpoint has a server-side query language; the repo
// listing does not, so the listing is fetched (or served from cache) and
// filtered after mapping.
func (x *Client) SearchRepositories(ctx context.Context, owner, query string) ([]*model.Repository, error) {
	repos, err := x.ListRepositories(ctx, owner)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return repos, nil
	}

	var matches []*model.Repository
	for _, repo := range repos {
		if matchRepository(repo, term) {
			matches = append(matches, repo)
		}
	}
	return matches, nil
}

func matchRepository(repo *model.Repository, term string) bool {
	if strings.Contains(strings.ToLower(repo.Name), term) {
		return true
	}
	if repo.Description != nil && strings.Contains(strings.ToLower(*repo.Description), term) {
		return true
	}
	if repo.Language != nil && strings.Contains(strings.ToLower(*repo.Language), term) {
		return true
	}
	return false
}

// GetIssues lists issues of a repository. The state filter is passed through
// as a query parameter, not applied client-side.
func (x *Client) GetIssues(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error) {
	if owner == "" || repo == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner and repo are required")
	}
	if state == "" {
		state = types.IssueStateOpen
	}
	if !state.Validate() {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid issue state", goerr.V("state", state))
	}

	path := fmt.Sprintf("repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))
	query := url.Values{
		"state":    []string{string(state)},
		"per_page": []string{strconv.Itoa(x.cfg.PerPage)},
	}

	return fetchMapped(ctx, x, path, query, mapIssuePage)
}

func (x *Client) GetReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	if owner == "" || repo == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner and repo are required")
	}

	path := fmt.Sprintf("repos/%s/%s/releases", url.PathEscape(owner), url.PathEscape(repo))
	query := url.Values{
		"per_page": []string{strconv.Itoa(x.cfg.PerPage)},
	}

	return fetchMapped(ctx, x, path, query, mapReleasePage)
}

func (x *Client) GetUserProfile(ctx context.Context, owner string) (*model.UserProfile, error) {
	if owner == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner is empty")
	}

	path := "users/" + url.PathEscape(owner)
	return fetchSingle(ctx, x, path, mapUserProfile)
}

func (x *Client) GetReadme(ctx context.Context, owner, repo string) (*model.Readme, error) {
	if owner == "" || repo == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner and repo are required")
	}

	path := fmt.Sprintf("repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(repo))
	return fetchSingle(ctx, x, path, mapReadme)
}

// DownloadAsset streams the asset to the destination. It bypasses the cache
// and the response mapper.
func (x *Client) DownloadAsset(ctx context.Context, asset *model.Asset, opt interfaces.DownloadOptions) (int64, error) {
	if asset == nil {
		return 0, goerr.Wrap(types.ErrInvalidOption, "asset is nil")
	}
	if err := asset.Validate(); err != nil {
		return 0, err
	}
	return x.downloader.download(ctx, asset, opt)
}

func (x *Client) RateLimit() model.RateLimit {
	return x.limiter.snapshot()
}

func (x *Client) InvalidateCache() {
	x.store.InvalidateAll()
}

// fetchMapped serves a paginated listing: cache hit short-circuits,
// otherwise every page is fetched through the retry policy, mapped, and the
// concatenated result is cached as one atomic entry.
func fetchMapped[T any](ctx context.Context, x *Client, path string, query url.Values, mapPage func([]byte) ([]T, error)) ([]T, error) {
	sig := cache.Signature(http.MethodGet, path, query)
	if cached, ok := x.store.Get(sig); ok {
		if items, ok := cached.([]T); ok {
			logging.From(ctx).Debug("cache hit", slog.String("path", path))
			return items, nil
		}
	}

	pages, err := x.pager.fetchAll(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var items []T
	for _, page := range pages {
		mapped, err := mapPage(page)
		if err != nil {
			return nil, err
		}
		items = append(items, mapped...)
	}

	x.store.Put(sig, items, x.cfg.CacheTTL)
	logging.From(ctx).Debug("fetched listing",
		slog.String("path", path),
		slog.Int("pages", len(pages)),
		slog.Int("items", len(items)),
	)
	return items, nil
}

// fetchSingle serves a non-paginated resource with the same cache behavior.
func fetchSingle[T any](ctx context.Context, x *Client, path string, mapBody func([]byte) (*T, error)) (*T, error) {
	sig := cache.Signature(http.MethodGet, path, nil)
	if cached, ok := x.store.Get(sig); ok {
		if item, ok := cached.(*T); ok {
			logging.From(ctx).Debug("cache hit", slog.String("path", path))
			return item, nil
		}
	}

	resp, err := x.retry.execute(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	item, err := mapBody(resp.Body)
	if err != nil {
		return nil, err
	}

	x.store.Put(sig, item, x.cfg.CacheTTL)
	return item, nil
}
