package model

import (
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Repository is a point-in-time snapshot of a GitHub repository. Fields are
// never mutated after mapping; a refresh produces a new value.
// Description and Language are pointers to keep "field absent in the API
// response" distinguishable from "empty string".
type Repository struct {
	ID            int64
	Owner         string
	Name          string
	Description   *string
	Language      *string
	Stars         int
	Forks         int
	SizeKB        int64
	DefaultBranch string
	UpdatedAt     time.Time
	Private       bool
	CloneURL      string
	HTMLURL       string
}

func (x *Repository) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "repository name is empty", goerr.V("field", "name"))
	}
	if x.Owner == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "repository owner is empty", goerr.V("field", "owner.login"))
	}
	if x.Stars < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative star count", goerr.V("field", "stargazers_count"))
	}
	if x.Forks < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative fork count", goerr.V("field", "forks_count"))
	}
	if x.SizeKB < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative repository size", goerr.V("field", "size"))
	}
	return nil
}

// FullName returns the owner/name form used in API paths and rendering.
func (x *Repository) FullName() string {
	return x.Owner + "/" + x.Name
}

// Issue is a snapshot of a repository issue.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	State     types.IssueState
	Labels    []string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  int
}

func (x *Issue) Validate() error {
	if x.Number <= 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "issue number must be positive", goerr.V("field", "number"))
	}
	if x.Title == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "issue title is empty", goerr.V("field", "title"))
	}
	if x.Comments < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative comment count", goerr.V("field", "comments"))
	}
	return nil
}

// Asset is a downloadable artifact attached to a release.
type Asset struct {
	Name          string
	Size          int64
	DownloadCount int
	ContentType   string
	DownloadURL   string
}

func (x *Asset) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "asset name is empty", goerr.V("field", "name"))
	}
	if x.DownloadURL == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "asset download URL is empty", goerr.V("field", "browser_download_url"))
	}
	if x.Size < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative asset size", goerr.V("field", "size"))
	}
	if x.DownloadCount < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative download count", goerr.V("field", "download_count"))
	}
	return nil
}

// Release is a snapshot of a repository release with its assets in the order
// the API returned them. Name and PublishedAt are null for some drafts.
type Release struct {
	TagName     string
	Name        *string
	PublishedAt *time.Time
	Assets      []Asset
}

func (x *Release) Validate() error {
	if x.TagName == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "release tag name is empty", goerr.V("field", "tag_name"))
	}
	for i := range x.Assets {
		if err := x.Assets[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DisplayName returns the release name, falling back to the tag when the
// release was published without one.
func (x *Release) DisplayName() string {
	if x.Name != nil && *x.Name != "" {
		return *x.Name
	}
	return x.TagName
}

// UserProfile is a snapshot of a GitHub user or organization account.
type UserProfile struct {
	Login       string
	Name        *string
	Bio         *string
	Company     *string
	Location    *string
	Blog        *string
	PublicRepos int
	Followers   int
	Following   int
	CreatedAt   time.Time
}

func (x *UserProfile) Validate() error {
	if x.Login == "" {
		return goerr.Wrap(types.ErrMalformedResponse, "user login is empty", goerr.V("field", "login"))
	}
	if x.PublicRepos < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative public repo count", goerr.V("field", "public_repos"))
	}
	if x.Followers < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative follower count", goerr.V("field", "followers"))
	}
	if x.Following < 0 {
		return goerr.Wrap(types.ErrMalformedResponse, "negative following count", goerr.V("field", "following"))
	}
	return nil
}

// Readme holds decoded README content for a repository.
type Readme struct {
	Path    string
	Content string
	HTMLURL string
}

// RateLimit is a read-only view of the most recently observed quota state,
// exposed for rendering. It never triggers a network call.
type RateLimit struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// Exhausted reports whether the quota is spent and the reset is still ahead.
func (x RateLimit) Exhausted(now time.Time) bool {
	return x.Limit > 0 && x.Remaining <= 0 && x.ResetAt.After(now)
}
