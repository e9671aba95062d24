package githubapi

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Raw API payloads. Required fields are pointers so that "absent in the
// response" is detectable and can be reported by name instead of silently
// defaulting. Optional fields stay pointers all the way into the model to
// preserve the null-vs-empty distinction.

type ownerJSON struct {
	Login *string `json:"login"`
}

type repositoryJSON struct {
	ID              *int64     `json:"id"`
	Name            *string    `json:"name"`
	Owner           *ownerJSON `json:"owner"`
	Description     *string    `json:"description"`
	Language        *string    `json:"language"`
	StargazersCount *int       `json:"stargazers_count"`
	ForksCount      *int       `json:"forks_count"`
	Size            *int64     `json:"size"`
	DefaultBranch   *string    `json:"default_branch"`
	UpdatedAt       *time.Time `json:"updated_at"`
	Private         *bool      `json:"private"`
	CloneURL        *string    `json:"clone_url"`
	HTMLURL         *string    `json:"html_url"`
}

type labelJSON struct {
	Name *string `json:"name"`
}

type issueJSON struct {
	ID        *int64      `json:"id"`
	Number    *int        `json:"number"`
	Title     *string     `json:"title"`
	State     *string     `json:"state"`
	Labels    []labelJSON `json:"labels"`
	User      *ownerJSON  `json:"user"`
	CreatedAt *time.Time  `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
	Comments  *int        `json:"comments"`
}

type assetJSON struct {
	Name          *string `json:"name"`
	Size          *int64  `json:"size"`
	DownloadCount *int    `json:"download_count"`
	ContentType   *string `json:"content_type"`
	DownloadURL   *string `json:"browser_download_url"`
}

type releaseJSON struct {
	TagName     *string     `json:"tag_name"`
	Name        *string     `json:"name"`
	PublishedAt *time.Time  `json:"published_at"`
	Assets      []assetJSON `json:"assets"`
}

type userProfileJSON struct {
	Login       *string    `json:"login"`
	Name        *string    `json:"name"`
	Bio         *string    `json:"bio"`
	Company     *string    `json:"company"`
	Location    *string    `json:"location"`
	Blog        *string    `json:"blog"`
	PublicRepos *int       `json:"public_repos"`
	Followers   *int       `json:"followers"`
	Following   *int       `json:"following"`
	CreatedAt   *time.Time `json:"created_at"`
}

type readmeJSON struct {
	Path     *string `json:"path"`
	Content  *string `json:"content"`
	Encoding *string `json:"encoding"`
	HTMLURL  *string `json:"html_url"`
}

func missingField(field string) error {
	return goerr.Wrap(types.ErrMalformedResponse, "required field is missing", goerr.V("field", field))
}

func decodeArray[T any](body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, goerr.Wrap(types.ErrMalformedResponse, "payload is not a JSON array", goerr.V("cause", err.Error()))
	}
	return items, nil
}

func mapRepository(raw *repositoryJSON) (*model.Repository, error) {
	if raw.ID == nil {
		return nil, missingField("id")
	}
	if raw.Name == nil {
		return nil, missingField("name")
	}
	if raw.Owner == nil || raw.Owner.Login == nil {
		return nil, missingField("owner.login")
	}
	if raw.StargazersCount == nil {
		return nil, missingField("stargazers_count")
	}
	if raw.ForksCount == nil {
		return nil, missingField("forks_count")
	}
	if raw.UpdatedAt == nil {
		return nil, missingField("updated_at")
	}

	repo := &model.Repository{
		ID:          *raw.ID,
		Owner:       *raw.Owner.Login,
		Name:        *raw.Name,
		Description: raw.Description,
		Language:    raw.Language,
		Stars:       *raw.StargazersCount,
		Forks:       *raw.ForksCount,
		UpdatedAt:   *raw.UpdatedAt,
	}
	if raw.Size != nil {
		repo.SizeKB = *raw.Size
	}
	if raw.DefaultBranch != nil {
		repo.DefaultBranch = *raw.DefaultBranch
	}
	if raw.Private != nil {
		repo.Private = *raw.Private
	}
	if raw.CloneURL != nil {
		repo.CloneURL = *raw.CloneURL
	}
	if raw.HTMLURL != nil {
		repo.HTMLURL = *raw.HTMLURL
	}

	if err := repo.Validate(); err != nil {
		return nil, err
	}
	return repo, nil
}

func mapRepositoryPage(body []byte) ([]*model.Repository, error) {
	raws, err := decodeArray[repositoryJSON](body)
	if err != nil {
		return nil, err
	}

	repos := make([]*model.Repository, 0, len(raws))
	for i := range raws {
		repo, err := mapRepository(&raws[i])
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

func mapIssue(raw *issueJSON) (*model.Issue, error) {
	if raw.ID == nil {
		return nil, missingField("id")
	}
	if raw.Number == nil {
		return nil, missingField("number")
	}
	if raw.Title == nil {
		return nil, missingField("title")
	}
	if raw.State == nil {
		return nil, missingField("state")
	}
	if raw.CreatedAt == nil {
		return nil, missingField("created_at")
	}

	issue := &model.Issue{
		ID:        *raw.ID,
		Number:    *raw.Number,
		Title:     *raw.Title,
		State:     types.IssueState(*raw.State),
		CreatedAt: *raw.CreatedAt,
	}
	// The label sequence keeps API order.
	for _, label := range raw.Labels {
		if label.Name != nil {
			issue.Labels = append(issue.Labels, *label.Name)
		}
	}
	if raw.User != nil && raw.User.Login != nil {
		issue.Author = *raw.User.Login
	}
	if raw.UpdatedAt != nil {
		issue.UpdatedAt = *raw.UpdatedAt
	}
	if raw.Comments != nil {
		issue.Comments = *raw.Comments
	}

	if err := issue.Validate(); err != nil {
		return nil, err
	}
	return issue, nil
}

func mapIssuePage(body []byte) ([]*model.Issue, error) {
	raws, err := decodeArray[issueJSON](body)
	if err != nil {
		return nil, err
	}

	issues := make([]*model.Issue, 0, len(raws))
	for i := range raws {
		issue, err := mapIssue(&raws[i])
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func mapRelease(raw *releaseJSON) (*model.Release, error) {
	if raw.TagName == nil {
		return nil, missingField("tag_name")
	}

	release := &model.Release{
		TagName:     *raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
	}
	for i := range raw.Assets {
		asset := &raw.Assets[i]
		if asset.Name == nil {
			return nil, missingField("assets.name")
		}
		if asset.Size == nil {
			return nil, missingField("assets.size")
		}
		if asset.DownloadURL == nil {
			return nil, missingField("assets.browser_download_url")
		}
		mapped := model.Asset{
			Name:        *asset.Name,
			Size:        *asset.Size,
			DownloadURL: *asset.DownloadURL,
		}
		if asset.DownloadCount != nil {
			mapped.DownloadCount = *asset.DownloadCount
		}
		if asset.ContentType != nil {
			mapped.ContentType = *asset.ContentType
		}
		release.Assets = append(release.Assets, mapped)
	}

	if err := release.Validate(); err != nil {
		return nil, err
	}
	return release, nil
}

func mapReleasePage(body []byte) ([]*model.Release, error) {
	raws, err := decodeArray[releaseJSON](body)
	if err != nil {
		return nil, err
	}

	releases := make([]*model.Release, 0, len(raws))
	for i := range raws {
		release, err := mapRelease(&raws[i])
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}
	return releases, nil
}

func mapUserProfile(body []byte) (*model.UserProfile, error) {
	var raw userProfileJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, goerr.Wrap(types.ErrMalformedResponse, "payload is not a JSON object", goerr.V("cause", err.Error()))
	}

	if raw.Login == nil {
		return nil, missingField("login")
	}
	if raw.PublicRepos == nil {
		return nil, missingField("public_repos")
	}
	if raw.Followers == nil {
		return nil, missingField("followers")
	}
	if raw.Following == nil {
		return nil, missingField("following")
	}
	if raw.CreatedAt == nil {
		return nil, missingField("created_at")
	}

	profile := &model.UserProfile{
		Login:       *raw.Login,
		Name:        raw.Name,
		Bio:         raw.Bio,
		Company:     raw.Company,
		Location:    raw.Location,
		Blog:        raw.Blog,
		PublicRepos: *raw.PublicRepos,
		Followers:   *raw.Followers,
		Following:   *raw.Following,
		CreatedAt:   *raw.CreatedAt,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func mapReadme(body []byte) (*model.Readme, error) {
	var raw readmeJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, goerr.Wrap(types.ErrMalformedResponse, "payload is not a JSON object", goerr.V("cause", err.Error()))
	}

	if raw.Content == nil {
		return nil, missingField("content")
	}
	if raw.Encoding != nil && *raw.Encoding != "base64" {
		return nil, goerr.Wrap(types.ErrMalformedResponse, "unexpected README encoding", goerr.V("field", "encoding"), goerr.V("value", *raw.Encoding))
	}

	// The API wraps base64 content with newlines.
	compact := strings.ReplaceAll(*raw.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, goerr.Wrap(types.ErrMalformedResponse, "failed to decode README content", goerr.V("field", "content"), goerr.V("cause", err.Error()))
	}

	readme := &model.Readme{Content: string(decoded)}
	if raw.Path != nil {
		readme.Path = *raw.Path
	}
	if raw.HTMLURL != nil {
		readme.HTMLURL = *raw.HTMLURL
	}
	return readme, nil
}
