package menu_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/controller/menu"
	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/infra"
	"github.com/0xb0rn3/gitnav/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type githubMock struct {
	ListRepositoriesFunc func(ctx context.Context, owner string) ([]*model.Repository, error)
	GetIssuesFunc        func(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error)
	GetReleasesFunc      func(ctx context.Context, owner, repo string) ([]*model.Release, error)
	GetUserProfileFunc   func(ctx context.Context, owner string) (*model.UserProfile, error)
	InvalidateCacheFunc  func()
}

func (x *githubMock) ListRepositories(ctx context.Context, owner string) ([]*model.Repository, error) {
	return x.ListRepositoriesFunc(ctx, owner)
}

func (x *githubMock) SearchRepositories(ctx context.Context, owner, query string) ([]*model.Repository, error) {
	repos, err := x.ListRepositoriesFunc(ctx, owner)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(query)
	var matches []*model.Repository
	for _, repo := range repos {
		if strings.Contains(strings.ToLower(repo.Name), term) {
			matches = append(matches, repo)
		}
	}
	return matches, nil
}

func (x *githubMock) GetIssues(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error) {
	return x.GetIssuesFunc(ctx, owner, repo, state)
}

func (x *githubMock) GetReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	return x.GetReleasesFunc(ctx, owner, repo)
}

func (x *githubMock) GetUserProfile(ctx context.Context, owner string) (*model.UserProfile, error) {
	return x.GetUserProfileFunc(ctx, owner)
}

func (x *githubMock) GetReadme(ctx context.Context, owner, repo string) (*model.Readme, error) {
	return &model.Readme{Path: "README.md", Content: "# Hello"}, nil
}

func (x *githubMock) DownloadAsset(ctx context.Context, asset *model.Asset, opt interfaces.DownloadOptions) (int64, error) {
	return 0, nil
}

func (x *githubMock) RateLimit() model.RateLimit {
	return model.RateLimit{Remaining: 58, Limit: 60, ResetAt: time.Now().Add(time.Hour)}
}

func (x *githubMock) InvalidateCache() {
	if x.InvalidateCacheFunc != nil {
		x.InvalidateCacheFunc()
	}
}

func strPtr(s string) *string { return &s }

func defaultMock() *githubMock {
	return &githubMock{
		ListRepositoriesFunc: func(ctx context.Context, owner string) ([]*model.Repository, error) {
			return []*model.Repository{
				{
					ID: 1, Name: "gitnav", Owner: owner,
					Description: strPtr("Terminal GitHub navigator"),
					Language:    strPtr("Go"),
					Stars:       10, Forks: 2, SizeKB: 100,
					UpdatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				},
				{
					ID: 2, Name: "dotfiles", Owner: owner,
					UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
}

func runMenu(t *testing.T, mockGH *githubMock, input string) string {
	t.Helper()
	uc := usecase.New(infra.New(infra.WithGitHub(mockGH)))

	out := &bytes.Buffer{}
	m := menu.New(uc, "octocat", strings.NewReader(input), out)
	gt.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestMenuListAndQuit(t *testing.T) {
	out := runMenu(t, defaultMock(), "1\n12\n")

	gt.S(t, out).Contains("Found 2 repositories.")
	gt.S(t, out).Contains("gitnav")
	gt.S(t, out).Contains("Terminal GitHub navigator")
	gt.S(t, out).Contains("dotfiles")
	gt.S(t, out).Contains("No description")
	gt.S(t, out).Contains("API quota: 58/60")
	gt.S(t, out).Contains("Goodbye.")
}

func TestMenuQuitsWhenInputEnds(t *testing.T) {
	out := runMenu(t, defaultMock(), "")
	gt.S(t, out).Contains("Found 2 repositories.")
}

func TestMenuInvalidChoice(t *testing.T) {
	out := runMenu(t, defaultMock(), "99\n12\n")
	gt.S(t, out).Contains("Invalid choice")
}

func TestMenuSearch(t *testing.T) {
	out := runMenu(t, defaultMock(), "3\ndot\n12\n")

	gt.S(t, out).Contains("Found 1 matching repositories:")
	gt.S(t, out).Contains("dotfiles")
}

func TestMenuSearchNoMatches(t *testing.T) {
	out := runMenu(t, defaultMock(), "3\nzzz\n12\n")
	gt.S(t, out).Contains("No matching repositories found.")
}

func TestMenuStats(t *testing.T) {
	out := runMenu(t, defaultMock(), "4\n12\n")

	gt.S(t, out).Contains("Repository Statistics")
	gt.S(t, out).Contains("Total Repositories: 2")
	gt.S(t, out).Contains("Total Stars: 10")
	gt.S(t, out).Contains("Top Languages: Go")
}

func TestMenuIssues(t *testing.T) {
	mockGH := defaultMock()
	mockGH.GetIssuesFunc = func(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error) {
		gt.V(t, repo).Equal("gitnav")
		gt.V(t, state).Equal(types.IssueStateClosed)
		return []*model.Issue{{
			ID: 1, Number: 7, Title: "Fix pagination", State: state,
			Author: "octocat", Labels: []string{"bug"},
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}}, nil
	}

	// repo 1, state submenu 2 = closed
	out := runMenu(t, mockGH, "7\n1\n2\n12\n")

	gt.S(t, out).Contains("Issues for gitnav (closed):")
	gt.S(t, out).Contains("#7 - Fix pagination")
	gt.S(t, out).Contains("labels: bug")
}

func TestMenuReleases(t *testing.T) {
	mockGH := defaultMock()
	mockGH.GetReleasesFunc = func(ctx context.Context, owner, repo string) ([]*model.Release, error) {
		return []*model.Release{}, nil
	}

	out := runMenu(t, mockGH, "8\n1\n12\n")
	gt.S(t, out).Contains("No releases found for this repository.")
}

func TestMenuProfile(t *testing.T) {
	mockGH := defaultMock()
	mockGH.GetUserProfileFunc = func(ctx context.Context, owner string) (*model.UserProfile, error) {
		gt.V(t, owner).Equal("octocat")
		return &model.UserProfile{
			Login:       "octocat",
			Name:        strPtr("The Octocat"),
			PublicRepos: 8,
			Followers:   100,
			Following:   9,
			CreatedAt:   time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
		}, nil
	}

	out := runMenu(t, mockGH, "10\n12\n")

	gt.S(t, out).Contains("User Profile: octocat")
	gt.S(t, out).Contains("Name: The Octocat")
	gt.S(t, out).Contains("Followers: 100")
}

func TestMenuRefresh(t *testing.T) {
	var invalidated int
	mockGH := defaultMock()
	mockGH.InvalidateCacheFunc = func() { invalidated++ }

	out := runMenu(t, mockGH, "11\n12\n")

	gt.S(t, out).Contains("Refreshed. Found 2 repositories.")
	gt.V(t, invalidated).Equal(1)
}

func TestMenuReadme(t *testing.T) {
	out := runMenu(t, defaultMock(), "6\n1\n12\n")

	gt.S(t, out).Contains("README for gitnav")
	gt.S(t, out).Contains("# Hello")
}
