package githubapi_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/infra/githubapi"
	"github.com/m-mizutani/gt"
)

type httpMock struct {
	calls    int
	requests []*http.Request
	mockDo   func(req *http.Request) (*http.Response, error)
}

func (x *httpMock) Do(req *http.Request) (*http.Response, error) {
	x.calls++
	x.requests = append(x.requests, req)
	return x.mockDo(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

const repoListBody = `[
	{"id": 1, "name": "gitnav", "owner": {"login": "octocat"},
	 "description": "Terminal GitHub navigator", "language": "Go",
	 "stargazers_count": 10, "forks_count": 2, "size": 120,
	 "updated_at": "2024-06-01T00:00:00Z",
	 "clone_url": "https://github.com/octocat/gitnav.git",
	 "html_url": "https://github.com/octocat/gitnav"},
	{"id": 2, "name": "dotfiles", "owner": {"login": "octocat"},
	 "description": null, "language": "Shell",
	 "stargazers_count": 5, "forks_count": 1, "size": 8,
	 "updated_at": "2024-05-01T00:00:00Z"},
	{"id": 3, "name": "paper-notes", "owner": {"login": "octocat"},
	 "description": "Reading notes on Go papers", "language": null,
	 "stargazers_count": 1, "forks_count": 0, "size": 4,
	 "updated_at": "2024-04-01T00:00:00Z"}
]`

func newTestClient(t *testing.T, mock *httpMock) *githubapi.Client {
	t.Helper()
	client, err := githubapi.New(githubapi.Config{
		CacheTTL:    time.Minute,
		MaxAttempts: 1,
		BackoffBase: time.Millisecond,
	}, githubapi.WithHTTPClient(mock))
	gt.NoError(t, err)
	return client
}

func TestListRepositoriesServesSecondCallFromCache(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, repoListBody), nil
		},
	}
	client := newTestClient(t, mock)
	ctx := context.Background()

	first := gt.R1(client.ListRepositories(ctx, "octocat")).NoError(t)
	second := gt.R1(client.ListRepositories(ctx, "octocat")).NoError(t)

	gt.V(t, mock.calls).Equal(1)
	gt.V(t, len(first)).Equal(3)
	gt.V(t, first).Equal(second)
}

func TestInvalidateCacheForcesRefetch(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, repoListBody), nil
		},
	}
	client := newTestClient(t, mock)
	ctx := context.Background()

	_ = gt.R1(client.ListRepositories(ctx, "octocat")).NoError(t)
	client.InvalidateCache()
	_ = gt.R1(client.ListRepositories(ctx, "octocat")).NoError(t)

	gt.V(t, mock.calls).Equal(2)
}

func TestSearchRepositories(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, repoListBody), nil
		},
	}
	client := newTestClient(t, mock)
	ctx := context.Background()

	t.Run("matches name case-insensitively", func(t *testing.T) {
		matches := gt.R1(client.SearchRepositories(ctx, "octocat", "GITNAV")).NoError(t)
		gt.V(t, len(matches)).Equal(1)
		gt.V(t, matches[0].Name).Equal("gitnav")
	})

	t.Run("matches description", func(t *testing.T) {
		matches := gt.R1(client.SearchRepositories(ctx, "octocat", "reading notes")).NoError(t)
		gt.V(t, len(matches)).Equal(1)
		gt.V(t, matches[0].Name).Equal("paper-notes")
	})

	t.Run("matches language", func(t *testing.T) {
		matches := gt.R1(client.SearchRepositories(ctx, "octocat", "shell")).NoError(t)
		gt.V(t, len(matches)).Equal(1)
		gt.V(t, matches[0].Name).Equal("dotfiles")
	})

	t.Run("null fields never match", func(t *testing.T) {
		matches := gt.R1(client.SearchRepositories(ctx, "octocat", "zzz-no-such")).NoError(t)
		gt.V(t, len(matches)).Equal(0)
	})

	t.Run("blank query returns everything", func(t *testing.T) {
		matches := gt.R1(client.SearchRepositories(ctx, "octocat", "  ")).NoError(t)
		gt.V(t, len(matches)).Equal(3)
	})

	// Search reuses the cached listing from the first call.
	gt.V(t, mock.calls).Equal(1)
}

func TestGetIssuesPassesStateThrough(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `[{"id": 1, "number": 7, "title": "bug", "state": "closed",
				"created_at": "2024-01-01T00:00:00Z"}]`), nil
		},
	}
	client := newTestClient(t, mock)
	ctx := context.Background()

	issues := gt.R1(client.GetIssues(ctx, "octocat", "gitnav", types.IssueStateClosed)).NoError(t)
	gt.V(t, len(issues)).Equal(1)

	req := mock.requests[0]
	gt.V(t, req.URL.Path).Equal("/repos/octocat/gitnav/issues")
	gt.V(t, req.URL.Query().Get("state")).Equal("closed")
	gt.V(t, req.URL.Query().Get("per_page")).Equal("100")
}

func TestGetIssuesDefaultsToOpen(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `[]`), nil
		},
	}
	client := newTestClient(t, mock)

	_ = gt.R1(client.GetIssues(context.Background(), "octocat", "gitnav", "")).NoError(t)
	gt.V(t, mock.requests[0].URL.Query().Get("state")).Equal("open")
}

func TestGetIssuesRejectsInvalidState(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			t.Fatal("no request should be sent for an invalid state")
			return nil, nil
		},
	}
	client := newTestClient(t, mock)

	_, err := client.GetIssues(context.Background(), "octocat", "gitnav", "merged")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestListRepositoriesFollowsPagination(t *testing.T) {
	page2 := `[{"id": 4, "name": "page-two-repo", "owner": {"login": "octocat"},
		"stargazers_count": 0, "forks_count": 0, "updated_at": "2024-03-01T00:00:00Z"}]`

	mock := &httpMock{}
	mock.mockDo = func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("page") == "2" {
			return respond(http.StatusOK, page2), nil
		}
		resp := respond(http.StatusOK, repoListBody)
		resp.Header.Set("Link", `<https://api.github.com/users/octocat/repos?page=2>; rel="next"`)
		return resp, nil
	}
	client := newTestClient(t, mock)

	repos := gt.R1(client.ListRepositories(context.Background(), "octocat")).NoError(t)
	gt.V(t, len(repos)).Equal(4)
	gt.V(t, repos[3].Name).Equal("page-two-repo")
	gt.V(t, mock.calls).Equal(2)
}

func TestGetUserProfileIsCached(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"login": "octocat", "public_repos": 8,
				"followers": 100, "following": 9, "created_at": "2011-01-25T18:44:36Z"}`), nil
		},
	}
	client := newTestClient(t, mock)
	ctx := context.Background()

	first := gt.R1(client.GetUserProfile(ctx, "octocat")).NoError(t)
	second := gt.R1(client.GetUserProfile(ctx, "octocat")).NoError(t)

	gt.V(t, mock.calls).Equal(1)
	gt.V(t, first).Equal(second)
	gt.V(t, first.Login).Equal("octocat")
}

func TestRateLimitSnapshotReflectsHeaders(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			resp := respond(http.StatusOK, repoListBody)
			resp.Header.Set("X-RateLimit-Remaining", "57")
			resp.Header.Set("X-RateLimit-Limit", "60")
			resp.Header.Set("X-RateLimit-Reset", "1700000000")
			return resp, nil
		},
	}
	client := newTestClient(t, mock)

	gt.V(t, client.RateLimit().Limit).Equal(0)

	_ = gt.R1(client.ListRepositories(context.Background(), "octocat")).NoError(t)

	state := client.RateLimit()
	gt.V(t, state.Remaining).Equal(57)
	gt.V(t, state.Limit).Equal(60)
	gt.V(t, state.ResetAt).Equal(time.Unix(1700000000, 0))
}

func TestEmptyOwnerIsRejected(t *testing.T) {
	mock := &httpMock{
		mockDo: func(req *http.Request) (*http.Response, error) {
			t.Fatal("no request should be sent for an empty owner")
			return nil, nil
		},
	}
	client := newTestClient(t, mock)

	_, err := client.ListRepositories(context.Background(), "")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))

	_, err = client.GetUserProfile(context.Background(), "")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
