package githubapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// paginator drives repeated fetches following the Link header's rel="next"
// target until the chain ends or maxPages is reached. Pages come back raw;
// mapping happens afterwards.
type paginator struct {
	retry    *retryPolicy
	maxPages int
}

func newPaginator(cfg Config, retry *retryPolicy) *paginator {
	return &paginator{
		retry:    retry,
		maxPages: cfg.MaxPages,
	}
}

// fetchAll returns the raw bodies of every page in request order. Each page
// fetch goes through the retry policy.
func (x *paginator) fetchAll(ctx context.Context, path string, query url.Values) ([][]byte, error) {
	var pages [][]byte

	next := path
	nextQuery := query
	for {
		resp, err := x.retry.execute(ctx, next, nextQuery)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Body)

		if x.maxPages > 0 && len(pages) >= x.maxPages {
			break
		}

		link, ok := nextLink(resp.Header)
		if !ok {
			break
		}
		// The link target is absolute and already carries its query string.
		next = link
		nextQuery = nil
	}

	return pages, nil
}

// nextLink extracts the rel="next" target from a Link header, e.g.
// <https://api.github.com/user/repos?page=3>; rel="next", <...>; rel="last".
func nextLink(header http.Header) (string, bool) {
	for _, field := range header.Values("Link") {
		for _, part := range strings.Split(field, ",") {
			section := strings.Split(part, ";")
			if len(section) < 2 {
				continue
			}
			target := strings.Trim(strings.TrimSpace(section[0]), "<>")
			for _, param := range section[1:] {
				if strings.TrimSpace(param) == `rel="next"` {
					return target, true
				}
			}
		}
	}
	return "", false
}
