package githubapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// apiResponse is a fully read HTTP response. Transport returns one for every
// status code; classifying the status is the retry policy's job.
type apiResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// transport issues exactly one HTTP attempt per call. No retries and no
// rate-limit bookkeeping happen here.
type transport struct {
	httpClient interfaces.HTTPClient
	baseURL    *url.URL
	token      types.GitHubToken
	userAgent  string
	timeout    time.Duration
}

func newTransport(cfg Config, httpClient interfaces.HTTPClient) (*transport, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid base URL", goerr.V("baseURL", cfg.BaseURL))
	}

	return &transport{
		httpClient: httpClient,
		baseURL:    base,
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
	}, nil
}

// resolve turns a path into an absolute request URL. Pagination link targets
// arrive absolute already and are used as-is.
func (x *transport) resolve(path string, query url.Values) (*url.URL, error) {
	var u *url.URL
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		parsed, err := url.Parse(path)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid request URL", goerr.V("url", path))
		}
		u = parsed
	} else {
		u = x.baseURL.JoinPath(path)
	}

	if len(query) > 0 {
		merged := u.Query()
		for key, values := range query {
			merged[key] = values
		}
		u.RawQuery = merged.Encode()
	}

	return u, nil
}

// send performs one GET attempt. A returned error always wraps
// types.ErrNetwork; any observed HTTP response comes back as apiResponse
// regardless of status so quota bookkeeping stays accurate on failures.
func (x *transport) send(ctx context.Context, path string, query url.Values) (*apiResponse, error) {
	reqURL, err := x.resolve(path, query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("url", reqURL.String()))
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", x.userAgent)
	if x.token != "" {
		req.Header.Set("Authorization", "Bearer "+string(x.token))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNetwork, "request failed", goerr.V("url", reqURL.String()), goerr.V("cause", err.Error()))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNetwork, "failed to read response body", goerr.V("url", reqURL.String()), goerr.V("cause", err.Error()))
	}

	return &apiResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
