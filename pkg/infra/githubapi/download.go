package githubapi

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const downloadChunkSize = 32 * 1024

// downloader streams a release asset to disk in bounded chunks. The whole
// asset is never buffered in memory, and a failed or canceled stream leaves
// no partial file behind.
type downloader struct {
	httpClient interfaces.HTTPClient
	token      types.GitHubToken
	userAgent  string
}

func newDownloader(cfg Config, httpClient interfaces.HTTPClient) *downloader {
	return &downloader{
		httpClient: httpClient,
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
	}
}

func (x *downloader) download(ctx context.Context, asset *model.Asset, opt interfaces.DownloadOptions) (int64, error) {
	if opt.Destination == "" {
		return 0, goerr.Wrap(types.ErrInvalidOption, "destination path is empty")
	}
	if _, err := os.Stat(opt.Destination); err == nil && !opt.Overwrite {
		return 0, goerr.Wrap(types.ErrFileExists, "refusing to overwrite", goerr.V("path", opt.Destination))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build download request", goerr.V("url", asset.DownloadURL))
	}
	req.Header.Set("User-Agent", x.userAgent)
	if x.token != "" {
		req.Header.Set("Authorization", "Bearer "+string(x.token))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(types.ErrDownloadFailed, "download request failed",
			goerr.V("phase", "network"),
			goerr.V("url", asset.DownloadURL),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, goerr.Wrap(types.ErrDownloadFailed, "unexpected download status",
			goerr.V("phase", "network"),
			goerr.V("status", resp.StatusCode),
			goerr.V("url", asset.DownloadURL),
		)
	}

	// total is -1 when the server omits Content-Length; progress reporting
	// degrades to bytes-only.
	total := resp.ContentLength

	if dir := filepath.Dir(opt.Destination); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, goerr.Wrap(types.ErrDownloadFailed, "failed to create destination directory",
				goerr.V("phase", "disk"),
				goerr.V("dir", dir),
				goerr.V("cause", err.Error()),
			)
		}
	}

	fd, err := os.Create(filepath.Clean(opt.Destination))
	if err != nil {
		return 0, goerr.Wrap(types.ErrDownloadFailed, "failed to create destination file",
			goerr.V("phase", "disk"),
			goerr.V("path", opt.Destination),
			goerr.V("cause", err.Error()),
		)
	}

	written, err := x.stream(ctx, fd, resp.Body, total, opt.OnProgress)
	if err != nil {
		_ = fd.Close()
		safe.Remove(opt.Destination)
		return 0, err
	}

	if err := fd.Close(); err != nil {
		safe.Remove(opt.Destination)
		return 0, goerr.Wrap(types.ErrDownloadFailed, "failed to finalize destination file",
			goerr.V("phase", "disk"),
			goerr.V("path", opt.Destination),
			goerr.V("cause", err.Error()),
		)
	}

	return written, nil
}

func (x *downloader) stream(ctx context.Context, dst io.Writer, src io.Reader, total int64, onProgress interfaces.ProgressFunc) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var written int64

	for {
		if err := ctx.Err(); err != nil {
			return written, goerr.Wrap(types.ErrDownloadFailed, "download canceled",
				goerr.V("phase", "network"),
				goerr.V("cause", err.Error()),
			)
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return written, goerr.Wrap(types.ErrDownloadFailed, "failed to write chunk",
					goerr.V("phase", "disk"),
					goerr.V("cause", writeErr.Error()),
				)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, goerr.Wrap(types.ErrDownloadFailed, "stream interrupted",
				goerr.V("phase", "network"),
				goerr.V("cause", readErr.Error()),
			)
		}
	}
}
