package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

type CloneOptions struct {
	// Destination is the target directory. Defaults to the repository name
	// under the current directory.
	Destination string

	// Progress receives the clone's side-band progress output.
	Progress io.Writer
}

// CloneRepository clones the repository over HTTPS using the clone URL the
// API reported. The destination must not already exist.
func (x *UseCase) CloneRepository(ctx context.Context, repo *model.Repository, opt CloneOptions) (string, error) {
	if repo.CloneURL == "" {
		return "", goerr.Wrap(types.ErrInvalidOption, "repository has no clone URL", goerr.V("repo", repo.FullName()))
	}

	dest := opt.Destination
	if dest == "" {
		dest = repo.Name
	}
	if _, err := os.Stat(dest); err == nil {
		return "", goerr.Wrap(types.ErrFileExists, "clone destination already exists", goerr.V("path", dest))
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:      repo.CloneURL,
		Progress: opt.Progress,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to clone repository",
			goerr.V("url", repo.CloneURL),
			goerr.V("dest", dest),
		)
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return dest, nil
	}
	return abs, nil
}
