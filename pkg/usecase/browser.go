package usecase

import (
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pkg/browser"
)

// openURL is swapped out in tests to avoid launching a real browser.
var openURL = browser.OpenURL

// OpenInBrowser launches the repository page in the default browser.
func (x *UseCase) OpenInBrowser(repo *model.Repository) error {
	if repo.HTMLURL == "" {
		return goerr.Wrap(types.ErrInvalidOption, "repository has no web URL", goerr.V("repo", repo.FullName()))
	}
	if err := openURL(repo.HTMLURL); err != nil {
		return goerr.Wrap(err, "failed to open browser", goerr.V("url", repo.HTMLURL))
	}
	return nil
}
