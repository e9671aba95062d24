package usecase

import (
	"context"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
)

// GetReleases lists a repository's releases with their assets in API order.
func (x *UseCase) GetReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	return x.clients.GitHub().GetReleases(ctx, owner, repo)
}

// DownloadAsset streams a release asset to disk. A failed or canceled
// download leaves no partial file behind.
func (x *UseCase) DownloadAsset(ctx context.Context, asset *model.Asset, opt interfaces.DownloadOptions) (int64, error) {
	if opt.Destination == "" {
		opt.Destination = asset.Name
	}
	return x.clients.GitHub().DownloadAsset(ctx, asset, opt)
}
