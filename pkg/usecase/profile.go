package usecase

import (
	"context"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
)

// GetUserProfile fetches the account profile of the owner being browsed.
func (x *UseCase) GetUserProfile(ctx context.Context, owner string) (*model.UserProfile, error) {
	return x.clients.GitHub().GetUserProfile(ctx, owner)
}

// GetReadme fetches and decodes a repository's README.
func (x *UseCase) GetReadme(ctx context.Context, owner, repo string) (*model.Readme, error) {
	return x.clients.GitHub().GetReadme(ctx, owner, repo)
}
