package usecase

import (
	"context"
	"log/slog"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/utils/logging"
)

// ListRepositories returns the owner's repositories, most recently updated
// first. Results come from the session cache when fresh.
func (x *UseCase) ListRepositories(ctx context.Context, owner string) ([]*model.Repository, error) {
	return x.clients.GitHub().ListRepositories(ctx, owner)
}

// SearchRepositories filters the owner's repositories by a case-insensitive
// substring over name, description, and language.
func (x *UseCase) SearchRepositories(ctx context.Context, owner, query string) ([]*model.Repository, error) {
	return x.clients.GitHub().SearchRepositories(ctx, owner, query)
}

// RepoStats aggregates the owner's listing into the statistics view.
func (x *UseCase) RepoStats(ctx context.Context, owner string) (*model.RepoStats, error) {
	repos, err := x.ListRepositories(ctx, owner)
	if err != nil {
		return nil, err
	}
	return model.NewRepoStats(repos), nil
}

// RefreshRepositories drops every cached result and refetches the listing.
func (x *UseCase) RefreshRepositories(ctx context.Context, owner string) ([]*model.Repository, error) {
	x.clients.GitHub().InvalidateCache()
	logging.From(ctx).Debug("cache invalidated", slog.String("owner", owner))
	return x.ListRepositories(ctx, owner)
}

// RateLimit exposes the last observed quota state for rendering.
func (x *UseCase) RateLimit() model.RateLimit {
	return x.clients.GitHub().RateLimit()
}
