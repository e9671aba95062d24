package usecase

import (
	"context"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
)

// GetIssues lists a repository's issues. The state filter travels to the API
// as a query parameter.
func (x *UseCase) GetIssues(ctx context.Context, owner, repo string, state types.IssueState) ([]*model.Issue, error) {
	return x.clients.GitHub().GetIssues(ctx, owner, repo, state)
}
