package cli

import (
	"github.com/0xb0rn3/gitnav/pkg/cli/config"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/infra"
	"github.com/0xb0rn3/gitnav/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// buildUseCase wires the API client behind the usecase layer from CLI
// configuration.
func buildUseCase(github *config.GitHub) (*usecase.UseCase, error) {
	client, err := github.New()
	if err != nil {
		return nil, err
	}

	clients := infra.New(infra.WithGitHub(client))
	return usecase.New(clients), nil
}

// ownerArg returns the owner from the first positional argument.
func ownerArg(c *cli.Command) (string, error) {
	owner := c.Args().First()
	if owner == "" {
		return "", goerr.Wrap(types.ErrInvalidOption, "owner argument is required, e.g. `gitnav repos torvalds`")
	}
	return owner, nil
}

// repoArgs returns the owner and repository from positional arguments.
func repoArgs(c *cli.Command) (string, string, error) {
	owner, err := ownerArg(c)
	if err != nil {
		return "", "", err
	}
	repo := c.Args().Get(1)
	if repo == "" {
		return "", "", goerr.Wrap(types.ErrInvalidOption, "repository argument is required, e.g. `gitnav issues torvalds linux`")
	}
	return owner, repo, nil
}
