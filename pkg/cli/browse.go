package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/0xb0rn3/gitnav/pkg/cli/config"
	"github.com/0xb0rn3/gitnav/pkg/controller/menu"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func browseCommand() *cli.Command {
	var (
		github config.GitHub
		sentry config.Sentry
	)

	return &cli.Command{
		Name:      "browse",
		Aliases:   []string{"b"},
		Usage:     "Interactively browse a GitHub account",
		ArgsUsage: "[owner]",
		Flags: slice.Flatten(
			github.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			owner := c.Args().First()
			if owner == "" {
				fmt.Print("Enter GitHub username: ")
				scanner := bufio.NewScanner(os.Stdin)
				if scanner.Scan() {
					owner = strings.TrimSpace(scanner.Text())
				}
			}
			if owner == "" {
				return goerr.Wrap(types.ErrInvalidOption, "username cannot be empty")
			}

			if !github.Authenticated() {
				logging.From(ctx).Debug("no token supplied, using unauthenticated quota")
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			return menu.New(uc, owner, os.Stdin, os.Stdout).Run(ctx)
		},
	}
}
