package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/0xb0rn3/gitnav/pkg/cli/config"
	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/utils/logging"
	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func reposCommand() *cli.Command {
	var (
		github  config.GitHub
		details bool
	)

	return &cli.Command{
		Name:      "repos",
		Usage:     "List an owner's repositories",
		ArgsUsage: "<owner>",
		Flags: slice.Flatten(
			[]cli.Flag{
				&cli.BoolFlag{
					Name:        "details",
					Usage:       "Show size, language, and update time per repository",
					Aliases:     []string{"d"},
					Destination: &details,
				},
			},
			github.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, err := ownerArg(c)
			if err != nil {
				return err
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			repos, err := uc.ListRepositories(ctx, owner)
			if err != nil {
				return err
			}

			for _, repo := range repos {
				desc := ""
				if repo.Description != nil {
					desc = *repo.Description
				}
				if details {
					lang := "Unknown"
					if repo.Language != nil && *repo.Language != "" {
						lang = *repo.Language
					}
					fmt.Printf("%s\t%d stars\t%d forks\t%s\t%s\tupdated %s\n",
						repo.FullName(), repo.Stars, repo.Forks, lang,
						humanize.Bytes(uint64(repo.SizeKB)*1024),
						humanize.Time(repo.UpdatedAt))
				} else {
					fmt.Printf("%s\t%s\n", repo.FullName(), desc)
				}
			}
			return nil
		},
	}
}

func issuesCommand() *cli.Command {
	var (
		github config.GitHub
		state  string
	)

	return &cli.Command{
		Name:      "issues",
		Usage:     "List a repository's issues",
		ArgsUsage: "<owner> <repo>",
		Flags: slice.Flatten(
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "state",
					Usage:       "Issue state [open|closed|all]",
					Aliases:     []string{"s"},
					Value:       string(types.IssueStateOpen),
					Destination: &state,
					Sources:     cli.EnvVars("GITNAV_ISSUE_STATE"),
				},
			},
			github.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, repo, err := repoArgs(c)
			if err != nil {
				return err
			}

			issueState := types.IssueState(state)
			if !issueState.Validate() {
				return goerr.Wrap(types.ErrInvalidOption, "invalid issue state",
					goerr.V("state", state))
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			issues, err := uc.GetIssues(ctx, owner, repo, issueState)
			if err != nil {
				return err
			}

			for _, issue := range issues {
				line := fmt.Sprintf("#%d\t%s\t%s\t%s", issue.Number, issue.State, issue.Title, issue.Author)
				if len(issue.Labels) > 0 {
					line += "\t[" + strings.Join(issue.Labels, ", ") + "]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func releasesCommand() *cli.Command {
	var github config.GitHub

	return &cli.Command{
		Name:      "releases",
		Usage:     "List a repository's releases and their assets",
		ArgsUsage: "<owner> <repo>",
		Flags:     github.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, repo, err := repoArgs(c)
			if err != nil {
				return err
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			releases, err := uc.GetReleases(ctx, owner, repo)
			if err != nil {
				return err
			}

			for _, release := range releases {
				published := "unpublished"
				if release.PublishedAt != nil {
					published = humanize.Time(*release.PublishedAt)
				}
				fmt.Printf("%s\t%s\t%s\n", release.TagName, release.DisplayName(), published)
				for _, asset := range release.Assets {
					fmt.Printf("  %s\t%s\t%d downloads\n",
						asset.Name, humanize.Bytes(uint64(asset.Size)), asset.DownloadCount)
				}
			}
			return nil
		},
	}
}

func profileCommand() *cli.Command {
	var github config.GitHub

	return &cli.Command{
		Name:      "profile",
		Usage:     "Show a user's profile",
		ArgsUsage: "<owner>",
		Flags:     github.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, err := ownerArg(c)
			if err != nil {
				return err
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			profile, err := uc.GetUserProfile(ctx, owner)
			if err != nil {
				return err
			}

			fmt.Printf("Login: %s\n", profile.Login)
			optional := func(label string, value *string) {
				if value != nil && *value != "" {
					fmt.Printf("%s: %s\n", label, *value)
				}
			}
			optional("Name", profile.Name)
			optional("Bio", profile.Bio)
			optional("Company", profile.Company)
			optional("Location", profile.Location)
			optional("Website", profile.Blog)
			fmt.Printf("Public Repos: %d\n", profile.PublicRepos)
			fmt.Printf("Followers: %d\n", profile.Followers)
			fmt.Printf("Following: %d\n", profile.Following)
			fmt.Printf("Created: %s\n", profile.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func downloadCommand() *cli.Command {
	var (
		github    config.GitHub
		tag       string
		dest      string
		overwrite bool
	)

	return &cli.Command{
		Name:      "download",
		Aliases:   []string{"dl"},
		Usage:     "Download a release asset by name",
		ArgsUsage: "<owner> <repo> <asset>",
		Flags: slice.Flatten(
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "tag",
					Usage:       "Release tag (defaults to the most recent release)",
					Aliases:     []string{"t"},
					Destination: &tag,
				},
				&cli.StringFlag{
					Name:        "dest",
					Usage:       "Destination path (defaults to the asset name)",
					Destination: &dest,
				},
				&cli.BoolFlag{
					Name:        "overwrite",
					Usage:       "Replace the destination file if it exists",
					Destination: &overwrite,
				},
			},
			github.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, repo, err := repoArgs(c)
			if err != nil {
				return err
			}
			assetName := c.Args().Get(2)
			if assetName == "" {
				return goerr.Wrap(types.ErrInvalidOption, "asset name argument is required")
			}

			uc, err := buildUseCase(&github)
			if err != nil {
				return err
			}

			releases, err := uc.GetReleases(ctx, owner, repo)
			if err != nil {
				return err
			}
			if len(releases) == 0 {
				return goerr.Wrap(types.ErrInvalidOption, "repository has no releases",
					goerr.V("repo", owner+"/"+repo))
			}

			release := releases[0]
			if tag != "" {
				release = nil
				for _, r := range releases {
					if r.TagName == tag {
						release = r
						break
					}
				}
				if release == nil {
					return goerr.Wrap(types.ErrInvalidOption, "release tag not found",
						goerr.V("tag", tag))
				}
			}

			for i := range release.Assets {
				asset := &release.Assets[i]
				if asset.Name != assetName {
					continue
				}

				written, err := uc.DownloadAsset(ctx, asset, interfaces.DownloadOptions{
					Destination: dest,
					Overwrite:   overwrite,
					OnProgress: func(written, total int64) {
						if total > 0 {
							fmt.Fprintf(os.Stderr, "\r%s / %s",
								humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)))
						}
					},
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stderr)
				logging.From(ctx).Info("asset downloaded",
					"asset", asset.Name, "bytes", written)
				fmt.Printf("Downloaded %s (%s)\n", asset.Name, humanize.Bytes(uint64(written)))
				return nil
			}

			names := make([]string, 0, len(release.Assets))
			for _, asset := range release.Assets {
				names = append(names, asset.Name)
			}
			return goerr.Wrap(types.ErrInvalidOption, "asset not found in release",
				goerr.V("asset", assetName),
				goerr.V("tag", release.TagName),
				goerr.V("available", names))
		},
	}
}
