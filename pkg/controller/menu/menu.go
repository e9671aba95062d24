// Package menu implements the interactive terminal front end: a numbered
// menu over one GitHub account, dispatching to the usecase layer. It owns
// stdin/stdout; the core never prints.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/0xb0rn3/gitnav/pkg/usecase"
	"github.com/0xb0rn3/gitnav/pkg/utils/errutil"
	"github.com/fatih/color"
)

type Menu struct {
	uc    *usecase.UseCase
	owner string
	in    *bufio.Scanner
	out   io.Writer

	repos []*model.Repository
}

func New(uc *usecase.UseCase, owner string, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		uc:    uc,
		owner: owner,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

const (
	choiceList = iota + 1
	choiceListDetailed
	choiceSearch
	choiceStats
	choiceClone
	choiceReadme
	choiceIssues
	choiceDownload
	choiceBrowser
	choiceProfile
	choiceRefresh
	choiceQuit
)

// Run fetches the initial listing and drives the menu until the user quits
// or input ends.
func (x *Menu) Run(ctx context.Context) error {
	fmt.Fprintf(x.out, "Fetching repositories for %q...\n", x.owner)
	repos, err := x.uc.ListRepositories(ctx, x.owner)
	if err != nil {
		return err
	}
	x.repos = repos
	fmt.Fprintf(x.out, "Found %d repositories.\n", len(repos))

	for {
		x.renderMenu()
		choice, ok := x.promptInt(fmt.Sprintf("Enter your choice (1-%d)", choiceQuit))
		if !ok {
			return nil
		}

		if choice == choiceQuit {
			fmt.Fprintln(x.out, "Goodbye.")
			return nil
		}

		if err := x.dispatch(ctx, choice); err != nil {
			x.renderError(ctx, err)
		}
	}
}

func (x *Menu) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case choiceList:
		x.renderRepos(x.repos, false)
	case choiceListDetailed:
		x.renderRepos(x.repos, true)
	case choiceSearch:
		return x.searchRepos(ctx)
	case choiceStats:
		return x.showStats(ctx)
	case choiceClone:
		return x.cloneRepo(ctx)
	case choiceReadme:
		return x.viewReadme(ctx)
	case choiceIssues:
		return x.viewIssues(ctx)
	case choiceDownload:
		return x.downloadAssets(ctx)
	case choiceBrowser:
		return x.openBrowser()
	case choiceProfile:
		return x.showProfile(ctx)
	case choiceRefresh:
		return x.refresh(ctx)
	default:
		fmt.Fprintf(x.out, "Invalid choice. Please enter a number between 1 and %d.\n", choiceQuit)
	}
	return nil
}

func (x *Menu) searchRepos(ctx context.Context) error {
	term, ok := x.promptString("Enter search term")
	if !ok || term == "" {
		fmt.Fprintln(x.out, "Search term cannot be empty.")
		return nil
	}

	matches, err := x.uc.SearchRepositories(ctx, x.owner, term)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(x.out, "No matching repositories found.")
		return nil
	}
	fmt.Fprintf(x.out, "Found %d matching repositories:\n", len(matches))
	x.renderRepos(matches, true)
	return nil
}

func (x *Menu) showStats(ctx context.Context) error {
	stats, err := x.uc.RepoStats(ctx, x.owner)
	if err != nil {
		return err
	}
	x.renderStats(stats)
	return nil
}

func (x *Menu) cloneRepo(ctx context.Context) error {
	repo, ok := x.chooseRepo("Enter repository number to clone")
	if !ok {
		return nil
	}

	fmt.Fprintf(x.out, "Cloning %s...\n", repo.FullName())
	dest, err := x.uc.CloneRepository(ctx, repo, usecase.CloneOptions{Progress: x.out})
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(x.out, "Repository %q cloned to %s\n", repo.Name, dest)
	return nil
}

func (x *Menu) viewReadme(ctx context.Context) error {
	repo, ok := x.chooseRepo("Enter repository number to view README")
	if !ok {
		return nil
	}

	readme, err := x.uc.GetReadme(ctx, x.owner, repo.Name)
	if err != nil {
		return err
	}
	x.renderReadme(repo, readme)
	return nil
}

func (x *Menu) viewIssues(ctx context.Context) error {
	repo, ok := x.chooseRepo("Enter repository number to view issues")
	if !ok {
		return nil
	}

	fmt.Fprintln(x.out, "Select issue state:")
	fmt.Fprintln(x.out, "1. Open issues")
	fmt.Fprintln(x.out, "2. Closed issues")
	fmt.Fprintln(x.out, "3. All issues")
	stateChoice, _ := x.promptInt("Enter choice (1-3)")

	state := types.IssueStateOpen
	switch stateChoice {
	case 2:
		state = types.IssueStateClosed
	case 3:
		state = types.IssueStateAll
	}

	issues, err := x.uc.GetIssues(ctx, x.owner, repo.Name, state)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintf(x.out, "No %s issues found for this repository.\n", state)
		return nil
	}
	x.renderIssues(repo, state, issues)
	return nil
}

func (x *Menu) downloadAssets(ctx context.Context) error {
	repo, ok := x.chooseRepo("Enter repository number")
	if !ok {
		return nil
	}

	releases, err := x.uc.GetReleases(ctx, x.owner, repo.Name)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		fmt.Fprintln(x.out, "No releases found for this repository.")
		return nil
	}

	x.renderReleases(repo, releases)
	num, ok := x.promptInt("Enter release number")
	if !ok || num < 1 || num > len(releases) {
		fmt.Fprintln(x.out, "Invalid release number.")
		return nil
	}
	release := releases[num-1]
	if len(release.Assets) == 0 {
		fmt.Fprintln(x.out, "No assets in this release.")
		return nil
	}

	x.renderAssets(release)
	num, ok = x.promptInt("Enter asset number to download")
	if !ok || num < 1 || num > len(release.Assets) {
		fmt.Fprintln(x.out, "Invalid asset number.")
		return nil
	}
	asset := &release.Assets[num-1]

	fmt.Fprintf(x.out, "Downloading %s...\n", asset.Name)
	written, err := x.uc.DownloadAsset(ctx, asset, x.downloadOptions(asset))
	if err != nil {
		return err
	}
	fmt.Fprintln(x.out)
	color.New(color.FgGreen).Fprintf(x.out, "Download complete: %s (%d bytes)\n", asset.Name, written)
	return nil
}

func (x *Menu) openBrowser() error {
	repo, ok := x.chooseRepo("Enter repository number to open")
	if !ok {
		return nil
	}
	if err := x.uc.OpenInBrowser(repo); err != nil {
		return err
	}
	fmt.Fprintf(x.out, "Opening %s in browser...\n", repo.Name)
	return nil
}

func (x *Menu) showProfile(ctx context.Context) error {
	profile, err := x.uc.GetUserProfile(ctx, x.owner)
	if err != nil {
		return err
	}
	x.renderProfile(profile)
	return nil
}

func (x *Menu) refresh(ctx context.Context) error {
	fmt.Fprintln(x.out, "Refreshing repositories...")
	repos, err := x.uc.RefreshRepositories(ctx, x.owner)
	if err != nil {
		return err
	}
	x.repos = repos
	fmt.Fprintf(x.out, "Refreshed. Found %d repositories.\n", len(repos))
	return nil
}

// chooseRepo lists the current repositories and prompts for one by number.
func (x *Menu) chooseRepo(label string) (*model.Repository, bool) {
	if len(x.repos) == 0 {
		fmt.Fprintln(x.out, "No repositories available.")
		return nil, false
	}

	x.renderRepos(x.repos, false)
	num, ok := x.promptInt(label)
	if !ok {
		return nil, false
	}
	if num < 1 || num > len(x.repos) {
		fmt.Fprintln(x.out, "Invalid repository number.")
		return nil, false
	}
	return x.repos[num-1], true
}

func (x *Menu) promptString(label string) (string, bool) {
	fmt.Fprintf(x.out, "%s: ", label)
	if !x.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(x.in.Text()), true
}

func (x *Menu) promptInt(label string) (int, bool) {
	raw, ok := x.promptString(label)
	if !ok {
		return 0, false
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true
	}
	return num, true
}

// renderError turns a structured error into an actionable message. Rate
// limit exhaustion also surfaces the reset time and, when running without a
// token, the reason the quota is low.
func (x *Menu) renderError(ctx context.Context, err error) {
	errutil.HandleError(ctx, "operation failed", err)

	red := color.New(color.FgRed)
	switch {
	case errors.Is(err, types.ErrRateLimited), errors.Is(err, types.ErrRetryExhausted):
		red.Fprintf(x.out, "Error: %v\n", err)
		if limit := x.uc.RateLimit(); limit.Limit > 0 {
			fmt.Fprintf(x.out, "Rate limit: %d/%d remaining, resets at %s\n",
				limit.Remaining, limit.Limit, limit.ResetAt.Format("15:04:05"))
		}
		fmt.Fprintln(x.out, "Tip: set GITNAV_TOKEN to raise the API quota.")
	case errors.Is(err, types.ErrClientError):
		red.Fprintf(x.out, "Error: %v\n", err)
	default:
		red.Fprintf(x.out, "Error: %v\n", err)
	}
}
