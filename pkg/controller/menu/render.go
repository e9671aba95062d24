package menu

import (
	"fmt"
	"os"
	"strings"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
	"github.com/0xb0rn3/gitnav/pkg/domain/model"
	"github.com/0xb0rn3/gitnav/pkg/domain/types"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	nameColor   = color.New(color.FgHiWhite, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

func (x *Menu) renderMenu() {
	fmt.Fprintln(x.out)
	headerColor.Fprintln(x.out, strings.Repeat("=", 50))
	headerColor.Fprintln(x.out, "GitNav Menu")
	headerColor.Fprintln(x.out, strings.Repeat("=", 50))
	fmt.Fprintln(x.out, " 1. List repositories")
	fmt.Fprintln(x.out, " 2. List repositories (detailed)")
	fmt.Fprintln(x.out, " 3. Search repositories")
	fmt.Fprintln(x.out, " 4. Show repository statistics")
	fmt.Fprintln(x.out, " 5. Clone a repository")
	fmt.Fprintln(x.out, " 6. View README")
	fmt.Fprintln(x.out, " 7. View issues")
	fmt.Fprintln(x.out, " 8. Download release assets")
	fmt.Fprintln(x.out, " 9. Open in browser")
	fmt.Fprintln(x.out, "10. Show user profile")
	fmt.Fprintln(x.out, "11. Refresh repositories")
	fmt.Fprintln(x.out, "12. Exit")

	if limit := x.uc.RateLimit(); limit.Limit > 0 {
		dimColor.Fprintf(x.out, "API quota: %d/%d\n", limit.Remaining, limit.Limit)
	}
}

func (x *Menu) renderRepos(repos []*model.Repository, detailed bool) {
	if len(repos) == 0 {
		fmt.Fprintln(x.out, "No repositories found.")
		return
	}

	for i, repo := range repos {
		desc := "No description"
		if repo.Description != nil && *repo.Description != "" {
			desc = *repo.Description
		}
		lang := "Unknown"
		if repo.Language != nil && *repo.Language != "" {
			lang = *repo.Language
		}

		if detailed {
			fmt.Fprintf(x.out, "%2d. %s\n", i+1, nameColor.Sprint(repo.Name))
			fmt.Fprintf(x.out, "     %s\n", desc)
			fmt.Fprintf(x.out, "     stars %d | forks %d | %s | %s | updated %s\n",
				repo.Stars, repo.Forks, lang,
				humanize.Bytes(uint64(repo.SizeKB)*1024),
				humanize.Time(repo.UpdatedAt),
			)
			if repo.Private {
				dimColor.Fprintln(x.out, "     private")
			}
			fmt.Fprintln(x.out)
		} else {
			fmt.Fprintf(x.out, "%2d. %s - %s\n", i+1, nameColor.Sprint(repo.Name), desc)
			fmt.Fprintf(x.out, "     stars %d | forks %d | %s\n", repo.Stars, repo.Forks, lang)
		}
	}
}

func (x *Menu) renderStats(stats *model.RepoStats) {
	fmt.Fprintln(x.out)
	headerColor.Fprintln(x.out, "Repository Statistics")
	headerColor.Fprintln(x.out, strings.Repeat("=", 30))
	fmt.Fprintf(x.out, "Total Repositories: %d\n", stats.TotalRepos)
	fmt.Fprintf(x.out, "Total Stars: %d\n", stats.TotalStars)
	fmt.Fprintf(x.out, "Total Forks: %d\n", stats.TotalForks)
	fmt.Fprintf(x.out, "Total Size: %s\n", humanize.Bytes(uint64(stats.TotalSizeB)))
	if top := stats.TopLanguages(5); len(top) > 0 {
		fmt.Fprintf(x.out, "Top Languages: %s\n", strings.Join(top, ", "))
	}
}

func (x *Menu) renderIssues(repo *model.Repository, state types.IssueState, issues []*model.Issue) {
	fmt.Fprintln(x.out)
	headerColor.Fprintf(x.out, "Issues for %s (%s):\n", repo.Name, state)
	headerColor.Fprintln(x.out, strings.Repeat("=", 50))

	for i, issue := range issues {
		fmt.Fprintf(x.out, "%2d. #%d - %s\n", i+1, issue.Number, issue.Title)
		fmt.Fprintf(x.out, "     %s | %s | %d comments\n",
			issue.Author, humanize.Time(issue.CreatedAt), issue.Comments)
		if len(issue.Labels) > 0 {
			dimColor.Fprintf(x.out, "     labels: %s\n", strings.Join(issue.Labels, ", "))
		}
		fmt.Fprintln(x.out)
	}
}

func (x *Menu) renderReleases(repo *model.Repository, releases []*model.Release) {
	fmt.Fprintln(x.out)
	headerColor.Fprintf(x.out, "Releases for %s:\n", repo.Name)
	for i, release := range releases {
		published := "unpublished"
		if release.PublishedAt != nil {
			published = humanize.Time(*release.PublishedAt)
		}
		fmt.Fprintf(x.out, "%2d. %s (%s) - %d assets | %s\n",
			i+1, release.DisplayName(), release.TagName, len(release.Assets), published)
	}
}

func (x *Menu) renderAssets(release *model.Release) {
	fmt.Fprintln(x.out)
	headerColor.Fprintf(x.out, "Assets in %s:\n", release.TagName)
	for i, asset := range release.Assets {
		fmt.Fprintf(x.out, "%2d. %s | %s | %d downloads\n",
			i+1, asset.Name, humanize.Bytes(uint64(asset.Size)), asset.DownloadCount)
	}
}

func (x *Menu) renderProfile(profile *model.UserProfile) {
	fmt.Fprintln(x.out)
	headerColor.Fprintf(x.out, "User Profile: %s\n", profile.Login)
	headerColor.Fprintln(x.out, strings.Repeat("=", 50))

	optional := func(label string, value *string) {
		if value != nil && *value != "" {
			fmt.Fprintf(x.out, "%s: %s\n", label, *value)
		}
	}
	optional("Name", profile.Name)
	optional("Bio", profile.Bio)
	optional("Company", profile.Company)
	optional("Location", profile.Location)
	optional("Website", profile.Blog)

	fmt.Fprintf(x.out, "Public Repos: %d\n", profile.PublicRepos)
	fmt.Fprintf(x.out, "Followers: %d\n", profile.Followers)
	fmt.Fprintf(x.out, "Following: %d\n", profile.Following)
	fmt.Fprintf(x.out, "Account Created: %s\n", profile.CreatedAt.Format("2006-01-02 15:04"))
}

func (x *Menu) renderReadme(repo *model.Repository, readme *model.Readme) {
	fmt.Fprintln(x.out)
	headerColor.Fprintf(x.out, "README for %s\n", repo.Name)
	headerColor.Fprintln(x.out, strings.Repeat("=", 60))
	fmt.Fprintln(x.out, readme.Content)
	headerColor.Fprintln(x.out, strings.Repeat("=", 60))
}

// downloadOptions prompts for overwrite consent when the destination exists
// and wires a progress line updated per chunk.
func (x *Menu) downloadOptions(asset *model.Asset) interfaces.DownloadOptions {
	opt := interfaces.DownloadOptions{
		Destination: asset.Name,
		OnProgress:  x.progressLine(),
	}

	if _, err := os.Stat(asset.Name); err == nil {
		answer, _ := x.promptString(fmt.Sprintf("%q exists, overwrite? (y/N)", asset.Name))
		opt.Overwrite = strings.EqualFold(answer, "y")
	}
	return opt
}

func (x *Menu) progressLine() interfaces.ProgressFunc {
	return func(written, total int64) {
		if total > 0 {
			fmt.Fprintf(x.out, "\r%s / %s (%d%%)",
				humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)), written*100/total)
		} else {
			fmt.Fprintf(x.out, "\r%s downloaded", humanize.Bytes(uint64(written)))
		}
	}
}
