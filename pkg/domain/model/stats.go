package model

import "sort"

// RepoStats aggregates a repository listing for the statistics view.
type RepoStats struct {
	TotalRepos int
	TotalStars int
	TotalForks int
	TotalSizeB int64
	Languages  map[string]int
}

// NewRepoStats computes aggregate statistics over mapped repositories. It is
// pure and performs no API calls; the listing it receives is whatever the
// caller already fetched.
func NewRepoStats(repos []*Repository) *RepoStats {
	stats := &RepoStats{
		TotalRepos: len(repos),
		Languages:  map[string]int{},
	}

	for _, repo := range repos {
		stats.TotalStars += repo.Stars
		stats.TotalForks += repo.Forks
		stats.TotalSizeB += repo.SizeKB * 1024
		if repo.Language != nil && *repo.Language != "" {
			stats.Languages[*repo.Language]++
		}
	}

	return stats
}

// TopLanguages returns up to n language names ordered by repository count,
// ties broken alphabetically so the order is stable.
func (x *RepoStats) TopLanguages(n int) []string {
	langs := make([]string, 0, len(x.Languages))
	for lang := range x.Languages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if x.Languages[langs[i]] != x.Languages[langs[j]] {
			return x.Languages[langs[i]] > x.Languages[langs[j]]
		}
		return langs[i] < langs[j]
	})
	if len(langs) > n {
		langs = langs[:n]
	}
	return langs
}
