package types

import "log/slog"

type (
	GitHubToken string
	RepoOwner   string
	RepoName    string
	IssueState  string
)

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

// Validate checks that the state is one of the values accepted by the
// issues endpoint. The filter is applied server-side via query parameter.
func (x IssueState) Validate() bool {
	switch x {
	case IssueStateOpen, IssueStateClosed, IssueStateAll:
		return true
	}
	return false
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}
