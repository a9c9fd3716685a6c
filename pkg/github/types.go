// Package github models exported GitHub issue data and loads it from
// `gh issue list --json` exports or directly from the REST API.
package github

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/jtran/techtree/pkg/errors"
)

// State is the lifecycle state of an issue or pull request.
type State string

const (
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// UnmarshalJSON accepts the state strings GitHub emits. Merged pull
// requests count as closed.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidIssueData, err, "invalid issue state")
	}
	switch strings.ToUpper(raw) {
	case "OPEN":
		*s = StateOpen
	case "CLOSED", "MERGED":
		*s = StateClosed
	default:
		return errors.New(errors.ErrCodeInvalidIssueData, "unknown issue state %q", raw)
	}
	return nil
}

// IsClosed reports whether the state is terminal.
func (s State) IsClosed() bool { return s == StateClosed }

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// ProjectItem links an issue to a GitHub project board.
type ProjectItem struct {
	Title string `json:"title"`
}

// Issue is one exported issue or pull request record.
type Issue struct {
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	URL          string        `json:"url"`
	State        State         `json:"state"`
	Labels       []Label       `json:"labels"`
	ProjectItems []ProjectItem `json:"projectItems"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// LabelNames returns the label names in export order.
func (i *Issue) LabelNames() []string {
	if len(i.Labels) == 0 {
		return nil
	}
	names := make([]string, len(i.Labels))
	for n, l := range i.Labels {
		names[n] = l.Name
	}
	return names
}

// ProjectTitles returns the project board titles in export order.
func (i *Issue) ProjectTitles() []string {
	if len(i.ProjectItems) == 0 {
		return nil
	}
	titles := make([]string, len(i.ProjectItems))
	for n, p := range i.ProjectItems {
		titles[n] = p.Title
	}
	return titles
}

var repoBaseRe = regexp.MustCompile(`^(https?://github\.com/[^/]+/[^/]+)/(?:issues|pull)/[0-9]+`)

// RepositoryBaseURL extracts the repository base from an issue or pull
// request URL, e.g. "https://github.com/owner/repo" from
// "https://github.com/owner/repo/issues/42". Returns false if the URL
// does not look like a GitHub issue or PR URL.
func RepositoryBaseURL(issueURL string) (string, bool) {
	m := repoBaseRe.FindStringSubmatch(issueURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var repoRefRe = regexp.MustCompile(`^([0-9A-Za-z_.-]+)/([0-9A-Za-z_.-]+)$`)

// ParseRepoRef splits an "owner/repo" reference.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	m := repoRefRe.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repository reference %q, expected owner/repo", ref)
	}
	return m[1], m[2], nil
}
