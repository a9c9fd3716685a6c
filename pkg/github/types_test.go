package github

import (
	"encoding/json"
	"testing"

	"github.com/jtran/techtree/pkg/errors"
)

func TestStateUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{`"OPEN"`, StateOpen},
		{`"open"`, StateOpen},
		{`"CLOSED"`, StateClosed},
		{`"closed"`, StateClosed},
		{`"MERGED"`, StateClosed},
	}

	for _, tt := range tests {
		var s State
		if err := json.Unmarshal([]byte(tt.raw), &s); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.raw, err)
			continue
		}
		if s != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.raw, s, tt.want)
		}
	}
}

func TestStateUnmarshalUnknown(t *testing.T) {
	var s State
	err := json.Unmarshal([]byte(`"DRAFT"`), &s)
	if err == nil {
		t.Fatal("Unmarshal unknown state succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidIssueData) {
		t.Errorf("error code = %v, want ErrCodeInvalidIssueData", errors.GetCode(err))
	}
}

func TestRepositoryBaseURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://github.com/foo/bar/issues/42", "https://github.com/foo/bar", true},
		{"https://github.com/foo/bar/pull/7", "https://github.com/foo/bar", true},
		{"http://github.com/foo/bar/issues/1", "http://github.com/foo/bar", true},
		{"https://github.com/foo/bar", "", false},
		{"https://example.com/foo/bar/issues/42", "", false},
		{"", "", false},
		{"not a url", "", false},
	}

	for _, tt := range tests {
		got, ok := RepositoryBaseURL(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("RepositoryBaseURL(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRepoRef(t *testing.T) {
	owner, repo, err := ParseRepoRef("rust-lang/rust")
	if err != nil || owner != "rust-lang" || repo != "rust" {
		t.Errorf("ParseRepoRef = (%q, %q, %v)", owner, repo, err)
	}

	for _, bad := range []string{"", "justname", "a/b/c", "a b/c"} {
		if _, _, err := ParseRepoRef(bad); err == nil {
			t.Errorf("ParseRepoRef(%q) succeeded, want error", bad)
		}
	}
}

func TestIssueAccessors(t *testing.T) {
	i := Issue{
		Labels:       []Label{{Name: "bug"}, {Name: "p1"}},
		ProjectItems: []ProjectItem{{Title: "Roadmap"}},
	}
	if got := i.LabelNames(); len(got) != 2 || got[0] != "bug" {
		t.Errorf("LabelNames() = %v", got)
	}
	if got := i.ProjectTitles(); len(got) != 1 || got[0] != "Roadmap" {
		t.Errorf("ProjectTitles() = %v", got)
	}

	var empty Issue
	if empty.LabelNames() != nil || empty.ProjectTitles() != nil {
		t.Error("accessors on empty issue should return nil")
	}
}
