package relation

import (
	"fmt"
	"reflect"
	"testing"
)

const testRepo = "https://github.com/foo/bar"

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"issue number", "#123", "https://github.com/foo/bar/issues/123", true},
		{"issue number with leading space", " #123", "https://github.com/foo/bar/issues/123", true},
		{"issue number with trailing space", "#123 ", "https://github.com/foo/bar/issues/123", true},
		{"issue number with trailing period", "#123.", "https://github.com/foo/bar/issues/123", true},
		{"owner repo number", "aaa/bbb#123", "https://github.com/aaa/bbb/issues/123", true},
		{"owner repo number with leading space", " aaa/bbb#123", "https://github.com/aaa/bbb/issues/123", true},
		{"owner repo number with trailing space", "aaa/bbb#123 ", "https://github.com/aaa/bbb/issues/123", true},
		{"owner repo number with trailing period", "aaa/bbb#123.", "https://github.com/aaa/bbb/issues/123", true},
		{"full URL", "https://github.com/aaa/bbb/issues/123", "https://github.com/aaa/bbb/issues/123", true},
		{"full URL with trailing period", "https://github.com/aaa/bbb/issues/123.", "https://github.com/aaa/bbb/issues/123", true},
		{"full URL in markdown link", "[text](https://github.com/aaa/bbb/issues/123)", "https://github.com/aaa/bbb/issues/123", true},
		{"pull request URL", "https://github.com/aaa/bbb/pull/9", "https://github.com/aaa/bbb/pull/9", true},
		{"number glued to word", "x#123y", "", false},
		{"non-github URL", "https://example.com/issues/123", "", false},
		{"email is not a link", "someone@github.com", "", false},
		{"empty", "", "", false},
		{"plain text", "just words here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractURL(tt.text, testRepo)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractURL(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractDependsOn(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Relation
	}{
		{
			name: "simple",
			body: "Depends on #12",
			want: []Relation{{Kind: KindDependsOn, Target: testRepo + "/issues/12"}},
		},
		{
			name: "with colon",
			body: "Depends on: #12",
			want: []Relation{{Kind: KindDependsOn, Target: testRepo + "/issues/12"}},
		},
		{
			name: "case insensitive",
			body: "DEPENDS ON #12",
			want: []Relation{{Kind: KindDependsOn, Target: testRepo + "/issues/12"}},
		},
		{
			name: "indented",
			body: "\t  depends on #12",
			want: []Relation{{Kind: KindDependsOn, Target: testRepo + "/issues/12"}},
		},
		{
			name: "cross repo",
			body: "Depends on aaa/bbb#5",
			want: []Relation{{Kind: KindDependsOn, Target: "https://github.com/aaa/bbb/issues/5"}},
		},
		{
			name: "full URL",
			body: "Depends on https://github.com/aaa/bbb/issues/7",
			want: []Relation{{Kind: KindDependsOn, Target: "https://github.com/aaa/bbb/issues/7"}},
		},
		{
			name: "multiple lines",
			body: "Intro text.\nDepends on #1\nDepends on #2\nOutro.",
			want: []Relation{
				{Kind: KindDependsOn, Target: testRepo + "/issues/1"},
				{Kind: KindDependsOn, Target: testRepo + "/issues/2"},
			},
		},
		{
			name: "mid-line mention ignored",
			body: "This depends on #12 somehow",
			want: nil,
		},
		{
			name: "empty remainder ignored",
			body: "Depends on:",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.body, testRepo, "some issue", nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestExtractTaskList(t *testing.T) {
	body := "- [ ] #1\n- [x] #2\n- [ ] no reference here\n- [x] aaa/bbb#3"
	want := []Relation{
		{Kind: KindTaskIncomplete, Target: testRepo + "/issues/1"},
		{Kind: KindTaskComplete, Target: testRepo + "/issues/2"},
		{Kind: KindTaskComplete, Target: "https://github.com/aaa/bbb/issues/3"},
	}

	got := Extract(body, testRepo, "tracking issue", nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractWarnsOnMalformed(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	got := Extract("Depends on x#123y", testRepo, "My Issue", warn)
	if got != nil {
		t.Errorf("Extract() = %v, want no relations", got)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	want := `Malformed issue or PR URL "x#123y" in project item "My Issue"`
	if warnings[0] != want {
		t.Errorf("warning = %q, want %q", warnings[0], want)
	}
}

func TestExtractNoWarningCases(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	// Empty remainders and task items without references are not
	// malformed, just absent.
	Extract("Depends on:\nDepends on\n- [ ] plain task\n- [x] done task", testRepo, "ctx", warn)
	if len(warnings) != 0 {
		t.Errorf("got warnings %v, want none", warnings)
	}
}

func TestExtractDeterministic(t *testing.T) {
	body := "Depends on #1\n- [ ] #2\n- [x] aaa/bbb#3\nDepends on https://github.com/x/y/issues/4"
	first := Extract(body, testRepo, "ctx", nil)
	second := Extract(body, testRepo, "ctx", nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
}

func TestKindString(t *testing.T) {
	if got := KindDependsOn.String(); got != "depends-on" {
		t.Errorf("KindDependsOn.String() = %q", got)
	}
	if got := KindTaskComplete.String(); got != "task-complete" {
		t.Errorf("KindTaskComplete.String() = %q", got)
	}
	if got := KindTaskIncomplete.String(); got != "task-incomplete" {
		t.Errorf("KindTaskIncomplete.String() = %q", got)
	}
}
