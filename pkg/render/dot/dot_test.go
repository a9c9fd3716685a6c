package dot

import (
	"strings"
	"testing"
	"time"

	"github.com/jtran/techtree/pkg/issuegraph"
)

func mustInsert(t *testing.T, b *issuegraph.Builder, n issuegraph.Node) {
	t.Helper()
	if _, err := b.Insert(n); err != nil {
		t.Fatalf("Insert(%q): %v", n.URL, err)
	}
}

func TestToDOT_Basic(t *testing.T) {
	b := issuegraph.NewBuilder("", true, issuegraph.Filter{})
	mustInsert(t, b, issuegraph.Node{Text: "First", URL: "https://a"})
	mustInsert(t, b, issuegraph.Node{Text: "Second", URL: "https://b", DependsOnURLs: []string{"https://a"}})
	g := b.Build()

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `label="First"`) {
		t.Error("ToDOT() output missing node label First")
	}
	if !strings.Contains(dot, `URL="https://b"`) {
		t.Error("ToDOT() output missing URL attribute")
	}
	if !strings.Contains(dot, "1 -> 2") {
		t.Error("ToDOT() output missing edge from prerequisite to dependent")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	b := issuegraph.NewBuilder("", true, issuegraph.Filter{})
	mustInsert(t, b, issuegraph.Node{
		Text:  "Task",
		URL:   "https://github.com/foo/bar/issues/1",
		State: issuegraph.StateClosed,
	})
	g := b.Build()

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "state: closed") {
		t.Error("ToDOT() detailed output missing state")
	}
	if !strings.Contains(dot, "github.com/foo/bar/issues/1") {
		t.Error("ToDOT() detailed output missing URL in label")
	}
}

func TestToDOT_FilterSuppressesHiddenNodes(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := issuegraph.NewBuilder("", false, issuegraph.Filter{ClosedAfter: cutoff})
	mustInsert(t, b, issuegraph.Node{Text: "visible", URL: "https://a"})
	mustInsert(t, b, issuegraph.Node{
		Text:          "hidden",
		URL:           "https://b",
		State:         issuegraph.StateClosed,
		UpdatedAt:     cutoff.Add(-time.Hour),
		DependsOnURLs: []string{"https://a"},
	})
	g := b.Build()

	dot := ToDOT(g, Options{})

	if strings.Contains(dot, `label="hidden"`) {
		t.Error("ToDOT() rendered a filtered node")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() rendered an edge touching a hidden node")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "replaces svg tag with normalized viewBox",
			svg:  `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`,
		},
		{
			name: "no viewBox leaves input untouched",
			svg:  `<svg width="100pt">`,
			want: `<svg width="100pt">`,
		},
		{
			name: "zero dimensions leaves input untouched",
			svg:  `<svg viewBox="0 0 0 0">`,
			want: `<svg viewBox="0 0 0 0">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}
