package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtran/techtree/pkg/issuegraph"
)

func timeAgo(minutes int) time.Time {
	return time.Now().Add(-time.Duration(minutes) * time.Minute)
}

func testGraph(t *testing.T) *issuegraph.Graph {
	t.Helper()
	b := issuegraph.NewBuilder("Test", true, issuegraph.Filter{})
	nodes := []issuegraph.Node{
		{Text: "Build parser", URL: "https://g/1", State: issuegraph.StateOpen},
		{Text: "Build renderer", URL: "https://g/2", State: issuegraph.StateOpen, DependsOnURLs: []string{"https://g/1"}},
		{Text: "Ship release", URL: "https://g/3", State: issuegraph.StateClosed, DependsOnURLs: []string{"https://g/2"}},
	}
	for _, n := range nodes {
		if _, err := b.Insert(n); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

func TestGraphModelShowsAllByDefault(t *testing.T) {
	m := NewGraphModel(testGraph(t))
	if len(m.visible) != 3 {
		t.Errorf("visible rows = %d, want 3", len(m.visible))
	}
}

func TestGraphModelStateToggles(t *testing.T) {
	m := NewGraphModel(testGraph(t))

	m.ShowClosed = false
	m.recompute()
	if len(m.visible) != 2 {
		t.Errorf("open-only rows = %d, want 2", len(m.visible))
	}

	m.ShowOpen = false
	m.recompute()
	if len(m.visible) != 0 {
		t.Errorf("all-hidden rows = %d, want 0", len(m.visible))
	}

	m.ShowClosed = true
	m.recompute()
	if len(m.visible) != 1 || !m.visible[0].IsClosed() {
		t.Errorf("closed-only rows = %v", m.visible)
	}
}

func TestGraphModelSearch(t *testing.T) {
	m := NewGraphModel(testGraph(t))

	m.Search = "build"
	m.recompute()
	if len(m.visible) != 2 {
		t.Errorf("search rows = %d, want 2", len(m.visible))
	}

	m.Search = "nothing matches this"
	m.recompute()
	if len(m.visible) != 0 {
		t.Errorf("search rows = %d, want 0", len(m.visible))
	}

	// Cursor is clamped into the narrowed list.
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after empty result, want 0", m.Cursor)
	}
}

func TestGraphModelNavigationKeys(t *testing.T) {
	var model tea.Model = NewGraphModel(testGraph(t))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m := model.(GraphModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.Cursor)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = model.(GraphModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.Cursor)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = model.(GraphModel)
	if m.Cursor != 0 {
		t.Errorf("cursor must not go negative, got %d", m.Cursor)
	}
}

func TestGraphModelSearchInput(t *testing.T) {
	var model tea.Model = NewGraphModel(testGraph(t))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m := model.(GraphModel)
	if !m.Searching {
		t.Fatal("/ should enter search mode")
	}

	for _, r := range "ship" {
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(GraphModel)
	}
	if m.Search != "ship" {
		t.Errorf("search text = %q, want %q", m.Search, "ship")
	}
	if len(m.visible) != 1 {
		t.Errorf("visible rows = %d, want 1", len(m.visible))
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(GraphModel)
	if m.Searching {
		t.Error("enter should leave search mode")
	}
}

func TestGraphModelViewContainsSelection(t *testing.T) {
	m := NewGraphModel(testGraph(t))
	view := m.View()

	if !strings.Contains(view, "Build parser") {
		t.Errorf("view missing first row:\n%s", view)
	}
	if !strings.Contains(view, "https://g/1") {
		t.Errorf("view missing detail URL for selection:\n%s", view)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	if got := formatRelativeTime(timeAgo(30)); got != "30m ago" {
		t.Errorf("formatRelativeTime(30m) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long issue title", 10); got != "a very lo…" {
		t.Errorf("truncate(long) = %q", got)
	}
	if got := truncate("héllo wörld", 6); len([]rune(got)) != 6 {
		t.Errorf("truncate must count runes, got %q", got)
	}
}
