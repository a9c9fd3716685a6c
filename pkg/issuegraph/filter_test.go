package issuegraph

import (
	"testing"
	"time"
)

func TestFilterPasses(t *testing.T) {
	after := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		node   Node
		want   bool
	}{
		{
			name:   "open connected node passes",
			filter: Filter{ClosedAfter: after},
			node:   Node{State: StateOpen, DependsOnURLs: []string{"https://x"}},
			want:   true,
		},
		{
			name:   "isolated node fails connectedness",
			filter: Filter{},
			node:   Node{State: StateOpen},
			want:   false,
		},
		{
			name:   "blocked-by counts as connected",
			filter: Filter{},
			node:   Node{State: StateOpen, DependedOnByIDs: []NodeID{7}},
			want:   true,
		},
		{
			name:   "stale closed node fails recency",
			filter: Filter{ClosedAfter: after},
			node:   Node{State: StateClosed, UpdatedAt: after.Add(-time.Minute), DependsOnURLs: []string{"https://x"}},
			want:   false,
		},
		{
			name:   "closed node updated at the boundary passes",
			filter: Filter{ClosedAfter: after},
			node:   Node{State: StateClosed, UpdatedAt: after, DependsOnURLs: []string{"https://x"}},
			want:   true,
		},
		{
			name:   "open node bypasses recency",
			filter: Filter{ClosedAfter: after},
			node:   Node{State: StateOpen, UpdatedAt: after.Add(-24 * time.Hour), DependsOnURLs: []string{"https://x"}},
			want:   true,
		},
		{
			name:   "project mismatch fails",
			filter: Filter{IncludeProject: "Roadmap"},
			node:   Node{State: StateOpen, ProjectTitles: []string{"Other"}, DependsOnURLs: []string{"https://x"}},
			want:   false,
		},
		{
			name:   "project match passes",
			filter: Filter{IncludeProject: "Roadmap"},
			node:   Node{State: StateOpen, ProjectTitles: []string{"Other", "Roadmap"}, DependsOnURLs: []string{"https://x"}},
			want:   true,
		},
		{
			name:   "empty project filter includes all projects",
			filter: Filter{},
			node:   Node{State: StateOpen, DependsOnURLs: []string{"https://x"}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Passes(&tt.node); got != tt.want {
				t.Errorf("Passes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if StateOpen.String() != "open" || StateClosed.String() != "closed" {
		t.Errorf("State strings = %q, %q", StateOpen.String(), StateClosed.String())
	}
}

func TestAddDependsOnURLDedupes(t *testing.T) {
	var n Node
	n.AddDependsOnURL("https://a")
	n.AddDependsOnURL("https://b")
	n.AddDependsOnURL("https://a")
	if len(n.DependsOnURLs) != 2 {
		t.Errorf("DependsOnURLs = %v, want 2 unique entries", n.DependsOnURLs)
	}
}
