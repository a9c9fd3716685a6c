package issuegraph

import "time"

// Filter decides whether a node is visible. It is attached to the
// graph at construction and immutable afterwards. A node passes only
// when all three criteria pass; the show-all override on the graph
// bypasses the filter entirely.
type Filter struct {
	// IncludeProject restricts nodes to those listing this project
	// title. Empty means no project restriction.
	IncludeProject string

	// ClosedAfter hides closed nodes last updated before this instant.
	// Open nodes bypass the recency test. The zero time keeps all
	// closed nodes.
	ClosedAfter time.Time
}

// Passes reports whether the node satisfies the project, recency, and
// connectedness criteria. Pure; no side effects.
func (f Filter) Passes(n *Node) bool {
	return f.passesProject(n) && f.passesRecency(n) && f.passesConnected(n)
}

func (f Filter) passesProject(n *Node) bool {
	return f.IncludeProject == "" || n.HasProjectTitle(f.IncludeProject)
}

func (f Filter) passesRecency(n *Node) bool {
	return n.State == StateOpen || !n.UpdatedAt.Before(f.ClosedAfter)
}

// passesConnected hides isolated nodes: a node must either declare a
// raw dependency or block at least one other node.
func (f Filter) passesConnected(n *Node) bool {
	return len(n.DependsOnURLs) > 0 || len(n.DependedOnByIDs) > 0
}
