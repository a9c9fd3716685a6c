package issuegraph

import (
	"slices"
	"time"
)

// State is the lifecycle state of an issue node.
type State int

const (
	// StateOpen marks an issue that is still open.
	StateOpen State = iota
	// StateClosed marks an issue that has been closed or merged.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	if s == StateClosed {
		return "closed"
	}
	return "open"
}

// NodeID identifies a node within a single build. IDs are assigned by
// the [Builder] from a counter starting at 1 and are unique and stable
// for the lifetime of the graph. They carry no meaning across runs.
type NodeID uint32

// Node is one issue or task in the dependency graph.
//
// DependsOnURLs holds the raw dependency URLs collected at ingestion,
// in insertion order with duplicates dropped. DependsOnIDs and
// DependedOnByIDs are empty until [Builder.Build] resolves them; after
// Build both are always non-nil, even when empty.
type Node struct {
	ID            NodeID
	Text          string // display title
	URL           string // unique external identifier; "" means no URL
	State         State
	Labels        []string
	ProjectTitles []string
	UpdatedAt     time.Time

	DependsOnURLs   []string
	DependsOnIDs    []NodeID
	DependedOnByIDs []NodeID
}

// AddDependsOnURL records a raw dependency URL, keeping insertion
// order and dropping duplicates.
func (n *Node) AddDependsOnURL(url string) {
	if slices.Contains(n.DependsOnURLs, url) {
		return
	}
	n.DependsOnURLs = append(n.DependsOnURLs, url)
}

// HasProjectTitle reports whether the node belongs to the named
// project grouping (exact string match).
func (n *Node) HasProjectTitle(title string) bool {
	return slices.Contains(n.ProjectTitles, title)
}

// BlocksCount returns how many other nodes this node blocks. It is
// always derived from the reverse adjacency, never stored separately.
func (n *Node) BlocksCount() int { return len(n.DependedOnByIDs) }

// IsClosed reports whether the node is closed.
func (n *Node) IsClosed() bool { return n.State == StateClosed }
