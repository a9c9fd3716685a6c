package issuegraph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDuplicateURL is returned by [Builder.Insert] when a node with
	// the same non-empty URL was already ingested. URL uniqueness is a
	// graph invariant; last-write-wins is never applied.
	ErrDuplicateURL = errors.New("duplicate node URL")

	// ErrCounterOverflow is returned by [Builder.Insert] when the id
	// counter exhausts its range. This is a fatal programming-limit
	// condition; the run must abort rather than wrap around.
	ErrCounterOverflow = errors.New("node id counter overflow")

	// ErrBuilderFinalized is returned by [Builder.Insert] after
	// [Builder.Build] has been called. Builders are single-use.
	ErrBuilderFinalized = errors.New("builder already finalized")
)

// Builder accumulates nodes during ingestion and resolves their
// dependency references when built. Alongside the graph's own indexes
// it keeps a side table keyed by raw dependency URL, recording which
// node ids declared a dependency on that URL; the table is what allows
// a dependent to be ingested before the node it depends on.
type Builder struct {
	g          *Graph
	dependents map[string][]NodeID // raw URL -> ids that depend on it
	nextID     uint64
	built      bool
}

// NewBuilder creates a builder for a graph carrying the given title,
// show-all override, and filter.
func NewBuilder(title string, showAll bool, f Filter) *Builder {
	return &Builder{
		g: &Graph{
			title:   title,
			showAll: showAll,
			filter:  f,
			nodes:   make(map[NodeID]*Node),
			urls:    make(map[string]NodeID),
		},
		dependents: make(map[string][]NodeID),
		nextID:     1,
	}
}

// Insert ingests one node, assigning it the next id. The node's
// DependsOnURLs are deduplicated preserving insertion order; its
// DependsOnIDs and DependedOnByIDs are ignored and recomputed by
// [Builder.Build].
func (b *Builder) Insert(n Node) (NodeID, error) {
	if b.built {
		return 0, ErrBuilderFinalized
	}
	if b.nextID > math.MaxUint32 {
		return 0, ErrCounterOverflow
	}
	if n.URL != "" {
		if _, exists := b.g.urls[n.URL]; exists {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateURL, n.URL)
		}
	}

	id := NodeID(b.nextID)
	b.nextID++

	n.ID = id
	n.DependsOnURLs = dedupe(n.DependsOnURLs)
	n.DependsOnIDs = nil
	n.DependedOnByIDs = nil

	node := &n
	b.g.nodes[id] = node
	b.g.order = append(b.g.order, id)
	if n.URL != "" {
		b.g.urls[n.URL] = id
	}
	for _, url := range node.DependsOnURLs {
		b.dependents[url] = append(b.dependents[url], id)
	}
	return id, nil
}

// Build finalizes the graph in two passes. Pass one resolves every raw
// dependency URL through the URL index into DependsOnIDs; URLs with no
// matching node are silently dropped from the edge set but remain in
// DependsOnURLs for link rendering. Pass two assigns each node the
// dependent-id set accumulated for its URL, yielding the reverse
// adjacency; nodes nobody depends on get an empty set, not an absent
// one. No further inserts are accepted afterwards.
func (b *Builder) Build() *Graph {
	for _, id := range b.g.order {
		n := b.g.nodes[id]
		n.DependsOnIDs = make([]NodeID, 0, len(n.DependsOnURLs))
		for _, url := range n.DependsOnURLs {
			if dep, ok := b.g.urls[url]; ok {
				n.DependsOnIDs = append(n.DependsOnIDs, dep)
			}
		}
		n.DependedOnByIDs = []NodeID{}
	}
	for url, ids := range b.dependents {
		if id, ok := b.g.urls[url]; ok {
			b.g.nodes[id].DependedOnByIDs = ids
		}
	}
	b.built = true
	return b.g
}

func dedupe(urls []string) []string {
	if len(urls) < 2 {
		return urls
	}
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
