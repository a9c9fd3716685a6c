package issuegraph

// Graph owns all nodes of one build-then-render cycle.
//
// Nodes are held in an id-keyed map that is the single ownership point;
// the URL index stores only ids, never a second copy of a node. Both
// indexes preserve insertion order through the order slice. The zero
// value is not usable; graphs come from [Builder.Build].
//
// Graph is not safe for concurrent use. Once built it is read-only
// except for [Graph.Prune], which callers must treat as a single
// exclusive-access step.
type Graph struct {
	title   string
	showAll bool
	filter  Filter

	nodes map[NodeID]*Node
	order []NodeID
	urls  map[string]NodeID // non-empty URL -> id
}

// Title returns the diagram title set at construction.
func (g *Graph) Title() string { return g.title }

// ShowAll reports whether the show-all override is set. When true the
// filter is bypassed uniformly for rendering and pruning.
func (g *Graph) ShowAll() bool { return g.showAll }

// Filter returns the visibility filter attached at construction.
func (g *Graph) Filter() Filter { return g.filter }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of resolved dependency edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, id := range g.order {
		total += len(g.nodes[id].DependsOnIDs)
	}
	return total
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeByURL returns the node registered under the given URL. The empty
// URL is never indexed and always misses.
func (g *Graph) NodeByURL(url string) (*Node, bool) {
	if url == "" {
		return nil, false
	}
	id, ok := g.urls[url]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

// NodeAt returns the node at the given insertion-order index.
func (g *Graph) NodeAt(i int) *Node { return g.nodes[g.order[i]] }

// Nodes returns all nodes in insertion order. The slice is freshly
// allocated; the nodes themselves are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Visible reports whether a node passes the effective filter: the
// show-all override, or all filter criteria.
func (g *Graph) Visible(n *Node) bool {
	return g.showAll || g.filter.Passes(n)
}

// Prune removes every node failing the filter from the graph in place,
// including its URL-index entry, and strips the removed ids from the
// surviving adjacency sets. Removal repeats until stable, so a second
// Prune is always a no-op. A no-op when show-all is set.
func (g *Graph) Prune() {
	if g.showAll {
		return
	}
	for g.pruneOnce() {
	}
}

// pruneOnce removes the nodes currently failing the filter and reports
// whether anything was removed.
func (g *Graph) pruneOnce() bool {
	removed := make(map[NodeID]bool)
	for _, id := range g.order {
		if n := g.nodes[id]; !g.filter.Passes(n) {
			removed[id] = true
		}
	}
	if len(removed) == 0 {
		return false
	}

	keep := g.order[:0]
	for _, id := range g.order {
		n := g.nodes[id]
		if removed[id] {
			delete(g.nodes, id)
			if n.URL != "" {
				delete(g.urls, n.URL)
			}
			continue
		}
		keep = append(keep, id)
	}
	g.order = keep

	for _, id := range g.order {
		n := g.nodes[id]
		n.DependsOnIDs = dropIDs(n.DependsOnIDs, removed)
		n.DependedOnByIDs = dropIDs(n.DependedOnByIDs, removed)
	}
	return true
}

func dropIDs(ids []NodeID, removed map[NodeID]bool) []NodeID {
	out := ids[:0]
	for _, id := range ids {
		if !removed[id] {
			out = append(out, id)
		}
	}
	return out
}
