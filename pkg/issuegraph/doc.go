// Package issuegraph models the dependency graph between GitHub issues.
//
// The graph is produced in two explicit stages. During ingestion a
// [Builder] accepts one [Node] per issue record, assigns each a small
// numeric [NodeID], and indexes non-empty issue URLs. [Builder.Build]
// then resolves the raw dependency URLs collected at ingestion into
// typed edges: forward references in [Node.DependsOnIDs] and the
// reverse adjacency in [Node.DependedOnByIDs]. Two passes are required
// because an issue may be ingested before the issue it depends on.
//
// The finalized [Graph] is read-only apart from [Graph.Prune], which
// removes nodes failing the attached [Filter] in place. The graph may
// contain cycles; no ordering guarantees are made.
package issuegraph
