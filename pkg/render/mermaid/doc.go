// Package mermaid renders an issue graph as Mermaid flowchart text.
//
// Output is deterministic: nodes appear in insertion order, and each
// node's outgoing edges follow the order its dependencies were
// recorded in. Nodes hidden by the graph's filter are omitted, along
// with any edges touching them.
package mermaid
