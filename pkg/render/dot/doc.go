// Package dot renders an issue graph to Graphviz DOT and, via the
// embedded Graphviz engine, to SVG, PNG, and PDF.
//
// Edges point from prerequisite to dependent, matching the Mermaid
// renderer. Nodes hidden by the graph's filter are omitted, along
// with any edges touching them.
package dot
