package mermaid

import (
	"fmt"
	"strings"

	"github.com/jtran/techtree/pkg/issuegraph"
)

// Render produces the Mermaid flowchart for a graph. The output ends
// with a newline and contains no code fence; callers wrap it as
// needed.
func Render(g *issuegraph.Graph) string {
	var b strings.Builder
	if g.Title() != "" {
		fmt.Fprintf(&b, "---\ntitle:%s\n---\n", g.Title())
	}
	b.WriteString("flowchart LR\n")
	// Purple border. Gray text.
	b.WriteString("  classDef status-done stroke:#7048D4,stroke-width:8px,color:#636871\n")
	// Green border.
	b.WriteString("  classDef status-not-done stroke:#317236,stroke-width:8px\n")

	for _, n := range g.Nodes() {
		if !g.Visible(n) {
			continue
		}

		fmt.Fprintf(&b, "  %d", n.ID)
		if n.Text != "" {
			fmt.Fprintf(&b, "(%s)", Quote(n.Text))
		}
		b.WriteString("\n")
		if n.IsClosed() {
			fmt.Fprintf(&b, "  class %d status-done\n", n.ID)
		} else {
			fmt.Fprintf(&b, "  class %d status-not-done\n", n.ID)
		}
		if n.URL != "" {
			fmt.Fprintf(&b, "  click %d %s\n", n.ID, Quote(n.URL))
		}
		for _, url := range n.DependsOnURLs {
			prereq, ok := g.NodeByURL(url)
			if !ok || !g.Visible(prereq) {
				continue
			}
			fmt.Fprintf(&b, "  %d --> %d\n", prereq.ID, n.ID)
		}
	}
	return b.String()
}

var quoteReplacer = strings.NewReplacer("#", "#35;", `"`, "#quot;")

// Quote escapes text for use inside a Mermaid node or click label.
// See https://mermaid.js.org/syntax/flowchart.html#special-characters-that-break-syntax
func Quote(text string) string {
	return `"` + quoteReplacer.Replace(text) + `"`
}
