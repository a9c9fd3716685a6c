// Package pipeline wires issue loading, relation extraction, and
// graph construction into a single entry point shared by the CLI
// commands.
package pipeline

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/jtran/techtree/pkg/errors"
	"github.com/jtran/techtree/pkg/github"
	"github.com/jtran/techtree/pkg/issuegraph"
	"github.com/jtran/techtree/pkg/observability"
	"github.com/jtran/techtree/pkg/relation"
)

// DefaultPriorDays is how many days a closed issue stays visible
// after its last update.
const DefaultPriorDays = 7

// Options configures graph construction.
type Options struct {
	// Title is the chart title. Empty omits the title block.
	Title string

	// ShowAll disables filtering entirely.
	ShowAll bool

	// IncludeProject restricts nodes to issues on the named project
	// board. Empty includes everything.
	IncludeProject string

	// PriorDays is the recency window for closed issues. Values <= 0
	// use DefaultPriorDays.
	PriorDays int

	// Now overrides the reference time for the recency window. Zero
	// uses time.Now().
	Now time.Time

	// Logger receives warnings about malformed input. Nil discards
	// them.
	Logger func(msg string, args ...any)
}

func (o Options) warn(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger(msg, args...)
	}
}

// Build constructs a finalized issue graph from exported issues.
//
// Malformed records degrade rather than fail: an issue whose URL does
// not identify a repository contributes a node with no dependencies,
// and a duplicate issue URL is skipped. Both produce warnings. The
// only fatal build error is node ID exhaustion.
func Build(ctx context.Context, issues []github.Issue, opts Options) (*issuegraph.Graph, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	days := opts.PriorDays
	if days <= 0 {
		days = DefaultPriorDays
	}

	filter := issuegraph.Filter{
		IncludeProject: opts.IncludeProject,
		ClosedAfter:    now.AddDate(0, 0, -days),
	}
	b := issuegraph.NewBuilder(opts.Title, opts.ShowAll, filter)

	observability.Pipeline().OnExtractStart(ctx, len(issues))
	start := time.Now()
	relationCount := 0

	for _, issue := range issues {
		node := issuegraph.Node{
			Text:          issue.Title,
			URL:           issue.URL,
			State:         toNodeState(issue.State),
			Labels:        issue.LabelNames(),
			ProjectTitles: issue.ProjectTitles(),
			UpdatedAt:     issue.UpdatedAt,
		}

		if repository, ok := github.RepositoryBaseURL(issue.URL); ok {
			rels := relation.Extract(issue.Body, repository, issue.Title, opts.warn)
			for _, rel := range rels {
				node.AddDependsOnURL(rel.Target)
			}
			relationCount += len(rels)
		} else {
			opts.warn("Unexpected issue URL; couldn't parse repository: %q", issue.URL)
		}

		if _, err := b.Insert(node); err != nil {
			if goerrors.Is(err, issuegraph.ErrDuplicateURL) {
				opts.warn("Skipping issue with duplicate URL: %q", issue.URL)
				continue
			}
			observability.Pipeline().OnExtractComplete(ctx, len(issues), relationCount, time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeCounterOverflow, err, "insert issue %q", issue.URL)
		}
	}
	observability.Pipeline().OnExtractComplete(ctx, len(issues), relationCount, time.Since(start), nil)

	observability.Pipeline().OnBuildStart(ctx, len(issues))
	start = time.Now()
	g := b.Build()
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

func toNodeState(s github.State) issuegraph.State {
	if s.IsClosed() {
		return issuegraph.StateClosed
	}
	return issuegraph.StateOpen
}
