package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtran/techtree/pkg/github"
	"github.com/jtran/techtree/pkg/pipeline"
	"github.com/jtran/techtree/pkg/render/mermaid"
)

// mapOpts holds the command-line flags for the map command.
type mapOpts struct {
	issues         []string // issue export files, "-" reads stdin
	header         string   // markdown emitted above the diagram
	title          string   // mermaid diagram title
	all            bool     // disable the default filter
	includeProject string   // restrict to one project board title
	priorDays      int      // recency window for closed issues
	output         string   // output file, empty for stdout
}

// mapCommand creates the map command, which builds a dependency chart
// from issue exports and prints it as a fenced Mermaid block.
func (c *CLI) mapCommand() *cobra.Command {
	opts := mapOpts{priorDays: pipeline.DefaultPriorDays}

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Visualize the dependency map as Mermaid markdown",
		Long: `Map builds a dependency chart from exported GitHub issues and prints
Markdown containing a Mermaid flowchart.

Issue exports come from the GitHub CLI:

  gh issue list --limit 1000 --state all \
    --json title,body,url,state,labels,projectItems,updatedAt > issues.json

or from "techtree fetch owner/repo".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyGraphDefaults(cmd, cfg, &opts.priorDays, &opts.includeProject)
			return c.runMap(cmd, &opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.issues, "issues", nil, "JSON issues list stored in a file, - for stdin (repeatable)")
	cmd.Flags().StringVar(&opts.header, "header", "", "header markdown to output at the top of the diagram")
	cmd.Flags().StringVar(&opts.title, "title", "", "Mermaid diagram title")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "output all tasks; don't use default filter")
	cmd.Flags().StringVar(&opts.includeProject, "include-project", "", "filter to only include given project title")
	cmd.Flags().IntVar(&opts.priorDays, "prior-days", opts.priorDays, "additionally include closed issues updated in the last N days")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runMap(cmd *cobra.Command, opts *mapOpts) error {
	issues, err := github.LoadIssueFiles(opts.issues)
	if err != nil {
		return err
	}

	g, err := pipeline.Build(cmd.Context(), issues, pipeline.Options{
		Title:          opts.title,
		ShowAll:        opts.all,
		IncludeProject: opts.includeProject,
		PriorDays:      opts.priorDays,
		Logger:         c.Logger.Warnf,
	})
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.header != "" {
		fmt.Fprintln(out, opts.header)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "A &rarr; B means A blocks B, or B depends on A.")
	fmt.Fprintln(out, "Press &harr; for full screen.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "```mermaid")
	fmt.Fprint(out, mermaid.Render(g))
	fmt.Fprintln(out, "```")
	return nil
}

// openOutput opens the output file, or wraps stdout when path is
// empty so callers can Close unconditionally.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
