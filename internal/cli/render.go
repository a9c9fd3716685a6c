package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtran/techtree/pkg/github"
	"github.com/jtran/techtree/pkg/pipeline"
	"github.com/jtran/techtree/pkg/render/dot"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"

	// defaultPNGScale produces 2x resolution suitable for high-DPI displays.
	defaultPNGScale = 2.0
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	issues         []string
	title          string
	all            bool
	includeProject string
	priorDays      int
	format         string
	detailed       bool
	scale          float64
	output         string
}

// renderCommand creates the render command, which draws the
// dependency graph with Graphviz instead of emitting Mermaid text.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		priorDays: pipeline.DefaultPriorDays,
		format:    formatSVG,
		scale:     defaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dependency graph as an image",
		Long: `Render builds the dependency chart like map does, then lays it out
with Graphviz and writes DOT, SVG, PNG, or PDF output.

PNG and PDF require librsvg (rsvg-convert) on the PATH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyGraphDefaults(cmd, cfg, &opts.priorDays, &opts.includeProject)
			return c.runRender(cmd, &opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.issues, "issues", nil, "JSON issues list stored in a file, - for stdin (repeatable)")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "output all tasks; don't use default filter")
	cmd.Flags().StringVar(&opts.includeProject, "include-project", "", "filter to only include given project title")
	cmd.Flags().IntVar(&opts.priorDays, "prior-days", opts.priorDays, "additionally include closed issues updated in the last N days")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include state and URL in node labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default graph.<format>)")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG, formatPDF:
		return nil
	}
	return fmt.Errorf("unknown format %q, expected dot, svg, png, or pdf", format)
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
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

	dotText := dot.ToDOT(g, dot.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dotText)
	case formatSVG:
		data, err = dot.RenderSVG(cmd.Context(), dotText)
	case formatPNG:
		data, err = dot.RenderPNG(cmd.Context(), dotText, opts.scale)
	case formatPDF:
		data, err = dot.RenderPDF(cmd.Context(), dotText)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = "graph." + opts.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", output)
	printStats(g.NodeCount(), g.EdgeCount())
	printFile(output)
	return nil
}
