package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jtran/techtree/pkg/github"
	"github.com/jtran/techtree/pkg/pipeline"
)

// exploreOpts holds the command-line flags for the explore command.
type exploreOpts struct {
	issues         []string
	all            bool
	includeProject string
	priorDays      int
}

// exploreCommand creates the explore command, an interactive terminal
// browser for the dependency graph.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOpts{priorDays: pipeline.DefaultPriorDays}

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the dependency graph interactively",
		Long: `Explore opens a terminal browser over the dependency graph. Navigate
with j/k or the arrow keys, press / to search titles, and toggle open
and closed issues with o and c.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyGraphDefaults(cmd, cfg, &opts.priorDays, &opts.includeProject)
			return c.runExplore(cmd, &opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.issues, "issues", nil, "JSON issues list stored in a file, - for stdin (repeatable)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "show all tasks; don't use default filter")
	cmd.Flags().StringVar(&opts.includeProject, "include-project", "", "filter to only include given project title")
	cmd.Flags().IntVar(&opts.priorDays, "prior-days", opts.priorDays, "additionally include closed issues updated in the last N days")

	return cmd
}

func (c *CLI) runExplore(cmd *cobra.Command, opts *exploreOpts) error {
	issues, err := github.LoadIssueFiles(opts.issues)
	if err != nil {
		return err
	}

	g, err := pipeline.Build(cmd.Context(), issues, pipeline.Options{
		ShowAll:        opts.all,
		IncludeProject: opts.includeProject,
		PriorDays:      opts.priorDays,
		Logger:         c.Logger.Warnf,
	})
	if err != nil {
		return err
	}

	if g.NodeCount() == 0 {
		printInfo("No issues to explore")
		return nil
	}

	model := NewGraphModel(g)
	p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
