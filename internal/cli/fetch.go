package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jtran/techtree/pkg/errors"
	"github.com/jtran/techtree/pkg/github"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	output  string        // output file path
	refresh bool          // bypass the cache
	noCache bool          // disable caching entirely
	timeout time.Duration // overall fetch deadline
}

// fetchCommand creates the fetch command, which downloads issues via
// the GitHub REST API into the export format that map consumes.
func (c *CLI) fetchCommand() *cobra.Command {
	opts := fetchOpts{timeout: 5 * time.Minute}

	cmd := &cobra.Command{
		Use:   "fetch <owner/repo>",
		Short: "Fetch issues from GitHub into a local export file",
		Long: `Fetch downloads all issues and pull requests for a repository through
the GitHub REST API and writes them as a JSON export compatible with
"techtree map --issues".

Authentication uses the GITHUB_TOKEN environment variable when set.
Unauthenticated requests work for public repositories but are heavily
rate limited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <repo>-issues.json)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and fetch fresh data")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "overall fetch timeout")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, repoRef string, opts *fetchOpts) error {
	owner, repo, err := github.ParseRepoRef(repoRef)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cc, err := newCache(cfg, opts.noCache)
	if err != nil {
		printWarning("Cache unavailable, continuing without: %v", err)
		cc = nil
	} else {
		defer cc.Close()
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client := github.NewClient(githubToken(cfg),
		cc, time.Duration(cfg.Cache.TTLHours)*time.Hour)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching issues from %s/%s", owner, repo))
	spinner.Start()
	p := newProgress(c.Logger)
	issues, err := client.ListIssues(ctx, owner, repo, opts.refresh)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Fetched %d issues", len(issues)))

	output := opts.output
	if output == "" {
		output = repo + "-issues.json"
	}

	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Saved %d issues from %s", len(issues), repoRef)
	printFile(output)
	printNewline()
	printNextStep("Build the dependency map", fmt.Sprintf("%s map --issues %s", appName, shellQuote(output)))
	return nil
}

// shellQuote quotes a path for display in a suggested command when it
// contains spaces.
func shellQuote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return "'" + s + "'"
	}
	return s
}
