package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jtran/techtree/pkg/pipeline"
)

// Cache backend names accepted in config.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk configuration, read from
// ~/.config/techtree/config.toml when present.
type Config struct {
	Graph  GraphConfig  `toml:"graph"`
	GitHub GitHubConfig `toml:"github"`
	Cache  CacheConfig  `toml:"cache"`
}

// GraphConfig provides defaults for the graph-building flags shared
// by map, render, and explore. Command-line flags take precedence.
type GraphConfig struct {
	// PriorDays is the default recency window for closed issues.
	PriorDays int `toml:"prior_days"`

	// IncludeProject restricts the graph to one project title.
	IncludeProject string `toml:"include_project"`
}

// GitHubConfig configures the fetch client. The GITHUB_TOKEN
// environment variable takes precedence over the file.
type GitHubConfig struct {
	Token string `toml:"token"`
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the Redis instance when Backend
	// is "redis".
	RedisAddr string `toml:"redis_addr"`

	// TTLHours is how long fetched issue listings stay fresh.
	TTLHours int `toml:"ttl_hours"`
}

// defaultConfig returns the configuration used when no config file
// exists.
func defaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			PriorDays: pipeline.DefaultPriorDays,
		},
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
			TTLHours:  1,
		},
	}
}

// loadConfig reads the config file, applying defaults for missing
// values. A missing file is not an error.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("unknown cache backend %q, expected file, redis, or none", c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend redis requires redis_addr")
	}
	if c.Graph.PriorDays < 0 {
		return fmt.Errorf("graph prior_days must not be negative")
	}
	return nil
}

// applyGraphDefaults replaces flag defaults with config file values
// for flags the user did not set on the command line.
func applyGraphDefaults(cmd *cobra.Command, cfg *Config, priorDays *int, includeProject *string) {
	if !cmd.Flags().Changed("prior-days") {
		*priorDays = cfg.Graph.PriorDays
	}
	if !cmd.Flags().Changed("include-project") && *includeProject == "" {
		*includeProject = cfg.Graph.IncludeProject
	}
}

// githubToken resolves the API token, preferring the environment.
func githubToken(cfg *Config) string {
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	return cfg.GitHub.Token
}
