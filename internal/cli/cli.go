// Package cli implements the assetgraph command-line interface.
//
// # Commands
//
//   - visualize: compose a graph document into a figure (json, dot, svg)
//   - layout: print or write node positions
//   - traverse: list assets reachable from a root, with the paths found
//   - validate: load a document and check it composes
//   - serve: run the HTTP host
//   - cache: inspect or clear the figure cache
//
// # Configuration
//
// Defaults come from the TOML file selected with --config (or the XDG
// default); flags override it. All commands support --verbose (-v) for
// debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/internal/config"
	"github.com/matzehuels/assetgraph/pkg/buildinfo"
	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Assetgraph lays out and renders asset relationship graphs",
		Long:         `Assetgraph turns a JSON document of assets and typed relationships into 2D or 3D figures: circular, grid or force-directed layouts, filtered by relationship type, rendered as a figure description, Graphviz DOT or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/assetgraph/config.toml)")

	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.traverseCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "backend", cfg.Cache.Backend, "layout", cfg.Visualize.Layout)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if p := c.cfg.Cache.Prefix; p != "" {
		keyer = cache.NewScopedKeyer(nil, p)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	if ttl, err := c.cfg.TTL(); err == nil {
		runner.TTL = ttl
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr: c.cfg.Cache.RedisAddr,
			DB:   c.cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// cacheDir returns the configured cache directory (XDG default ~/.cache/assetgraph/).
func (c *CLI) cacheDir() (string, error) {
	return c.cfg.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies configured defaults on top of pipeline defaults.
func (c *CLI) setCLIDefaults(opts *pipeline.Options) {
	v := c.cfg.Visualize
	if opts.Dimensions == 0 {
		opts.Dimensions = v.Dimensions
	}
	if opts.Layout == "" {
		opts.Layout = v.Layout
	}
	if opts.Iterations == 0 {
		opts.Iterations = v.Iterations
	}
	if opts.Title == "" {
		opts.Title = v.Title
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

// parseFilters parses repeated --filter values of the form type=bool.
// A bare type enables it.
func parseFilters(values []string) (map[string]bool, error) {
	if len(values) == 0 {
		return nil, nil
	}
	filters := make(map[string]bool, len(values))
	for _, v := range values {
		typ, raw, found := strings.Cut(v, "=")
		typ = strings.TrimSpace(typ)
		if typ == "" {
			return nil, fmt.Errorf("invalid filter %q: missing relationship type", v)
		}
		enabled := true
		if found {
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", v, err)
			}
			enabled = b
		}
		filters[typ] = enabled
	}
	return filters, nil
}
