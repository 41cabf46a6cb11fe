package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// visualizeCommand creates the visualize command.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		filterArgs []string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [graph.json]",
		Short: "Compose a figure from an asset graph",
		Long: `Compose a figure from an asset graph document.

The graph is laid out with the selected algorithm, relationships are filtered
by type, and the result is written as a figure description (json), Graphviz
DOT (dot) or SVG (svg). 3D figures are projected onto the xy plane for dot and
svg output.

Results are cached locally; --refresh recomputes and overwrites the entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterArgs)
			if err != nil {
				return err
			}
			opts.Filters = filters
			opts.Formats = parseFormats(formatsStr)
			c.setCLIDefaults(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild the relationship index and ignore cached figures")

	cmd.Flags().IntVarP(&opts.Dimensions, "dims", "d", 0, "figure dimensions: 2 or 3 (default from config)")
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "layout: circular, grid, spring (default from config)")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "relationship filter type=bool (repeatable)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "spring layout iterations")
	cmd.Flags().StringVar(&opts.Title, "title", "", "figure title prefix")
	cmd.Flags().BoolVar(&opts.ShowHidden, "show-hidden", false, "draw filtered relationships as invisible edges (dot, svg)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	registerValueCompletions(cmd)

	return cmd
}

// runVisualize loads the graph, runs the pipeline and writes artifacts.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	load := startStage(c.Logger, "Loaded graph")
	g, err := asset.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	load.done("file", input, "assets", g.Len())

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Composing %dD %s figure...", opts.Dimensions, opts.Layout))
	spin.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spin.StopWithError("Visualization failed")
		return err
	}
	spin.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     result.Stats,
		cacheHit:  result.CacheInfo.FigureHit,
	})
}

// artifactWriteParams groups what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes each artifact to disk and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.input, p.output, p.formats)
	for _, format := range p.formats {
		path := paths[format]
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Figure complete")
	for _, format := range p.formats {
		printFile(paths[format])
	}
	printStats(p.stats.AssetCount, p.stats.VisibleRelationships, p.cacheHit)
	return nil
}

// artifactPaths resolves the output path per format. A single format with an
// explicit output writes there; otherwise output (or the input without its
// extension) is used as a base path.
func artifactPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		paths[f] = base + artifactExt(f)
	}
	return paths
}

func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return ".figure.json"
	}
	return "." + format
}
