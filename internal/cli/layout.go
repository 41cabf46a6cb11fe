package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/index"
	"github.com/matzehuels/assetgraph/pkg/layout"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		dims       int
		name       string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for an asset graph",
		Long: `Compute node positions for an asset graph.

Positions are printed as a table, or written as JSON (asset id -> {x, y, z})
with --output. Use "-" to write JSON to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dims == 0 {
				dims = c.cfg.Visualize.Dimensions
			}
			if name == "" {
				name = c.cfg.Visualize.Layout
			}
			if iterations == 0 {
				iterations = c.cfg.Visualize.Iterations
			}
			return c.runLayout(args[0], dims, name, iterations, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `write positions as JSON ("-" for stdout)`)
	cmd.Flags().IntVarP(&dims, "dims", "d", 0, "dimensions: 2 or 3 (default from config)")
	cmd.Flags().StringVarP(&name, "layout", "l", "", "layout: circular, grid, spring (default from config)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "spring layout iterations")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runLayout(input string, dims int, name string, iterations int, output string) error {
	place, err := layout.LookupWith(name, dims, layout.SpringOptions{Iterations: iterations})
	if err != nil {
		return err
	}
	g, err := asset.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	idx, err := index.Build(g, nil)
	if err != nil {
		return err
	}

	var rels []asset.Relationship
	for _, id := range idx.AssetIDs() {
		for _, typ := range idx.Types(id) {
			rels = append(rels, idx.Relationships(id, typ)...)
		}
	}
	ids := g.AssetIDs()
	pos := place(ids, layout.FromRelationships(rels))
	c.Logger.Debug("layout computed", "layout", name, "dims", dims, "assets", len(ids))

	switch output {
	case "":
		fmt.Println(positionsTable(ids, pos, dims))
		return nil
	case "-":
		return writePositions(os.Stdout, pos)
	default:
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := writePositions(f, pos); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		printSuccess("Layout complete")
		printFile(output)
		printNextStep("Render", appName+" visualize "+input+" --layout "+name)
		return nil
	}
}

func writePositions(f *os.File, pos layout.Positions) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(pos)
}

func positionsTable(ids []string, pos layout.Positions, dims int) string {
	headers := []string{"Asset", "X", "Y"}
	if dims == 3 {
		headers = append(headers, "Z")
	}
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		p := pos[id]
		row := []string{id, formatCoord(p.X), formatCoord(p.Y)}
		if dims == 3 {
			row = append(row, formatCoord(p.Z))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleValue
			default:
				return StyleNumber
			}
		}).
		Render()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
