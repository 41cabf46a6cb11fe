package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check that a graph document loads and composes",
		Long: `Check that a graph document loads and composes.

The document is decoded (unknown fields, duplicate assets and dangling
relationships are errors) and composed once with the grid layout, which runs
every figure check without the cost of a force simulation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := asset.ReadGraphFile(args[0])
			if err != nil {
				printError("Invalid document")
				return err
			}
			composer := &trace.Composer{Logger: c.Logger}
			if _, err := composer.Visualize2D(cmd.Context(), g, layout.Grid, nil); err != nil {
				printError("Graph does not compose")
				return err
			}

			printSuccess("%s is valid", args[0])
			printKeyValue("assets", fmt.Sprint(g.Len()))
			printKeyValue("relations", fmt.Sprint(g.RelationshipCount()))
			types := g.RelationshipTypes()
			if len(types) > 0 {
				printKeyValue("types", strings.Join(types, ", "))
			}
			for _, t := range types {
				if !asset.IsKnownRelationshipType(t) {
					printWarning("relationship type %q is not in the registry", t)
				}
			}
			return nil
		},
	}
}
