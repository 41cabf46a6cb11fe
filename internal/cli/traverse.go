package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// traverseCommand creates the traverse command.
func (c *CLI) traverseCommand() *cobra.Command {
	var hops int

	cmd := &cobra.Command{
		Use:   "traverse [graph.json] [asset]",
		Short: "List assets reachable from a root asset",
		Long: `List assets reachable from a root asset within a number of hops.

Each reachable asset is reported once, at the depth it is first reached, with
the path the traversal discovered. Without an asset argument an interactive
picker is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := asset.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			root := ""
			if len(args) == 2 {
				root = args[1]
			} else {
				root, err = pickAsset(g)
				if err != nil {
					return err
				}
				if root == "" {
					printInfo("No asset selected")
					return nil
				}
			}
			return runTraverse(cmd.Context(), g, root, hops)
		},
	}

	cmd.Flags().IntVar(&hops, "hops", 2, "maximum number of hops")
	return cmd
}

// pickAsset runs the interactive asset picker.
func pickAsset(g *asset.Graph) (string, error) {
	if g.Len() == 0 {
		return "", fmt.Errorf("graph has no assets")
	}
	final, err := tea.NewProgram(NewAssetListModel(g)).Run()
	if err != nil {
		return "", fmt.Errorf("asset picker: %w", err)
	}
	return final.(AssetListModel).Selected, nil
}

func runTraverse(ctx context.Context, g *asset.Graph, root string, hops int) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	n, err := runner.Traverse(ctx, g, root, hops)
	if err != nil {
		return err
	}

	printSuccess("Traversal from %s", StyleHighlight.Render(root))
	reached := n.Reachable()
	if len(reached) == 0 {
		printDetail("no assets reachable within %d hops", hops)
		return nil
	}
	for depth, level := range n.Hops {
		printKeyValue(fmt.Sprintf("hop %d", depth+1), strings.Join(level, ", "))
	}
	printNewline()
	for _, id := range reached {
		line := strings.Join(n.Path(id), " "+iconArrow+" ")
		if via := n.Intermediates(id); len(via) > 0 {
			line += StyleDim.Render(fmt.Sprintf("  (via %s)", strings.Join(via, ", ")))
		}
		printDetail("%s", line)
	}
	printNewline()
	printKeyValue("links", fmt.Sprintf("%d within the neighbourhood", len(n.Relationships)))
	return nil
}
