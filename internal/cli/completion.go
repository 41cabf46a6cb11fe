package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for assetgraph.

  $ source <(assetgraph completion bash)
  $ assetgraph completion zsh > "${fpath[1]}/_assetgraph"
  $ assetgraph completion fish | source
  PS> assetgraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerValueCompletions offers flag values for the layout, format and
// filter flags of cmd. Flags the command does not define are skipped.
func registerValueCompletions(cmd *cobra.Command) {
	completions := map[string]cobra.CompletionFunc{
		"layout": cobra.FixedCompletions(layout.Supported(pipeline.DefaultDimensions), cobra.ShellCompDirectiveNoFileComp),
		"format": cobra.FixedCompletions(slices.Sorted(maps.Keys(pipeline.ValidFormats)), cobra.ShellCompDirectiveNoFileComp),
		"filter": completeFilters,
	}
	for name, fn := range completions {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}

// completeFilters suggests "type=false" for every registered relationship
// type, since filters exist to hide types.
func completeFilters(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, t := range asset.KnownRelationshipTypes() {
		if strings.HasPrefix(t, toComplete) {
			out = append(out, t+"=false")
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
