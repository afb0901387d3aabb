package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// layoutExts are the file extensions offered when completing a layout
// argument.
var layoutExts = []string{"xlsx", "xlsm", "csv", "json"}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for eventlayout.

  $ source <(eventlayout completion bash)
  $ eventlayout completion zsh > "${fpath[1]}/_eventlayout"
  $ eventlayout completion fish | source
  PS> eventlayout completion powershell | Out-String | Invoke-Expression

Layout arguments complete to .xlsx, .xlsm, .csv and .json files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeLayouts sets layout file completion on every subcommand whose
// arguments are layouts. merge takes two.
func completeLayouts(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		n := strings.Count(cmd.Use, "<layout>")
		if cmd.Name() == "merge" {
			n = 2
		}
		if n == 0 {
			continue
		}
		cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) >= n {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return layoutExts, cobra.ShellCompDirectiveFilterFileExt
		}
	}
}
