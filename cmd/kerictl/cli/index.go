package cli

import "github.com/spf13/cobra"

// RegisterRoutes attaches every command group defined in the cli package to
// the provided root command. Each group exposes its own root command (e.g.
// MatterCmd) which aggregates its own sub-commands.
func RegisterRoutes(root *cobra.Command) {
	root.AddCommand(
		MatterCmd,
		SerderCmd,
		KelCmd,
		RouteCmd,
	)
}
