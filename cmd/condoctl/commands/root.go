package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the condoctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "condoctl",
		Short: "condoctl - operator tooling for the condominium gateway",
		Long: `condoctl mints caller tokens for the condominium gateway and checks
residence numbers against a community layout.`,
		// Without a subcommand, show help instead of silently succeeding
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newTokenCommand(), newResidenceCommand())
	return root
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(root *cobra.Command, v, c, d string) {
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
