package cmd

import (
	"fmt"

	"github.com/maketest/maketest/pkg/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the 'version' subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the maketest version",
		Run: func(cmd *cobra.Command, args []string) {
			out := version.Version
			if version.Commit != "" {
				out += " (" + version.Commit + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		},
	}
}
