package cmd

import (
	"context"

	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/environment"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand(fs afero.Fs, ctx context.Context, settings *cfg.Settings,
	env *environment.Environment, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "maketest",
		Short: "Harness for interactive code generators.",
		Long: `Maketest exercises interactive command-line code generators end-to-end:
it materializes a fixture project, launches the generator, feeds it scripted
answers as if typed by a human, and validates the artifacts it produced.`,
	}

	rootCmd.AddCommand(NewRunCommand(fs, ctx, settings, logger))
	rootCmd.AddCommand(NewCleanCommand(fs, settings, logger))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
