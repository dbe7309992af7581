package cmd

import (
	"fmt"

	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCleanCommand creates the 'clean' subcommand, which removes the fixture
// cache and the working project so the next run rebuilds from the template.
func NewCleanCommand(fs afero.Fs, settings *cfg.Settings, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the fixture cache and working project",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range []string{settings.CacheRoot, settings.WorkDir} {
				logger.Info("removing", "dir", dir)
				if err := fs.RemoveAll(dir); err != nil {
					return fmt.Errorf("removing %s: %w", dir, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
