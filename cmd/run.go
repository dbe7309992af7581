package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/harness"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/scenario"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// NewRunCommand creates the 'run' subcommand for executing scenario files.
// Scenarios run sequentially; they share one working project directory.
func NewRunCommand(fs afero.Fs, ctx context.Context, settings *cfg.Settings,
	logger *logging.Logger) *cobra.Command {
	var keepGoing bool

	runCmd := &cobra.Command{
		Use:   "run [scenarioFile...]",
		Short: "Run generator scenarios",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := harness.New(fs, settings, logger)

			failures := 0
			for _, path := range args {
				sc, err := scenario.Load(fs, path)
				if err != nil {
					return err
				}

				report, err := runner.RunScenario(ctx, sc)
				if err != nil {
					failures++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%v\n",
						failStyle.Render("FAIL"), sc.Name, err)
					if !keepGoing {
						return fmt.Errorf("scenario %s failed", sc.Name)
					}
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					passStyle.Render("PASS"), sc.Name,
					dimStyle.Render(fmt.Sprintf("(%s, %s)",
						english.Plural(len(report.Artifacts), "artifact", ""),
						report.Duration.Round(time.Millisecond))))
			}

			if failures > 0 {
				return fmt.Errorf("%d scenario(s) failed", failures)
			}
			return nil
		},
	}

	runCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false,
		"continue running remaining scenarios after a failure")
	return runCmd
}
