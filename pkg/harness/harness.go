// Package harness orchestrates one scenario end-to-end: materialize the
// working project, drive the generator, extract the created artifacts and run
// the validation chain. Runs are sequential; a Runner owns one working
// project directory.
package harness

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/driver"
	"github.com/maketest/maketest/pkg/extract"
	"github.com/maketest/maketest/pkg/fixture"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/messages"
	"github.com/maketest/maketest/pkg/scenario"
	"github.com/maketest/maketest/pkg/toolexec"
	"github.com/maketest/maketest/pkg/validate"
	"github.com/spf13/afero"
)

// DriveFunc launches the generator; injectable so orchestration tests can
// substitute a canned run.
type DriveFunc func(ctx context.Context, argv []string, workingDir string,
	plan *driver.InputPlan, timeout time.Duration, logger *logging.Logger) (*driver.RunResult, error)

// Report summarizes one scenario run.
type Report struct {
	RunID     string
	Scenario  string
	WorkDir   string
	Artifacts []string
	Duration  time.Duration
	Result    *driver.RunResult
}

// Runner executes scenarios against one harness configuration.
type Runner struct {
	Fs           afero.Fs
	Settings     *cfg.Settings
	Materializer *fixture.Materializer
	Validator    *validate.Validator
	Drive        DriveFunc
	Logger       *logging.Logger
}

// New wires a Runner over real tool processes.
func New(fs afero.Fs, settings *cfg.Settings, logger *logging.Logger) *Runner {
	tools := toolexec.NewRunner(logger)
	return &Runner{
		Fs:           fs,
		Settings:     settings,
		Materializer: fixture.New(fs, settings, tools, logger),
		Validator:    validate.New(settings, tools, logger),
		Drive:        driver.Run,
		Logger:       logger,
	}
}

// RunScenario executes sc and returns its report. On failure the report still
// carries whatever was captured up to the failing step.
func (r *Runner) RunScenario(ctx context.Context, sc *scenario.Scenario) (*Report, error) {
	report := &Report{
		RunID:    uuid.NewString(),
		Scenario: sc.Name,
	}
	logger := r.Logger
	logger.Info(messages.MsgScenarioLoaded, "scenario", sc.Name, "run", report.RunID)

	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	workDir, err := r.Materializer.Prepare(ctx, sc)
	if err != nil {
		return report, err
	}
	report.WorkDir = workDir

	argv := r.Settings.GeneratorArgv(sc.Generator)
	plan := driver.NewInputPlan(sc.Inputs)
	timeout := time.Duration(r.Settings.TimeoutSec) * time.Second

	result, err := r.Drive(ctx, argv, workDir, plan, timeout, logger)
	report.Result = result
	if err != nil {
		// No artifact extraction on a failed run.
		return report, err
	}

	report.Artifacts = extract.CreatedFiles(result.Stdout, r.Settings.CreatedMarker)

	if err := r.Validator.Validate(ctx, sc, workDir, result, report.Artifacts); err != nil {
		return report, err
	}

	logger.Info(messages.MsgRunSucceeded, "scenario", sc.Name,
		"artifacts", len(report.Artifacts), "duration", time.Since(start))
	return report, nil
}
