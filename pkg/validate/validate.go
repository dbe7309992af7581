// Package validate runs the post-generation checks: success marker, style
// check per artifact, scenario post-commands and the fixture test suite.
// The steps form a dependency chain, not independent checks; the first
// failure stops the rest.
package validate

import (
	"context"
	"strings"

	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/driver"
	"github.com/maketest/maketest/pkg/errors"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/messages"
	"github.com/maketest/maketest/pkg/scenario"
	"github.com/maketest/maketest/pkg/toolexec"
)

// Validator runs the post-generation chain inside one working project.
type Validator struct {
	Settings *cfg.Settings
	Runner   toolexec.Runner
	Logger   *logging.Logger
}

// New returns a Validator over the given settings and tool runner.
func New(settings *cfg.Settings, runner toolexec.Runner, logger *logging.Logger) *Validator {
	return &Validator{Settings: settings, Runner: runner, Logger: logger}
}

// Validate checks the run result for sc against the chain. workDir is the
// working project the generator ran in; artifacts are the extracted created
// paths.
func (v *Validator) Validate(ctx context.Context, sc *scenario.Scenario, workDir string,
	result *driver.RunResult, artifacts []string) error {
	// Success is signaled by substring containment: the generator's output
	// format is not controlled by this harness.
	if !strings.Contains(result.Stdout, v.Settings.SuccessMarker) {
		return errors.New(errors.CodeMissingSuccessMarker,
			"output lacks success marker %q", v.Settings.SuccessMarker).
			WithOutput(result.Stdout, result.Stderr)
	}

	if err := v.styleCheck(ctx, workDir, artifacts); err != nil {
		return err
	}

	for _, command := range sc.PostCommands {
		v.Logger.Debug(messages.MsgRunningPostCmd, "command", command)
		if res, err := v.Runner.RunShell(ctx, command, workDir); err != nil {
			return errors.Wrap(errors.CodePostCommand, err,
				"post-command %q failed", command).WithOutput(res.Stdout, res.Stderr)
		}
	}

	// A scenario that bundles fixture files bundles its own tests.
	if sc.Fixtures != "" && len(v.Settings.TestRunner) > 0 {
		v.Logger.Debug(messages.MsgRunningTests, "dir", workDir)
		runner := v.Settings.TestRunner
		if res, err := v.Runner.Run(ctx, runner[0], runner[1:], workDir); err != nil {
			return errors.Wrap(errors.CodeGeneratedTests, err,
				"generated test suite failed").WithOutput(res.Stdout, res.Stderr)
		}
	}

	v.Logger.Debug(messages.MsgValidationClean)
	return nil
}

func (v *Validator) styleCheck(ctx context.Context, workDir string, artifacts []string) error {
	checker := v.Settings.StyleChecker
	if len(checker) == 0 {
		return nil
	}

	for _, artifact := range artifacts {
		v.Logger.Debug(messages.MsgStyleChecking, "file", artifact)
		args := append(append([]string{}, checker[1:]...), artifact)
		if res, err := v.Runner.Run(ctx, checker[0], args, workDir); err != nil {
			return errors.Wrap(errors.CodeStyleCheck, err,
				"style check failed for %s", artifact).WithOutput(res.Stdout, res.Stderr)
		}
	}
	return nil
}
