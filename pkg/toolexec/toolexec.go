// Package toolexec runs the non-interactive external tools the harness
// depends on: the package manager, the style checker, the test runner and
// scenario post-commands. The interactive generator itself is driven by
// pkg/driver, which needs its own stdin feeding loop.
package toolexec

import (
	"context"
	"errors"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/maketest/maketest/pkg/logging"
)

// Result captures one tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes tool commands. The interface exists so fixture and
// validate can be tested against a fake without spawning processes.
type Runner interface {
	Run(ctx context.Context, command string, args []string, workingDir string) (Result, error)
	RunShell(ctx context.Context, commandLine string, workingDir string) (Result, error)
}

// ExecRunner is the production Runner backed by go-execute.
type ExecRunner struct {
	Logger *logging.Logger
}

// NewRunner returns a Runner that spawns real processes.
func NewRunner(logger *logging.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run executes command with args in workingDir and waits for completion.
// A non-zero exit is returned as an error alongside the captured output.
func (r *ExecRunner) Run(ctx context.Context, command string, args []string, workingDir string) (Result, error) {
	r.Logger.Debug("executing tool", "command", command, "args", args, "dir", workingDir)

	task := execute.ExecTask{
		Command: command,
		Args:    args,
		Cwd:     workingDir,
	}

	res, err := task.Execute(ctx)
	result := Result{Stdout: res.Stdout, Stderr: res.Stderr, ExitCode: res.ExitCode}
	if err != nil {
		r.Logger.Error("tool execution failed", "command", command, "error", err)
		return result, err
	}

	if res.ExitCode != 0 {
		r.Logger.Warn("tool exited with non-zero code", "command", command,
			"code", res.ExitCode, "stderr", res.Stderr)
		return result, errors.New("non-zero exit code")
	}

	return result, nil
}

// RunShell executes a command line via `sh -c` in workingDir.
func (r *ExecRunner) RunShell(ctx context.Context, commandLine string, workingDir string) (Result, error) {
	return r.Run(ctx, "sh", []string{"-c", commandLine}, workingDir)
}
