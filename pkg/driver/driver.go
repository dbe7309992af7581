// Package driver launches the generator-under-test and feeds it scripted
// answers as if typed by a human. Feeding is back-pressure-driven: answer k+1
// is written only after answer k has been drained towards the child, and the
// input stream is closed once the plan is exhausted so the child observes
// end-of-input instead of blocking forever.
package driver

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/maketest/maketest/pkg/errors"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/messages"
)

// InteractiveEnv is set in the child's environment for every generator
// invocation, signaling interactive mode.
const InteractiveEnv = "SHELL_INTERACTIVE"

// waitDelay bounds how long Wait blocks on I/O pipe teardown after the child
// exits with the feeder still mid-write.
const waitDelay = time.Second

// RunResult captures one generator run. Immutable once the process has
// terminated; the driver performs no interpretation of the output.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Run launches argv in workingDir, feeds it the plan's answers and waits for
// completion within timeout. Exceeding the timeout forcibly terminates the
// child and fails with PROCESS_TIMEOUT; a normal non-zero exit fails with
// PROCESS_NON_ZERO_EXIT. Both carry the captured output.
func Run(ctx context.Context, argv []string, workingDir string, plan *InputPlan,
	timeout time.Duration, logger *logging.Logger) (*RunResult, error) {
	if len(argv) == 0 {
		return nil, errors.New(errors.CodeProcessNonZeroExit, "empty generator command")
	}
	if plan == nil {
		plan = NewInputPlan(nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = workingDir
	cmd.Env = buildEnv(workingDir, logger)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// A synchronous pipe is the drain signal: each write to pw blocks until
	// the read side has consumed it on its way to the child, so the feeder
	// never gets ahead of what the child is prepared to take.
	pr, pw := io.Pipe()
	cmd.Stdin = pr

	logger.Debug(messages.MsgGeneratorStarting, "argv", argv, "dir", workingDir, "answers", plan.Len())

	start := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, errors.Wrap(errors.CodeProcessNonZeroExit, err,
			"cannot start generator %v", argv)
	}

	feedDone := make(chan struct{})
	go feed(plan, pw, logger, feedDone)

	waitErr := cmd.Wait()

	// Unblock the feeder if the child exited with answers still pending.
	pr.CloseWithError(io.ErrClosedPipe)
	<-feedDone

	result := &RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if waitErr != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			result.ExitCode = -1
			return result, errors.New(errors.CodeProcessTimeout,
				"generator exceeded %s timeout", timeout).
				WithOutput(result.Stdout, result.Stderr)
		}

		var exitErr *exec.ExitError
		if stderrors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, errors.Wrap(errors.CodeProcessNonZeroExit, waitErr,
				"generator exited with code %d", result.ExitCode).
				WithOutput(result.Stdout, result.Stderr)
		}

		result.ExitCode = -1
		return result, errors.Wrap(errors.CodeProcessNonZeroExit, waitErr,
			"generator failed").WithOutput(result.Stdout, result.Stderr)
	}

	logger.Debug(messages.MsgGeneratorExited, "code", 0, "duration", result.Duration)
	return result, nil
}

// feed is the writer task: it owns the plan's cursor, delivers one answer at
// a time and closes the write end once the plan is exhausted.
func feed(plan *InputPlan, pw *io.PipeWriter, logger *logging.Logger, done chan struct{}) {
	defer close(done)

	for {
		answer, ok := plan.Next()
		if !ok {
			logger.Debug(messages.MsgInputClosed)
			pw.Close()
			return
		}

		if _, err := pw.Write([]byte(answer + "\n")); err != nil {
			// Child went away before consuming the rest of the plan.
			logger.Debug("feeder stopped early", "remaining", plan.Remaining(), "error", err)
			return
		}
		logger.Debug(messages.MsgAnswerWritten, "answer", answer, "remaining", plan.Remaining())
	}
}

// buildEnv inherits the host environment, marks interactive mode and loads a
// .env file from the working directory when present.
func buildEnv(workingDir string, logger *logging.Logger) []string {
	env := append(os.Environ(), fmt.Sprintf("%s=1", InteractiveEnv))

	if workingDir == "" {
		return env
	}
	envFile := filepath.Join(workingDir, ".env")
	vars, err := godotenv.Read(envFile)
	if err != nil {
		return env
	}
	for k, v := range vars {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	logger.Debug("loaded .env file", "file", envFile, "vars", len(vars))
	return env
}
