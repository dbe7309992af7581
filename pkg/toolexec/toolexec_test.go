package toolexec

import (
	"context"
	"io"
	"runtime"
	"testing"

	"github.com/maketest/maketest/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunCapturesStdout(t *testing.T) {
	skipOnWindows(t)
	r := NewRunner(logging.NewTestLogger(io.Discard))

	res, err := r.Run(context.Background(), "echo", []string{"hello"}, "")
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, "hello")
	assert.Zero(t, res.ExitCode)
}

func TestRunNonZeroExitIsError(t *testing.T) {
	skipOnWindows(t)
	r := NewRunner(logging.NewTestLogger(io.Discard))

	res, err := r.Run(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"}, "")
	require.Error(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "oops")
}

func TestRunShellRespectsWorkingDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	r := NewRunner(logging.NewTestLogger(io.Discard))

	res, err := r.RunShell(context.Background(), "pwd", dir)
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, dir)
}

func TestRunMissingBinary(t *testing.T) {
	skipOnWindows(t)
	r := NewRunner(logging.NewTestLogger(io.Discard))

	_, err := r.Run(context.Background(), "definitely-not-a-binary-xyz", nil, "")
	assert.Error(t, err)
}
