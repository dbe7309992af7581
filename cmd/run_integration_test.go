package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// integrationSettings points every tool at no-op binaries and uses the shell
// itself as the "generator runtime", so a full run exercises the real
// materializer, driver and validators without any PHP toolchain present.
func integrationSettings(t *testing.T) *cfg.Settings {
	t.Helper()
	base := t.TempDir()

	settings := cfg.Default()
	settings.Runtime = "sh"
	settings.Entrypoint = "-c"
	settings.PackageManager = "true"
	settings.AutoloadArgs = nil
	settings.InstallArgs = nil
	settings.StyleChecker = []string{"true"}
	settings.TestRunner = []string{"true"}
	settings.TemplateDir = filepath.Join(base, "template")
	settings.CacheRoot = filepath.Join(base, "cache")
	settings.WorkDir = filepath.Join(base, "work")
	settings.TimeoutSec = 10
	return settings
}

func TestRunCommandEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	fs := afero.NewOsFs()
	settings := integrationSettings(t)
	require.NoError(t, fs.MkdirAll(settings.TemplateDir, 0o755))
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(settings.TemplateDir, "composer.json"), []byte(`{"require": {}}`), 0o644))

	// The "generator" reads one scripted answer, announces an artifact and
	// reports success.
	scenarioDir := t.TempDir()
	scenarioPath := filepath.Join(scenarioDir, "make-controller.yaml")
	body := `
name: make-controller
generator: 'read name; mkdir -p src/Controller; touch "src/Controller/$name.php"; echo "created: src/Controller/$name.php"; echo Success'
inputs:
  - FooController
`
	require.NoError(t, afero.WriteFile(fs, scenarioPath, []byte(body), 0o644))

	cmd := NewRunCommand(fs, context.Background(), settings, logging.NewTestLogger(io.Discard))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{scenarioPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "PASS")
	assert.Contains(t, out.String(), "make-controller")
	assert.Contains(t, out.String(), "1 artifact")
}

func TestRunCommandEndToEndFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	fs := afero.NewOsFs()
	settings := integrationSettings(t)
	require.NoError(t, fs.MkdirAll(settings.TemplateDir, 0o755))
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(settings.TemplateDir, "composer.json"), []byte(`{"require": {}}`), 0o644))

	scenarioDir := t.TempDir()
	scenarioPath := filepath.Join(scenarioDir, "broken.yaml")
	body := `
name: broken
generator: 'echo "fatal: something exploded" >&2; exit 1'
`
	require.NoError(t, afero.WriteFile(fs, scenarioPath, []byte(body), 0o644))

	cmd := NewRunCommand(fs, context.Background(), settings, logging.NewTestLogger(io.Discard))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{scenarioPath})

	require.Error(t, cmd.Execute())
	assert.Contains(t, out.String(), "FAIL")
	assert.Contains(t, out.String(), "something exploded")
}
