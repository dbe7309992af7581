package cfg

import (
	"os"
	"testing"

	"github.com/maketest/maketest/pkg/environment"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	settings := Default()
	require.NoError(t, settings.validate())
	assert.Equal(t, "composer", settings.PackageManager)
	assert.Equal(t, "created:", settings.CreatedMarker)
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	settings, err := Load(fs, &environment.Environment{})
	require.NoError(t, err)

	assert.Equal(t, Default().Runtime, settings.Runtime)
	assert.Equal(t, Default().TimeoutSec, settings.TimeoutSec)
}

func TestLoadOverlaysYamlFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	configFile := "/work/maketest.yaml"
	yamlBody := `
runtime: node
entrypoint: cli.js
packageManager: npm
successMarker: "All done"
timeout: 120
`
	require.NoError(t, afero.WriteFile(fs, configFile, []byte(yamlBody), 0o644))

	settings, err := Load(fs, &environment.Environment{ConfigFile: configFile})
	require.NoError(t, err)

	assert.Equal(t, "node", settings.Runtime)
	assert.Equal(t, "npm", settings.PackageManager)
	assert.Equal(t, "All done", settings.SuccessMarker)
	assert.Equal(t, 120, settings.TimeoutSec)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().StyleChecker, settings.StyleChecker)
}

func TestLoadEnvironTimeoutWins(t *testing.T) {
	fs := afero.NewMemMapFs()

	settings, err := Load(fs, &environment.Environment{TimeoutSec: 7})
	require.NoError(t, err)

	assert.Equal(t, 7, settings.TimeoutSec)
}

func TestLoadYamlTimeoutSurvivesProcessEnvironment(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/maketest.yaml",
		[]byte("timeout: 120\n"), 0o644))

	unsetEnv(t, "MAKETEST_TIMEOUT")
	t.Setenv("PWD", "/work")

	environ, err := environment.NewEnvironment(fs, nil)
	require.NoError(t, err)
	require.Equal(t, "/work/maketest.yaml", environ.ConfigFile)

	settings, err := Load(fs, environ)
	require.NoError(t, err)

	// With MAKETEST_TIMEOUT unset, the settings file keeps its say.
	assert.Equal(t, 120, settings.TimeoutSec)
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if value, ok := os.LookupEnv(key); ok {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { os.Setenv(key, value) })
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	configFile := "/work/maketest.yaml"
	require.NoError(t, afero.WriteFile(fs, configFile, []byte(`runtime: ""`), 0o644))

	_, err := Load(fs, &environment.Environment{ConfigFile: configFile})
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	fs := afero.NewMemMapFs()
	configFile := "/work/maketest.yaml"
	require.NoError(t, afero.WriteFile(fs, configFile, []byte("runtime: [unclosed"), 0o644))

	_, err := Load(fs, &environment.Environment{ConfigFile: configFile})
	assert.Error(t, err)
}

func TestGeneratorArgv(t *testing.T) {
	settings := Default()
	assert.Equal(t, []string{"php", "bin/console", "make:controller"},
		settings.GeneratorArgv("make:controller"))

	settings.Entrypoint = ""
	assert.Equal(t, []string{"php", "make:controller"}, settings.GeneratorArgv("make:controller"))
}
