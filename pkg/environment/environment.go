package environment

import (
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/spf13/afero"
)

// ConfigFileName is the harness settings file searched for in Pwd and Home.
const ConfigFileName = "maketest.yaml"

// Environment holds configuration loaded from the OS environment or defaults.
type Environment struct {
	Home           string `env:"HOME"`
	Pwd            string `env:"PWD"`
	Debug          string `env:"DEBUG,default=0"`
	NonInteractive string `env:"NON_INTERACTIVE,default=0"`
	// TimeoutSec carries no default on purpose: zero means "not set", so
	// the settings file keeps its say and MAKETEST_TIMEOUT only wins when
	// actually present. The baseline lives in cfg.Default.
	TimeoutSec int `env:"MAKETEST_TIMEOUT"`
	ConfigFile string
	Extras     env.EnvSet
}

// checkConfig checks if the settings file exists in the given directory.
func checkConfig(fs afero.Fs, baseDir string) (string, error) {
	configFile := filepath.Join(baseDir, ConfigFileName)
	exists, err := afero.Exists(fs, configFile)
	if err == nil && exists {
		return configFile, nil
	}
	return "", err
}

// findConfig searches for the settings file in the Pwd and Home directories,
// current directory winning.
func findConfig(fs afero.Fs, pwd, home string) string {
	if configFile, _ := checkConfig(fs, pwd); configFile != "" {
		return configFile
	}
	if configFile, _ := checkConfig(fs, home); configFile != "" {
		return configFile
	}
	return ""
}

// NewEnvironment initializes an Environment from provided overrides or the
// process environment.
func NewEnvironment(fs afero.Fs, environ *Environment) (*Environment, error) {
	if environ != nil {
		environ.ConfigFile = findConfig(fs, environ.Pwd, environ.Home)
		return environ, nil
	}

	environment := &Environment{}
	extras, err := env.UnmarshalFromEnviron(environment)
	if err != nil {
		return nil, err
	}
	environment.Extras = extras
	environment.ConfigFile = findConfig(fs, environment.Pwd, environment.Home)

	return environment, nil
}
