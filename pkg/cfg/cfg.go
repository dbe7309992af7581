// Package cfg loads the harness settings: which toolchain commands drive the
// generator, the package manager, the style checker and the test runner, and
// where the template, fixture cache and working project directories live.
package cfg

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/maketest/maketest/pkg/environment"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Settings describes one harness installation. Zero values are filled in from
// Default; a maketest.yaml file overrides individual fields.
type Settings struct {
	// Runtime and Entrypoint form the generator invocation prefix:
	// `<runtime> <entrypoint> <commandName>`.
	Runtime    string `yaml:"runtime"`
	Entrypoint string `yaml:"entrypoint"`

	// PackageManager is the tool used to create the baseline project,
	// install packages and regenerate autoload metadata. InstallArgs and
	// AutoloadArgs are its subcommands for the latter two operations.
	PackageManager string   `yaml:"packageManager"`
	InstallArgs    []string `yaml:"installArgs"`
	AutoloadArgs   []string `yaml:"autoloadArgs"`

	// StyleChecker is invoked per generated file in dry-run/diff mode.
	StyleChecker []string `yaml:"styleChecker"`

	// TestRunner is invoked with no arguments inside the working project.
	TestRunner []string `yaml:"testRunner"`

	// ManifestFile is the project's dependency manifest, consulted to skip
	// packages that are already present.
	ManifestFile string `yaml:"manifestFile"`

	TemplateDir string `yaml:"templateDir"`
	CacheRoot   string `yaml:"cacheRoot"`
	WorkDir     string `yaml:"workDir"`

	TimeoutSec int `yaml:"timeout"`

	// SuccessMarker and CreatedMarker are the generator's output text
	// contract. Matching is substring containment, not exact match: the
	// generator's output format is not controlled by this harness.
	SuccessMarker string `yaml:"successMarker"`
	CreatedMarker string `yaml:"createdMarker"`
}

// Default returns the settings used when no maketest.yaml overrides them.
func Default() *Settings {
	return &Settings{
		Runtime:        "php",
		Entrypoint:     "bin/console",
		PackageManager: "composer",
		InstallArgs:    []string{"require"},
		AutoloadArgs:   []string{"dump-autoload"},
		StyleChecker:   []string{"php-cs-fixer", "fix", "--dry-run", "--diff"},
		TestRunner:     []string{"vendor/bin/phpunit"},
		ManifestFile:   "composer.json",
		TemplateDir:    filepath.Join(xdg.DataHome, "maketest", "template"),
		CacheRoot:      filepath.Join(xdg.CacheHome, "maketest", "fixtures"),
		WorkDir:        filepath.Join(xdg.CacheHome, "maketest", "work"),
		TimeoutSec:     30,
		SuccessMarker:  "Success",
		CreatedMarker:  "created:",
	}
}

// Load builds the effective settings: defaults, overlaid with the environ's
// settings file if one was found, overlaid with an explicitly set
// MAKETEST_TIMEOUT.
func Load(fs afero.Fs, environ *environment.Environment) (*Settings, error) {
	settings := Default()

	if environ != nil && environ.ConfigFile != "" {
		data, err := afero.ReadFile(fs, environ.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", environ.ConfigFile, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parsing settings file %s: %w", environ.ConfigFile, err)
		}
	}

	// Only an explicitly set MAKETEST_TIMEOUT outranks the settings file;
	// an absent variable leaves environ.TimeoutSec at zero.
	if environ != nil && environ.TimeoutSec > 0 {
		settings.TimeoutSec = environ.TimeoutSec
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) validate() error {
	if s.Runtime == "" {
		return fmt.Errorf("settings: runtime must not be empty")
	}
	if s.PackageManager == "" {
		return fmt.Errorf("settings: packageManager must not be empty")
	}
	if s.TemplateDir == "" || s.CacheRoot == "" || s.WorkDir == "" {
		return fmt.Errorf("settings: templateDir, cacheRoot and workDir must all be set")
	}
	if s.TimeoutSec <= 0 {
		return fmt.Errorf("settings: timeout must be positive, got %d", s.TimeoutSec)
	}
	return nil
}

// GeneratorArgv returns the command line used to launch the generator for the
// given command name: `<runtime> <entrypoint> <commandName>`.
func (s *Settings) GeneratorArgv(commandName string) []string {
	argv := []string{s.Runtime}
	if s.Entrypoint != "" {
		argv = append(argv, s.Entrypoint)
	}
	return append(argv, commandName)
}
