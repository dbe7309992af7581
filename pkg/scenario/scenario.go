// Package scenario defines the declarative description of one harness run.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultCacheKey is shared by every scenario that declares no fixtures.
const DefaultCacheKey = "default"

// Replacement is one literal find/replace edit against a file inside the
// working project.
type Replacement struct {
	File    string `yaml:"file"`
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
}

// Scenario describes one generator invocation and its expected environment.
// It is immutable after loading.
type Scenario struct {
	Name string `yaml:"name"`

	// Generator is the command name handed to the runtime entrypoint,
	// e.g. "make:controller".
	Generator string `yaml:"generator"`

	// Inputs are the scripted answers fed to the generator's prompts, in
	// order, one per prompt.
	Inputs []string `yaml:"inputs"`

	// Fixtures is an optional directory whose files are overlaid onto the
	// working project before the run.
	Fixtures string `yaml:"fixtures"`

	// Requires lists package names the generator needs in the target
	// project; only those absent from the project manifest are installed.
	Requires []string `yaml:"requires"`

	Replacements []Replacement `yaml:"replacements"`

	// PostCommands run in the working project after generation, via the
	// shell, each required to exit zero.
	PostCommands []string `yaml:"postCommands"`
}

// Load reads a scenario from a YAML file. A relative Fixtures path is
// resolved against the scenario file's directory.
func Load(fs afero.Fs, path string) (*Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if sc.Fixtures != "" && !filepath.IsAbs(sc.Fixtures) {
		sc.Fixtures = filepath.Join(filepath.Dir(path), sc.Fixtures)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks the scenario for the fields a run cannot proceed without.
func (s *Scenario) Validate() error {
	if s.Generator == "" {
		return fmt.Errorf("generator must not be empty")
	}
	for i, r := range s.Replacements {
		if r.File == "" || r.Find == "" {
			return fmt.Errorf("replacement %d: file and find must not be empty", i)
		}
	}
	return nil
}

// CacheKey derives the stable identifier of this scenario's fixture set.
// Scenarios sharing a fixture directory share a key; scenarios without
// fixtures all map to DefaultCacheKey. The key identifies the fixture set
// only, not the declared package requirements: two scenarios sharing a key
// but requiring different packages share whichever slot was built first.
func (s *Scenario) CacheKey() string {
	if s.Fixtures == "" {
		return DefaultCacheKey
	}
	return sanitizeKey(filepath.Base(s.Fixtures))
}

func sanitizeKey(name string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	key = strings.Trim(key, "-")
	if key == "" {
		return DefaultCacheKey
	}
	return key
}
