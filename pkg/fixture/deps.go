package fixture

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maketest/maketest/pkg/scenario"
	"github.com/spf13/afero"
)

// DependencyDeclarer exposes the package names a scenario's generator needs
// that are not yet present in the target project. It is consulted only during
// first-time cache slot construction.
type DependencyDeclarer interface {
	MissingPackages(sc *scenario.Scenario, projectDir string) ([]string, error)
}

// ManifestDeclarer filters a scenario's declared requirements against the
// project's dependency manifest: a package whose quoted name already appears
// in the manifest is considered present.
type ManifestDeclarer struct {
	Fs           afero.Fs
	ManifestFile string
}

// MissingPackages implements DependencyDeclarer.
func (d *ManifestDeclarer) MissingPackages(sc *scenario.Scenario, projectDir string) ([]string, error) {
	if len(sc.Requires) == 0 {
		return nil, nil
	}

	manifestPath := filepath.Join(projectDir, d.ManifestFile)
	data, err := afero.ReadFile(d.Fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}
	manifest := string(data)

	var missing []string
	for _, pkg := range sc.Requires {
		if !strings.Contains(manifest, fmt.Sprintf("%q", pkg)) {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}
