// Package fixture materializes ready-to-run project directories for harness
// scenarios. Expensive dependency resolution happens once per fixture set in
// a keyed cache slot; each run then works on a fresh disposable copy.
package fixture

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/errors"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/messages"
	"github.com/maketest/maketest/pkg/replace"
	"github.com/maketest/maketest/pkg/scenario"
	"github.com/maketest/maketest/pkg/toolexec"
	"github.com/spf13/afero"
)

// Materializer prepares working projects. Paths are explicit fields rather
// than package state so parallel suites can point separate instances at
// separate directories; a single Materializer still assumes sequential runs
// because every run owns the same WorkDir.
type Materializer struct {
	Fs       afero.Fs
	Settings *cfg.Settings
	Runner   toolexec.Runner
	Deps     DependencyDeclarer
	Logger   *logging.Logger
}

// New returns a Materializer using the manifest-backed dependency declarer.
func New(fs afero.Fs, settings *cfg.Settings, runner toolexec.Runner, logger *logging.Logger) *Materializer {
	return &Materializer{
		Fs:       fs,
		Settings: settings,
		Runner:   runner,
		Deps:     &ManifestDeclarer{Fs: fs, ManifestFile: settings.ManifestFile},
		Logger:   logger,
	}
}

// Prepare materializes the working project for sc and returns its path.
func (m *Materializer) Prepare(ctx context.Context, sc *scenario.Scenario) (string, error) {
	key := sc.CacheKey()

	slot, err := m.ensureCacheSlot(ctx, sc, key)
	if err != nil {
		return "", err
	}

	workDir := m.Settings.WorkDir
	m.Logger.Debug(messages.MsgWorkingProjectNew, "dir", workDir)
	if err := m.Fs.RemoveAll(workDir); err != nil {
		return "", fmt.Errorf("cannot remove previous working project %s: %w", workDir, err)
	}
	if err := CopyDir(m.Fs, slot, workDir); err != nil {
		return "", fmt.Errorf("cannot copy cache slot %s into working project: %w", key, err)
	}

	// Autoload paths recorded by the package manager are tied to the
	// absolute cache slot location and must be refreshed after the copy.
	m.Logger.Debug(messages.MsgAutoloadRegen, "dir", workDir)
	if res, err := m.Runner.Run(ctx, m.Settings.PackageManager, m.Settings.AutoloadArgs, workDir); err != nil {
		return "", errors.Wrap(errors.CodeAutoloadRegen, err,
			"regenerating autoload metadata in %s", workDir).WithOutput(res.Stdout, res.Stderr)
	}

	if sc.Fixtures != "" {
		if err := m.overlayFixtures(sc, workDir); err != nil {
			return "", err
		}
	}

	if len(sc.Replacements) > 0 {
		if err := replace.Apply(m.Fs, workDir, sc.Replacements, m.Logger); err != nil {
			return "", err
		}
	}

	return workDir, nil
}

// ensureCacheSlot returns the cache slot directory for key, building it from
// the template project on first use. The slot is trusted once built; a build
// failure removes the half-built slot so the next run retries from scratch.
func (m *Materializer) ensureCacheSlot(ctx context.Context, sc *scenario.Scenario, key string) (string, error) {
	slot := filepath.Join(m.Settings.CacheRoot, key)

	exists, err := afero.DirExists(m.Fs, slot)
	if err != nil {
		return "", fmt.Errorf("cannot stat cache slot %s: %w", slot, err)
	}
	if exists {
		m.Logger.Debug(messages.MsgCacheSlotReused, "key", key)
		if len(sc.Requires) > 0 {
			// The key identifies the fixture set, not the dependency
			// set: a hit means whatever packages the first scenario
			// with this key installed are what this run gets.
			m.Logger.Warn("cache hit skips declared requirements", "key", key,
				"requires", sc.Requires)
		}
		return slot, nil
	}

	m.Logger.Info(messages.MsgCacheSlotBuilding, "key", key, "template", m.Settings.TemplateDir)

	templateExists, err := afero.DirExists(m.Fs, m.Settings.TemplateDir)
	if err != nil {
		return "", fmt.Errorf("cannot stat template project %s: %w", m.Settings.TemplateDir, err)
	}
	if !templateExists {
		return "", errors.New(errors.CodeMissingFixtureDir,
			"template project %s does not exist", m.Settings.TemplateDir)
	}

	if err := m.Fs.MkdirAll(slot, 0o755); err != nil {
		return "", fmt.Errorf("cannot create cache slot %s: %w", slot, err)
	}
	if err := CopyDir(m.Fs, m.Settings.TemplateDir, slot); err != nil {
		m.discardSlot(slot)
		return "", fmt.Errorf("cannot clone template into cache slot %s: %w", key, err)
	}

	if err := m.installMissing(ctx, sc, slot); err != nil {
		m.discardSlot(slot)
		return "", err
	}

	m.Logger.Info(messages.MsgCacheSlotReady, "key", key)
	return slot, nil
}

func (m *Materializer) installMissing(ctx context.Context, sc *scenario.Scenario, slot string) error {
	missing, err := m.Deps.MissingPackages(sc, slot)
	if err != nil {
		return errors.Wrap(errors.CodePackageInstall, err,
			"determining missing packages for %s", sc.Name)
	}
	if len(missing) == 0 {
		m.Logger.Debug(messages.MsgNoMissingPackages)
		return nil
	}

	m.Logger.Info(messages.MsgInstallingPackages, "packages", missing)
	args := append(append([]string{}, m.Settings.InstallArgs...), missing...)
	if res, err := m.Runner.Run(ctx, m.Settings.PackageManager, args, slot); err != nil {
		return errors.Wrap(errors.CodePackageInstall, err,
			"installing packages %v", missing).WithOutput(res.Stdout, res.Stderr)
	}
	return nil
}

func (m *Materializer) overlayFixtures(sc *scenario.Scenario, workDir string) error {
	exists, err := afero.DirExists(m.Fs, sc.Fixtures)
	if err != nil {
		return fmt.Errorf("cannot stat fixture directory %s: %w", sc.Fixtures, err)
	}
	if !exists {
		return errors.New(errors.CodeMissingFixtureDir,
			"fixture directory %s does not exist", sc.Fixtures)
	}

	m.Logger.Debug(messages.MsgOverlayingFixtures, "from", sc.Fixtures)
	if err := CopyDir(m.Fs, sc.Fixtures, workDir); err != nil {
		return fmt.Errorf("copying fixtures from %s: %w", sc.Fixtures, err)
	}
	return nil
}

func (m *Materializer) discardSlot(slot string) {
	if err := m.Fs.RemoveAll(slot); err != nil {
		m.Logger.Error("cannot discard half-built cache slot", "slot", slot, "error", err)
	}
}
