// Package replace applies literal find/replace edits to files inside a
// project directory.
package replace

import (
	"path/filepath"
	"strings"

	"github.com/maketest/maketest/pkg/errors"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/maketest/maketest/pkg/messages"
	"github.com/maketest/maketest/pkg/scenario"
	"github.com/spf13/afero"
)

// Apply performs each edit in order against files under rootDir. An absent
// search text fails immediately with REPLACEMENT_TEXT_NOT_FOUND; edits applied
// before the failure stay applied. A failure here means the fixture template
// and the edit no longer agree, so the run must abort rather than continue on
// a half-edited project.
func Apply(fs afero.Fs, rootDir string, edits []scenario.Replacement, logger *logging.Logger) error {
	for _, edit := range edits {
		if err := applyOne(fs, rootDir, edit, logger); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(fs afero.Fs, rootDir string, edit scenario.Replacement, logger *logging.Logger) error {
	target := filepath.Join(rootDir, edit.File)

	data, err := afero.ReadFile(fs, target)
	if err != nil {
		return errors.Wrap(errors.CodeReplacementNotFound, err,
			"cannot read %s for replacement", edit.File)
	}

	contents := string(data)
	if !strings.Contains(contents, edit.Find) {
		return errors.New(errors.CodeReplacementNotFound,
			"text %q not found in %s", edit.Find, edit.File)
	}

	logger.Debug(messages.MsgApplyingReplacement, "file", edit.File, "find", edit.Find)

	updated := strings.ReplaceAll(contents, edit.Find, edit.Replace)
	if err := afero.WriteFile(fs, target, []byte(updated), 0o644); err != nil {
		return errors.Wrap(errors.CodeReplacementNotFound, err,
			"cannot write %s after replacement", edit.File)
	}
	return nil
}
