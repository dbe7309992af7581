package fixture

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CopyDir mirrors the contents of src into dst, preserving relative paths and
// file modes and overwriting existing files. The src root entry itself is not
// recreated, only its contents.
func CopyDir(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		destPath := filepath.Join(dst, relPath)
		if info.IsDir() {
			return fs.MkdirAll(destPath, info.Mode())
		}
		return copyFile(fs, path, destPath, info.Mode())
	})
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	srcFile, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	destFile, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, srcFile)
	return err
}
