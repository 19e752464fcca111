package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExtension is the suffix that identifies a profile description file.
const DefaultExtension = ".yaml"

// CheckDir verifies that dir exists and is a directory.
func CheckDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		return fmt.Errorf("checking target directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("checking target directory %s: %w", dir, ErrNotDirectory)
	}
	return nil
}

// Discover walks dir and returns every regular file whose name ends with ext,
// sorted lexicographically. Unreadable subdirectories are skipped. A target
// that is itself a symlink to a directory is followed; symlinks below it are not.
func Discover(fsys afero.Fs, dir, ext string) ([]string, error) {
	root := walkRoot(fsys, dir)
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil // skip inaccessible entries
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if strings.HasSuffix(info.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// walkRoot returns the path to hand to afero.Walk for dir. Walk lstats its
// root, so a symlinked target gets a trailing separator, which makes the
// lookup resolve the link.
func walkRoot(fsys afero.Fs, dir string) string {
	l, ok := fsys.(afero.Lstater)
	if !ok || dir == "" {
		return dir
	}
	info, lstatCalled, err := l.LstatIfPossible(dir)
	if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
		return dir
	}
	return strings.TrimRight(dir, string(filepath.Separator)) + string(filepath.Separator)
}
