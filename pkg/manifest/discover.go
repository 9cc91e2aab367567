package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcxross/sui/pkg/errors"
)

// skipDirs are never descended into while discovering packages.
var skipDirs = map[string]bool{
	".git":         true,
	"target":       true,
	"build":        true,
	"node_modules": true,
}

// SkipDir reports whether a directory called name is ignored by Discover.
func SkipDir(name string) bool { return skipDirs[name] }

// Discover returns the package roots under path, sorted and without
// duplicates, ordered by path component. If path is a Move.toml file its directory is the only root;
// any other file yields no roots. Directories are walked without following
// symlinks.
//
// An empty result is reported as ErrCodeManifestNotFound.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "unable to access %s", path)
	}

	var roots []string
	if !info.IsDir() {
		if filepath.Base(path) == FileName {
			roots = append(roots, filepath.Dir(path))
		}
	} else {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && SkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && d.Name() == FileName {
				roots = append(roots, filepath.Dir(p))
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", path)
		}
	}

	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeManifestNotFound, "no %s found under %s", FileName, path)
	}
	slices.SortFunc(roots, comparePaths)
	return slices.Compact(roots), nil
}

// comparePaths orders paths component by component, so "a/c" sorts before
// "a-b" even though '-' is below '/'.
func comparePaths(a, b string) int {
	return slices.Compare(
		strings.Split(filepath.ToSlash(a), "/"),
		strings.Split(filepath.ToSlash(b), "/"),
	)
}
