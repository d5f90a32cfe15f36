// Package workspace locates the project workspace root and reads project
// metadata out of pyproject.toml.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/pymtool/pym/internal/errors"
)

// Manifest file names that mark a directory as a workspace root, checked
// in order.
var rootMarkers = []string{"pyproject.toml", "setup.py"}

// Find walks up from start looking for the nearest ancestor that contains
// a workspace marker. It returns "" with a nil error when no root is
// found; callers fall back to the current working directory.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrIO,
			"Cannot resolve directory "+start,
			"Check the path exists and is accessible")
	}

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve returns the workspace root for the current invocation: the
// discovered root, or cwd when discovery reports none.
func Resolve() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrIO,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	root, err := Find(cwd)
	if err != nil {
		return "", err
	}
	if root == "" {
		return cwd, nil
	}
	return root, nil
}
