package launcher

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindProgramByName resolves name to an executable path. A name containing a
// path separator is returned unchanged. Otherwise paths is searched in
// order, or $PATH when paths is empty.
func FindProgramByName(name string, paths []string) (string, error) {
	if name == "" {
		return "", errors.New("program name is empty")
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return name, nil
	}
	if len(paths) == 0 {
		return exec.LookPath(name)
	}

	for _, dir := range paths {
		if dir == "" {
			continue
		}
		// LookPath checks a path with a separator directly, including PATHEXT on windows.
		if found, err := exec.LookPath(filepath.Join(dir, name)); err == nil {
			return found, nil
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}
