package recursiveimport

import (
	"fmt"
	"os"
	"path/filepath"
)

// Handle is the resolved representation of a unit. Only the path of the file
// backing the unit is ever read from it.
type Handle interface {
	File() string
}

// PackageRoot returns the absolute directory holding the marker file of the
// container behind h. It fails with ErrInvalidArgument when h is a leaf unit.
func PackageRoot(h Handle, l Layout) (string, error) {
	file := h.File()
	if base := filepath.Base(file); base != l.Marker {
		return "", fmt.Errorf("%w: %s is a leaf unit instead of a container (file base name: %s)", ErrInvalidArgument, file, base)
	}
	return absDir(file), nil
}

// EntrypointRoot returns the absolute directory holding the running program.
func EntrypointRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return absDir(os.Args[0])
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return absDir(exe)
}

func absDir(p string) string {
	dir := filepath.Dir(p)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
