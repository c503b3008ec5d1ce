package recursiveimport

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// Resolver resolves a qualified name, loading and caching the unit behind it.
// Resolving a name that was already resolved must be a cached no-op.
type Resolver interface {
	Resolve(name string) (Handle, error)
}

// Option configures an Importer.
type Option func(*Importer)

// WithLayout sets the filesystem layout. GoLayout is used by default.
func WithLayout(l Layout) Option {
	return func(i *Importer) {
		i.layout = l
	}
}

// WithLogger sets the logger used for traversal tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// Importer walks a container tree and resolves every unit found in it.
type Importer struct {
	resolver Resolver
	layout   Layout
	logger   *slog.Logger
}

// New creates an Importer backed by r.
func New(r Resolver, opts ...Option) *Importer {
	i := &Importer{
		resolver: r,
		layout:   GoLayout,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// ImportRecursively is a shorthand for New(r, opts...).ImportRecursively(root).
func ImportRecursively(r Resolver, root string, opts ...Option) error {
	return New(r, opts...).ImportRecursively(root)
}

// ImportRecursively resolves root and every unit below it.
//
// The root must resolve to a container, otherwise ErrInvalidArgument is
// returned before any directory is read. Errors returned by the resolver are
// passed through unchanged and stop the traversal.
//
// The name of the root's parent is derived by dropping the last component of
// root, which assumes that component equals the root directory's base name.
// Resolving a container under an alias that differs from its directory name
// produces names the resolver may not know.
func (i *Importer) ImportRecursively(root string) error {
	if err := i.layout.Validate(); err != nil {
		return err
	}
	h, err := i.resolver.Resolve(root)
	if err != nil {
		return err
	}
	dir, err := PackageRoot(h, i.layout)
	if err != nil {
		return err
	}
	parts := i.layout.Split(root)
	return i.visit(parts[:len(parts)-1], dir)
}

func (i *Importer) visit(prefix []string, dir string) error {
	depth := len(prefix)
	if !isFile(filepath.Join(dir, i.layout.Marker)) {
		i.logger.Debug("Directory is not a container; skipping", "dir", dir, "depth", depth)
		return nil
	}
	i.logger.Debug("Directory is a container; scanning", "dir", dir, "depth", depth)

	pkgPrefix := append(slices.Clip(prefix), filepath.Base(dir))
	pkg := i.layout.Join(pkgPrefix...)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read container directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	var subdirs []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		switch {
		case isDir(path):
			i.logger.Debug("Enqueuing directory until the container is resolved", "dir", path, "depth", depth)
			subdirs = append(subdirs, path)
		case i.layout.IsLeaf(name):
			unit := i.layout.Join(pkg, i.layout.UnitName(name))
			i.logger.Debug("Resolving unit", "name", unit, "depth", depth)
			if _, err := i.resolver.Resolve(unit); err != nil {
				return err
			}
		}
	}

	i.logger.Debug("Resolving container", "name", pkg, "depth", depth)
	if _, err := i.resolver.Resolve(pkg); err != nil {
		return err
	}

	for _, sub := range subdirs {
		if err := i.visit(pkgPrefix, sub); err != nil {
			return err
		}
	}
	return nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
