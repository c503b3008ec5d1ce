// Package fsresolve resolves qualified names to units found below a base
// directory, loading each unit once.
package fsresolve

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	recursiveimport "github.com/FilipMalczak/recursive-import"
)

// ErrNotFound is returned when a name maps to neither a container nor a leaf unit.
var ErrNotFound = errors.New("unit not found")

// Unit is a resolved container or leaf unit.
type Unit struct {
	Name      string
	Path      string // marker file for containers, the unit file for leaves
	Dir       string
	Container bool
}

// File implements recursiveimport.Handle.
func (u *Unit) File() string { return u.Path }

// LoadFunc loads a unit. It is called at most once per successfully resolved name.
type LoadFunc func(u *Unit) error

// Resolver maps names to files below the base directory according to a layout.
type Resolver struct {
	base   string
	layout recursiveimport.Layout
	load   LoadFunc
	logger *slog.Logger

	mu     sync.Mutex
	loaded map[string]*Unit
	order  []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for load tracing. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver rooted at base. A nil load only locates units.
func New(base string, layout recursiveimport.Layout, load LoadFunc, opts ...Option) *Resolver {
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	r := &Resolver{
		base:   base,
		layout: layout,
		load:   load,
		loaded: make(map[string]*Unit),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Resolve locates and loads name. Parent containers are resolved first. Loaded
// units are cached; failed loads are not, so a later call retries them.
func (r *Resolver) Resolve(name string) (recursiveimport.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Resolver) resolve(name string) (*Unit, error) {
	if u, ok := r.loaded[name]; ok {
		return u, nil
	}
	parts := r.layout.Split(name)
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return nil, fmt.Errorf("invalid unit name %q", name)
		}
	}
	if len(parts) > 1 {
		if _, err := r.resolve(r.layout.Join(parts[:len(parts)-1]...)); err != nil {
			return nil, err
		}
	}

	u, err := r.locate(name, parts)
	if err != nil {
		return nil, err
	}
	if r.load != nil {
		r.logger.Debug("Loading unit", "name", name, "file", u.Path)
		if err := r.load(u); err != nil {
			return nil, err
		}
	}
	r.loaded[name] = u
	r.order = append(r.order, name)
	return u, nil
}

func (r *Resolver) locate(name string, parts []string) (*Unit, error) {
	path := filepath.Join(append([]string{r.base}, parts...)...)
	if marker := filepath.Join(path, r.layout.Marker); isFile(marker) {
		return &Unit{Name: name, Path: marker, Dir: path, Container: true}, nil
	}
	if file := path + r.layout.Suffix; isFile(file) {
		return &Unit{Name: name, Path: file, Dir: filepath.Dir(file)}, nil
	}
	return nil, fmt.Errorf("%w: %s (searched in %s)", ErrNotFound, name, r.base)
}

// Loaded returns the names of successfully loaded units in load order.
func (r *Resolver) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
