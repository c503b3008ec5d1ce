// Package registry is an in-process Resolver for units that register
// themselves with an init function instead of being loaded from disk.
package registry

import (
	"errors"
	"fmt"
	"sync"

	recursiveimport "github.com/FilipMalczak/recursive-import"
)

var (
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("unit already registered")
	// ErrNotRegistered is returned when resolving an unknown name.
	ErrNotRegistered = errors.New("unit not registered")
)

// Default is the process-wide registry.
var Default = New()

type entry struct {
	file     string
	init     func() error
	resolved bool
	running  bool
}

func (e *entry) File() string { return e.file }

// Registry holds named units and runs each unit's init once.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a unit backed by file. init may be nil.
func (r *Registry) Register(name, file string, init func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.entries[name] = &entry{file: file, init: init}
	return nil
}

// Resolve runs the init of name unless it already succeeded. A failed init is
// retried on the next call. An init may resolve other units; resolving a unit
// whose init is still running returns it as is.
func (r *Registry) Resolve(name string) (recursiveimport.Handle, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if e.resolved || e.running {
		r.mu.Unlock()
		return e, nil
	}
	e.running = true
	r.mu.Unlock()

	var err error
	if e.init != nil {
		err = e.init()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e.running = false
	if err != nil {
		return nil, err
	}
	e.resolved = true
	r.order = append(r.order, name)
	return e, nil
}

// Resolved returns the names resolved so far, in order.
func (r *Registry) Resolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Register adds a unit to the Default registry.
func Register(name, file string, init func() error) error {
	return Default.Register(name, file, init)
}

// Resolve resolves name in the Default registry.
func Resolve(name string) (recursiveimport.Handle, error) {
	return Default.Resolve(name)
}
