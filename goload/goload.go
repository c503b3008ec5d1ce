// Package goload loads Go source units discovered by a recursive traversal:
// containers are loaded and type-checked as packages, leaf units are parsed.
package goload

import (
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/FilipMalczak/recursive-import/fsresolve"
)

const defaultMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports

// LoadError lists the problems found while loading a unit.
type LoadError struct {
	Name   string
	Errors []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unit %q loaded with %d errors: %s", e.Name, len(e.Errors), strings.Join(e.Errors, "; "))
}

// Option configures a Loader.
type Option func(*Loader)

// WithBuildTags sets the build tags passed to the go command.
func WithBuildTags(tags ...string) Option {
	return func(l *Loader) {
		l.tags = tags
	}
}

// WithTests includes test files when loading packages.
func WithTests(tests bool) Option {
	return func(l *Loader) {
		l.tests = tests
	}
}

// WithLogger sets the logger used for load tracing. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// Loader loads Go packages and files.
type Loader struct {
	tags  []string
	tests bool
	fset  *token.FileSet
	pkgs  []*packages.Package

	logger *slog.Logger
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{fset: token.NewFileSet()}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load implements fsresolve.LoadFunc.
func (l *Loader) Load(u *fsresolve.Unit) error {
	if u.Container {
		return l.loadPackage(u)
	}
	return l.parseFile(u)
}

func (l *Loader) loadPackage(u *fsresolve.Unit) error {
	cfg := &packages.Config{
		Mode:  defaultMode,
		Dir:   u.Dir,
		Tests: l.tests,
		Fset:  l.fset,
	}
	if len(l.tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.tags, ",")}
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("failed to load package %q: %w", u.Name, err)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no package found for %q in %s", u.Name, u.Dir)
	}

	var problems []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			problems = append(problems, e.Error())
		}
	})
	if len(problems) > 0 {
		l.logger.Warn("Errors while loading package", "name", u.Name, "errorCount", len(problems))
		return &LoadError{Name: u.Name, Errors: problems}
	}

	l.pkgs = append(l.pkgs, pkgs...)
	l.logger.Debug("Loaded package", "name", u.Name, "path", pkgs[0].PkgPath, "files", len(pkgs[0].Syntax))
	return nil
}

func (l *Loader) parseFile(u *fsresolve.Unit) error {
	if _, err := parser.ParseFile(l.fset, u.Path, nil, parser.ParseComments); err != nil {
		return &LoadError{Name: u.Name, Errors: []string{err.Error()}}
	}
	l.logger.Debug("Parsed unit", "name", u.Name, "file", u.Path)
	return nil
}

// Packages returns the packages loaded so far, in load order.
func (l *Loader) Packages() []*packages.Package {
	return l.pkgs
}
