package recursiveimport

import (
	"fmt"
	"strings"
)

// Layout describes how a namespace hierarchy is laid out on disk.
type Layout struct {
	// Marker is the file name that turns a directory into a container.
	Marker string
	// Suffix identifies leaf unit files.
	Suffix string
	// Separator joins name components into a qualified name.
	Separator string
}

var (
	// GoLayout treats every directory holding a doc.go as a container and
	// every other .go file as a leaf unit. Names look like import paths.
	GoLayout = Layout{Marker: "doc.go", Suffix: ".go", Separator: "/"}
	// PythonLayout is the classic __init__.py package layout with dotted names.
	PythonLayout = Layout{Marker: "__init__.py", Suffix: ".py", Separator: "."}
)

// Validate reports whether the layout can drive a traversal.
func (l Layout) Validate() error {
	switch {
	case l.Marker == "":
		return fmt.Errorf("%w: layout marker is empty", ErrInvalidArgument)
	case l.Suffix == "":
		return fmt.Errorf("%w: layout suffix is empty", ErrInvalidArgument)
	case l.Separator == "":
		return fmt.Errorf("%w: layout separator is empty", ErrInvalidArgument)
	}
	return nil
}

// Split breaks a qualified name into its components.
func (l Layout) Split(name string) []string {
	return strings.Split(name, l.Separator)
}

// Join builds a qualified name from its components.
func (l Layout) Join(parts ...string) string {
	return strings.Join(parts, l.Separator)
}

// IsLeaf reports whether a file name denotes a leaf unit.
func (l Layout) IsLeaf(fileName string) bool {
	return fileName != l.Marker && strings.HasSuffix(fileName, l.Suffix)
}

// UnitName strips the leaf suffix from a file name.
func (l Layout) UnitName(fileName string) string {
	return strings.TrimSuffix(fileName, l.Suffix)
}
