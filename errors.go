package recursiveimport

import "errors"

// ErrInvalidArgument is returned when a traversal cannot start from the given
// root, most notably when the root resolves to a leaf unit instead of a container.
var ErrInvalidArgument = errors.New("invalid argument")
