// Package recursiveimport resolves every unit below a root container in a
// deterministic depth-first order.
//
// A container is a directory holding the layout's marker file, a leaf unit is
// a file carrying the layout's suffix. Within one container all direct leaf
// units are resolved first, then the container itself, then its
// subdirectories in ascending name order, recursively. Resolution is delegated
// to a Resolver, which is expected to load and cache each name once so that
// registration side effects run in that order.
package recursiveimport
