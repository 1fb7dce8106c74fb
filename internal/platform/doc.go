// Package platform provides the filesystem primitives used to materialize
// libraries: inspecting a library slot, creating and removing directory
// symlinks, and removing local copies. Failures are reported as *Error values
// carrying the operation and path.
package platform
