package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// EntryKind describes what currently occupies a path.
type EntryKind int

const (
	// Absent means nothing exists at the path.
	Absent EntryKind = iota
	// Directory means ordinary local content (a directory or a plain file).
	Directory
	// SymbolicLink means the path is a link, whether or not its target exists.
	SymbolicLink
)

func (k EntryKind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Directory:
		return "directory"
	case SymbolicLink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Error is a filesystem failure annotated with the operation and path.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Inspect reports what occupies path without following a final symlink.
func Inspect(path string) (EntryKind, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Absent, nil
		}
		return Absent, &Error{Op: "inspect", Path: path, Err: err}
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return SymbolicLink, nil
	}
	return Directory, nil
}

// Exists reports whether path resolves to an existing file or directory,
// following symlinks.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &Error{Op: "stat", Path: path, Err: err}
}

// CreateSymlink creates a directory symbolic link at link pointing to target.
// Parent directories of link are created as needed.
func CreateSymlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return &Error{Op: "mkdir", Path: filepath.Dir(link), Err: err}
	}
	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return &Error{Op: "symlink", Path: link, Err: fmt.Errorf("%w (enable developer mode to allow symlinks)", err)}
		}
		return &Error{Op: "symlink", Path: link, Err: err}
	}
	return nil
}

// RemoveSymlink removes the link at path, never its target.
func RemoveSymlink(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &Error{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

// RemoveDirectory removes path and everything below it.
func RemoveDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &Error{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// ReadSymlinkTarget returns the target of a symlink as stored on disk.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", &Error{Op: "readlink", Path: path, Err: err}
	}
	return target, nil
}

// SameTarget reports whether the link at path already points at target.
// Relative link targets are resolved against the link's directory.
func SameTarget(path, target string) bool {
	got, err := ReadSymlinkTarget(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(got) {
		got = filepath.Join(filepath.Dir(path), got)
	}
	return filepath.Clean(got) == filepath.Clean(target)
}
