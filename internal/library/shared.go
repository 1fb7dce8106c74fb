package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/enyojs/enyo-dev/internal/platform"
)

// ErrNotRegistered is returned when unregistering an unknown shared library.
var ErrNotRegistered = errors.New("library is not registered in the links directory")

// SharedLibrary is a checkout registered in the shared links directory.
type SharedLibrary struct {
	Name   string
	Target string // checkout the registration points at
	Broken bool   // target no longer exists
}

// Register makes the checkout at dir available for linking as name by
// creating linksDir/name pointing at it. Re-registering the same checkout is
// a no-op and an existing registration for another checkout is replaced. A
// real directory occupying the registration slot is never removed.
func Register(linksDir, name, dir string) error {
	if !validName(name) {
		return fmt.Errorf("invalid library name %q", name)
	}
	target, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if ok, err := platform.Exists(target); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: %s", ErrLinkTargetMissing, target)
	}

	slot := filepath.Join(linksDir, name)
	kind, err := platform.Inspect(slot)
	if err != nil {
		return err
	}
	switch kind {
	case platform.SymbolicLink:
		if platform.SameTarget(slot, target) {
			return nil
		}
		if err := platform.RemoveSymlink(slot); err != nil {
			return err
		}
	case platform.Directory:
		return &FilesystemError{Op: "register", Path: slot, Err: fmt.Errorf("a checkout already lives here, not a link")}
	}

	return platform.CreateSymlink(target, slot)
}

// Unregister removes the registration for name. The checkout itself is left
// alone.
func Unregister(linksDir, name string) error {
	slot := filepath.Join(linksDir, name)
	kind, err := platform.Inspect(slot)
	if err != nil {
		return err
	}
	switch kind {
	case platform.Absent:
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	case platform.Directory:
		return &FilesystemError{Op: "unregister", Path: slot, Err: fmt.Errorf("not a link")}
	}
	return platform.RemoveSymlink(slot)
}

// Shared lists the libraries available in linksDir, sorted by name. Plain
// checkouts placed directly in linksDir are listed with themselves as
// target. A missing links directory yields an empty list.
func Shared(linksDir string) ([]SharedLibrary, error) {
	entries, err := os.ReadDir(linksDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &FilesystemError{Op: "readdir", Path: linksDir, Err: err}
	}

	var libs []SharedLibrary
	for _, e := range entries {
		path := filepath.Join(linksDir, e.Name())
		lib := SharedLibrary{Name: e.Name(), Target: path}
		if e.Type()&os.ModeSymlink != 0 {
			if target, err := platform.ReadSymlinkTarget(path); err == nil {
				if !filepath.IsAbs(target) {
					target = filepath.Join(linksDir, target)
				}
				lib.Target = target
			}
			ok, _ := platform.Exists(path)
			lib.Broken = !ok
		} else if !e.IsDir() {
			continue
		}
		libs = append(libs, lib)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
	return libs, nil
}
