package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownLibrary is returned when no source location can be determined
// for a library.
var ErrUnknownLibrary = errors.New("no source configured for library")

// ErrTargetExists is returned when the install target is already occupied.
var ErrTargetExists = errors.New("install target already exists")

// Fetcher installs libraries as private copies, either by shallow cloning a
// git repository or by copying a local directory.
type Fetcher struct {
	// Project holds per-project source overrides (highest priority).
	Project map[string]string
	// User holds user-level sources from ~/.enyo/config.yaml.
	User map[string]string
	// Base is prepended to "<name>.git" for libraries without a source.
	Base string
	// Git is the git executable, "git" when empty.
	Git string
}

// Source returns the location a library is fetched from.
// Order: project sources, user sources, Base/<name>.git.
func (f *Fetcher) Source(name string) (string, error) {
	if v := f.Project[name]; v != "" {
		return v, nil
	}
	if v := f.User[name]; v != "" {
		return v, nil
	}
	if f.Base != "" {
		return strings.TrimSuffix(f.Base, "/") + "/" + name + ".git", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownLibrary, name)
}

// FetchAndInstall materializes library name at target. The copy or clone is
// written to a temporary sibling directory and renamed into place, so a
// failed fetch never leaves a partial library behind.
func (f *Fetcher) FetchAndInstall(ctx context.Context, name, target string) error {
	location, err := f.Source(name)
	if err != nil {
		return err
	}

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating library directory: %w", err)
	}

	tmpDir := target + ".tmp-" + uuid.NewString()
	defer os.RemoveAll(tmpDir)

	if dir, ok := localDir(location); ok {
		if err := copyTree(dir, tmpDir); err != nil {
			return fmt.Errorf("copying %s: %w", dir, err)
		}
	} else {
		url, ref := splitRef(location)
		if err := f.clone(ctx, url, ref, tmpDir); err != nil {
			return err
		}
	}

	if err := os.Rename(tmpDir, target); err != nil {
		return fmt.Errorf("finalizing %s: %w", target, err)
	}
	return nil
}

// clone performs a --depth=1 clone of url (optionally at ref) into dir.
func (f *Fetcher) clone(ctx context.Context, url, ref, dir string) error {
	git := f.Git
	if git == "" {
		git = "git"
	}
	if _, err := exec.LookPath(git); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}

	args := []string{"clone", "--depth=1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, url, dir)

	cmd := exec.CommandContext(ctx, git, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cloning %s: %w\n%s", url, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// localDir reports whether location names a directory on this machine.
func localDir(location string) (string, bool) {
	path := strings.TrimPrefix(location, "file://")
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return path, true
}

// splitRef splits "url#ref" into its parts.
func splitRef(location string) (string, string) {
	if i := strings.LastIndex(location, "#"); i > 0 {
		return location[:i], location[i+1:]
	}
	return location, ""
}
