package project

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// WrittenByNewerMajor reports whether a configuration saved by tool version
// saved comes from a newer major release than running. Development builds and
// unversioned files are never considered newer.
func WrittenByNewerMajor(saved, running string) (bool, error) {
	if saved == "" || running == "" || running == "dev" {
		return false, nil
	}
	sv, err := parseSemver(saved)
	if err != nil {
		return false, fmt.Errorf("parsing saved tool version %q: %w", saved, err)
	}
	rv, err := parseSemver(running)
	if err != nil {
		return false, fmt.Errorf("parsing running tool version %q: %w", running, err)
	}
	return sv.Major() > rv.Major(), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
