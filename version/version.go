// Package version models toolchain versions used for minimum supported
// version gating.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a toolchain release number.
// The zero value means "not specified".
type Version struct {
	Major int
	Minor int
	Patch int
}

// New returns major.minor.patch version.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses "major.minor" or "major.minor.patch".
// A "go" prefix is accepted, so module go directives ("go1.22")
// can be passed as is. A missing patch component is normalized to 0.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "go")
	sv := "v" + s
	if !strings.Contains(s, ".") || !semver.IsValid(sv) || semver.Prerelease(sv) != "" || semver.Build(sv) != "" {
		return Version{}, fmt.Errorf("version %q: want major.minor or major.minor.patch", raw)
	}

	var v Version
	if _, err := fmt.Sscanf(semver.Canonical(sv), "v%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Version{}, fmt.Errorf("version %q: %w", raw, err)
	}
	if v.IsZero() {
		return Version{}, fmt.Errorf("version %q: must be non-zero", raw)
	}
	return v, nil
}

// MustParse is like Parse, but panics on error.
// Intended for check declarations.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is unspecified.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare returns -1, 0 or +1 depending on whether v is
// older, equal or newer than other.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.semver(), other.semver())
}

// Less reports whether v is older than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Meets reports whether a project targeting v can use features
// that appeared in floor. Unspecified v or floor always meet.
func (v Version) Meets(floor Version) bool {
	if v.IsZero() || floor.IsZero() {
		return true
	}
	return !v.Less(floor)
}

func (v Version) String() string {
	if v.IsZero() {
		return "unspecified"
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) semver() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}
