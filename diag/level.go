package diag

import (
	"fmt"
	"strings"
)

// Level is an effective severity of a check at some location.
//
// The zero value is "unset" and is used by declarations that
// want to inherit a level from an outer layer.
type Level int

const (
	// Allow suppresses the check.
	Allow Level = iota + 1
	// Warn reports findings without failing the run.
	Warn
	// Deny reports findings and fails the run.
	Deny
	// Forbid is like Deny, but can't be lowered by any override.
	Forbid
)

// Levels lists all valid levels in ascending order.
var Levels = []Level{Allow, Warn, Deny, Forbid}

func (lvl Level) String() string {
	switch lvl {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	case Forbid:
		return "forbid"
	default:
		return "unset"
	}
}

// IsSet reports whether lvl holds one of the valid levels.
func (lvl Level) IsSet() bool {
	return lvl >= Allow && lvl <= Forbid
}

// IsError reports whether findings at lvl fail the run.
func (lvl Level) IsError() bool {
	return lvl == Deny || lvl == Forbid
}

// ParseLevel converts level name into Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn":
		return Warn, nil
	case "deny":
		return Deny, nil
	case "forbid":
		return Forbid, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}

// MarshalText serializes the level by name.
// It also makes levels usable as JSON object keys.
func (lvl Level) MarshalText() ([]byte, error) {
	return []byte(lvl.String()), nil
}

// UnmarshalText parses a level name.
func (lvl *Level) UnmarshalText(data []byte) error {
	v, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*lvl = v
	return nil
}
