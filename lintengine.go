// Package lintengine is a pass-scheduling and diagnostic framework for
// static checks over type-checked Go packages.
//
// Checks are independent units registered in a Registry. Each check
// declares the node kinds it wants to see, its Category and an optional
// default level. The engine walks every file of a Unit once and dispatches
// each node to all interested checks in registration order.
//
// Checks never decide severity. A check asks its Pass for a
// DiagnosticBuilder, and the engine resolves the effective level at that
// point from four layers: lexical //lint: directives, command-line
// overrides, the check default and the category default. A check whose
// minimum supported version is newer than the project's stays silent.
package lintengine

import "github.com/go-lintpack/lintengine/diag"

// Category groups checks that share a default severity policy.
type Category int

const (
	categoryUnset Category = iota

	// Correctness checks find code that is outright wrong.
	Correctness
	// Style checks find code that should be written more idiomatically.
	Style
	// Complexity checks find code that does simple things in complex ways.
	Complexity
	// Performance checks find code that could run faster.
	Performance
	// Strict checks are pedantic and may have false positives.
	Strict
	// Experimental checks are still under development.
	Experimental
	// BuildMeta checks inspect build metadata rather than code.
	BuildMeta
	// Restriction checks forbid language or library features.
	// They are opt-in and may contradict other checks.
	Restriction
)

var categoryInfo = [...]struct {
	name  string
	level diag.Level
}{
	categoryUnset: {"unset", 0},
	Correctness:   {"correctness", diag.Deny},
	Style:         {"style", diag.Warn},
	Complexity:    {"complexity", diag.Warn},
	Performance:   {"performance", diag.Warn},
	Strict:        {"strict", diag.Allow},
	Experimental:  {"experimental", diag.Allow},
	BuildMeta:     {"buildmeta", diag.Allow},
	Restriction:   {"restriction", diag.Allow},
}

// Categories lists all categories.
var Categories = []Category{
	Correctness,
	Style,
	Complexity,
	Performance,
	Strict,
	Experimental,
	BuildMeta,
	Restriction,
}

func (c Category) String() string {
	if !c.IsValid() {
		return "unset"
	}
	return categoryInfo[c].name
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	return c > categoryUnset && int(c) < len(categoryInfo)
}

// DefaultLevel returns the level used by checks of this category
// that don't declare their own.
func (c Category) DefaultLevel() diag.Level {
	if !c.IsValid() {
		return diag.Allow
	}
	return categoryInfo[c].level
}

// ParseCategory finds category by its name.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.String() == name {
			return c, true
		}
	}
	return categoryUnset, false
}
