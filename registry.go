package lintengine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/go-lintpack/lintengine/config"
)

var (
	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("registry is frozen")

	// ErrDuplicateCheck is returned when a check name is already taken.
	ErrDuplicateCheck = errors.New("duplicate check name")
)

var checkNameRE = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// Registry holds the set of checks and the per-kind dispatch table.
//
// A registry is filled at startup and frozen before the first run;
// after that it's read-only and safe for concurrent use.
type Registry struct {
	checks []*Check
	byName map[string]*Check
	byKind [numNodeKinds][]*Check
	schema config.Schema
	frozen atomic.Bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Check),
		schema: make(config.Schema),
	}
}

// Register adds a check described by info and implemented by c.
func (r *Registry) Register(info CheckInfo, c Checker) error {
	if r.frozen.Load() {
		return fmt.Errorf("register %q: %w", info.Name, ErrFrozen)
	}
	if c == nil {
		return fmt.Errorf("register %q: nil checker", info.Name)
	}

	trimDocumentation(&info)
	if err := r.validate(&info); err != nil {
		return fmt.Errorf("register %q: %w", info.Name, err)
	}

	check := &Check{
		Info:    &info,
		checker: c,
		index:   len(r.checks),
	}
	r.checks = append(r.checks, check)
	r.byName[info.Name] = check
	seen := make(map[NodeKind]bool, len(info.Kinds))
	for _, kind := range info.Kinds {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		r.byKind[kind] = append(r.byKind[kind], check)
	}
	return nil
}

// MustRegister is like Register, but panics on error.
func (r *Registry) MustRegister(info CheckInfo, c Checker) {
	if err := r.Register(info, c); err != nil {
		panic(err)
	}
}

func (r *Registry) validate(info *CheckInfo) error {
	if !checkNameRE.MatchString(info.Name) {
		return fmt.Errorf("bad check name, want %s", checkNameRE)
	}
	if _, ok := r.byName[info.Name]; ok {
		return ErrDuplicateCheck
	}
	if _, ok := ParseCategory(info.Name); ok {
		return fmt.Errorf("check name collides with a category name")
	}
	if !info.Category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if info.Level != 0 && !info.Level.IsSet() {
		return fmt.Errorf("invalid default level %d", info.Level)
	}
	if len(info.Kinds) == 0 {
		return fmt.Errorf("empty node kinds list")
	}
	for _, kind := range info.Kinds {
		if !kind.IsValid() {
			return fmt.Errorf("invalid node kind %d", kind)
		}
	}
	if info.Summary == "" {
		return fmt.Errorf("empty summary")
	}
	// Validate params against a copy, so a failed registration
	// doesn't leave partial declarations behind.
	schema := make(config.Schema, len(r.schema))
	for k, p := range r.schema {
		schema[k] = p
	}
	for key, p := range info.Params {
		if err := schema.Add(key, p); err != nil {
			return err
		}
	}
	r.schema = schema
	return nil
}

func trimDocumentation(info *CheckInfo) {
	fields := []*string{
		&info.Summary,
		&info.Details,
		&info.Before,
		&info.After,
		&info.Note,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() { r.frozen.Store(true) }

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool { return r.frozen.Load() }

// ChecksFor returns checks interested in kind, in registration order.
// The returned slice must not be modified.
func (r *Registry) ChecksFor(kind NodeKind) []*Check {
	if !kind.IsValid() {
		return nil
	}
	return r.byKind[kind]
}

// Lookup finds a check by its name.
func (r *Registry) Lookup(name string) *Check {
	return r.byName[name]
}

// Checks returns all checks in registration order.
// The returned slice must not be modified.
func (r *Registry) Checks() []*Check {
	return r.checks
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.checks)
}

// IsKnownName reports whether name is a check or a category name.
func (r *Registry) IsKnownName(name string) bool {
	if _, ok := ParseCategory(name); ok {
		return true
	}
	return r.byName[name] != nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry filled by AddCheck.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// AddCheck registers a check in the default registry.
// Intended to be called from package init functions; panics on error.
func AddCheck(info CheckInfo, c Checker) {
	defaultRegistry.MustRegister(info, c)
}
