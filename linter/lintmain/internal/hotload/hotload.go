// Package hotload adds checks compiled as Go plugins to a registry.
package hotload

import (
	"errors"
	"fmt"
	"plugin"

	"github.com/go-lintpack/lintengine"
)

// ErrNoChecks is returned when a plugin registered nothing.
var ErrNoChecks = errors.New("plugin doesn't provide any checks")

// CheckersFromDylib loads checks provided by a dynamic library found under path.
//
// The plugin is opened only for its init functions, which are expected
// to call lintengine.AddCheck. Returns the number of new checks.
func CheckersFromDylib(reg *lintengine.Registry, path string) (int, error) {
	if path == "" {
		return 0, nil // Nothing to do
	}
	if reg.Frozen() {
		return 0, fmt.Errorf("%s: %w", path, lintengine.ErrFrozen)
	}
	before := reg.Len()
	if _, err := plugin.Open(path); err != nil {
		return 0, err
	}
	added := reg.Len() - before
	if added == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrNoChecks)
	}
	return added, nil
}
