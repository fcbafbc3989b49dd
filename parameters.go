package lintengine

import (
	"github.com/go-lintpack/lintengine/config"
)

// CheckParams declares settings keys a check reads.
//
// Keys live in a single flat namespace shared by all checks,
// so two checks may read the same key if they agree on its type.
type CheckParams map[string]config.Param

// Schema returns configuration schema that covers every key declared
// by registered checks.
func (r *Registry) Schema() config.Schema {
	schema := make(config.Schema, len(r.schema))
	for k, p := range r.schema {
		schema[k] = p
	}
	return schema
}

// DefaultConfig returns configuration with default values for all
// keys declared by registered checks.
func (r *Registry) DefaultConfig() *config.Config {
	return config.Default(r.Schema())
}

// LoadConfig loads settings from the project root using the schema
// declared by registered checks.
func (r *Registry) LoadConfig(root string) (*config.Config, error) {
	return config.Load(root, r.Schema())
}
