// Package config loads project-level lint settings.
//
// Settings live in a flat TOML file at the project root (lint.toml or
// .lint.toml). Every key must be declared by a Schema; unknown keys and
// wrong-typed values are errors, so a misconfigured run never starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/go-lintpack/lintengine/version"
)

// FileNames lists recognized settings file names, in lookup order.
var FileNames = []string{"lint.toml", ".lint.toml"}

// Error describes every problem found while loading one settings file.
type Error struct {
	Path     string
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n\t%s", e.Path, len(e.Problems), strings.Join(e.Problems, "\n\t"))
}

// Config is an immutable set of resolved settings.
type Config struct {
	path   string
	schema Schema
	values map[string]interface{}
	msrv   version.Version
	// msrvFromFile is true when msrv was set by the settings file.
	msrvFromFile bool
}

// Default returns a configuration where every key has its default value.
func Default(schema Schema) *Config {
	return &Config{
		schema: schema,
		values: make(map[string]interface{}),
	}
}

// Load finds the settings file inside root and loads it.
// A missing file is not an error; all keys keep their defaults.
func Load(root string, schema Schema) (*Config, error) {
	var found []string
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	switch len(found) {
	case 0:
		return Default(schema), nil
	case 1:
		return LoadFile(found[0], schema)
	default:
		return nil, &Error{
			Path:     root,
			Problems: []string{fmt.Sprintf("found several settings files: %s", strings.Join(found, ", "))},
		}
	}
}

// LoadFile loads settings from path.
func LoadFile(path string, schema Schema) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	cfg, err := Parse(path, string(data), schema)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes settings file contents; path is used for error messages.
func Parse(path, data string, schema Schema) (*Config, error) {
	var raw map[string]interface{}
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, &Error{Path: path, Problems: []string{fmt.Sprintf("parse TOML: %v", err)}}
	}

	cfg := Default(schema)
	cfg.path = path

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var problems []string
	for _, key := range keys {
		value := raw[key]
		if key == MSRVKey {
			s, ok := value.(string)
			if !ok {
				problems = append(problems, fmt.Sprintf("%s: want string, found %s", key, tomlTypeName(value)))
				continue
			}
			v, err := version.Parse(s)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", key, err))
				continue
			}
			cfg.msrv = v
			cfg.msrvFromFile = true
			continue
		}
		param, ok := schema[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown key %q", key))
			continue
		}
		converted, err := convert(param.Kind(), value)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		cfg.values[key] = converted
	}
	if len(problems) != 0 {
		return nil, &Error{Path: path, Problems: problems}
	}
	return cfg, nil
}

func convert(kind ValueKind, value interface{}) (interface{}, error) {
	mismatch := func() error {
		return fmt.Errorf("want %s, found %s", kind, tomlTypeName(value))
	}
	switch kind {
	case KindInt:
		n, ok := value.(int64)
		if !ok {
			return nil, mismatch()
		}
		v, err := safecast.Conv[int](n)
		if err != nil {
			return nil, fmt.Errorf("integer %d out of range", n)
		}
		return v, nil
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch()
		}
		return s, nil
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch()
		}
		return b, nil
	case KindStrings:
		list, ok := value.([]interface{})
		if !ok {
			return nil, mismatch()
		}
		out := make([]string, 0, len(list))
		for i, elem := range list {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: want string, found %s", i, tomlTypeName(elem))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func tomlTypeName(v interface{}) string {
	switch v.(type) {
	case int64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Path returns the settings file path, or "" if defaults are used.
func (c *Config) Path() string { return c.path }

// MSRV returns the minimum supported toolchain version.
// Zero value means "not specified".
func (c *Config) MSRV() version.Version { return c.msrv }

// WithMSRV returns a copy of c that uses v as MSRV unless
// the settings file specified one explicitly.
func (c *Config) WithMSRV(v version.Version) *Config {
	if c.msrvFromFile || v.IsZero() {
		return c
	}
	cp := *c
	cp.msrv = v
	return &cp
}

// Has reports whether key was set explicitly.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns explicitly set keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
