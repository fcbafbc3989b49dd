package config

import (
	"fmt"
	"sort"
)

// ValueKind is a type of configuration value.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindInt
	KindString
	KindBool
	KindStrings
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindStrings:
		return "list of strings"
	default:
		return "invalid"
	}
}

// Param declares a recognized configuration key.
//
// The Go type of Value defines the value kind:
// int, string, bool or []string.
type Param struct {
	Value interface{}
	Usage string
}

// Kind returns the kind implied by the default value.
func (p Param) Kind() ValueKind {
	return kindOf(p.Value)
}

func kindOf(v interface{}) ValueKind {
	switch v.(type) {
	case int:
		return KindInt
	case string:
		return KindString
	case bool:
		return KindBool
	case []string:
		return KindStrings
	default:
		return KindInvalid
	}
}

// MSRVKey is the reserved key for the minimum supported toolchain version.
const MSRVKey = "msrv"

// Schema maps every recognized key to its declaration.
type Schema map[string]Param

// Add declares key. Declaring the same key twice is allowed as long
// as both declarations agree on the value kind.
func (s Schema) Add(key string, p Param) error {
	if key == "" {
		return fmt.Errorf("empty config key")
	}
	if key == MSRVKey {
		return fmt.Errorf("config key %q is reserved", key)
	}
	if p.Kind() == KindInvalid {
		return fmt.Errorf("config key %q: unsupported default value type %T", key, p.Value)
	}
	if prev, ok := s[key]; ok && prev.Kind() != p.Kind() {
		return fmt.Errorf("config key %q declared as %s and %s", key, prev.Kind(), p.Kind())
	}
	s[key] = p
	return nil
}

// Keys returns declared keys in sorted order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
