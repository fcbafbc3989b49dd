package config

import "fmt"

func (c *Config) lookup(key string, kind ValueKind) interface{} {
	param, ok := c.schema[key]
	if !ok {
		panic(fmt.Sprintf("config: undeclared key %q", key))
	}
	if param.Kind() != kind {
		panic(fmt.Sprintf("config: key %q is %s, not %s", key, param.Kind(), kind))
	}
	if v, ok := c.values[key]; ok {
		return v
	}
	return param.Value
}

// Int returns integer value of key.
func (c *Config) Int(key string) int {
	return c.lookup(key, KindInt).(int)
}

// String returns string value of key.
func (c *Config) String(key string) string {
	return c.lookup(key, KindString).(string)
}

// Bool returns boolean value of key.
func (c *Config) Bool(key string) bool {
	return c.lookup(key, KindBool).(bool)
}

// Strings returns a copy of list value of key.
func (c *Config) Strings(key string) []string {
	list := c.lookup(key, KindStrings).([]string)
	return append([]string(nil), list...)
}
