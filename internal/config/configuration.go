package config

import (
	"sort"
	"strings"
)

// KeyDelimiter separates the segments of a hierarchical configuration key.
const KeyDelimiter = ":"

// Configuration is the effective configuration: the flat key/value view
// produced by merging all sources in rank order.
//
// A Configuration is immutable after it has been built and is safe for
// concurrent use without locking.
type Configuration struct {
	// values is keyed by the normalized (lower-cased) key.
	values map[string]string
	// names keeps the spelling of the first source that defined each key.
	names map[string]string

	sources []Source
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Get returns the value of key and whether it is defined. Lookup is
// case-insensitive.
func (c *Configuration) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.values[normalizeKey(key)]
	return v, ok
}

// Value returns the value of key, or an empty string if it is not defined.
func (c *Configuration) Value(key string) string {
	v, _ := c.Get(key)
	return v
}

// Keys returns all defined keys in sorted order.
func (c *Configuration) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.names))
	for _, name := range c.names {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of defined keys.
func (c *Configuration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Sources returns the sources the configuration was built from, in rank
// order.
func (c *Configuration) Sources() []Source {
	if c == nil {
		return nil
	}
	return append([]Source(nil), c.sources...)
}

// Reload rebuilds the configuration from the same sources. The receiver is
// not modified.
func (c *Configuration) Reload() (*Configuration, error) {
	return mergeSources(c.sources)
}

// environ projects the configuration into environment-variable form for
// typed binding: `Application:MaxRequestBodySize` becomes
// `APPLICATION__MAXREQUESTBODYSIZE`.
func (c *Configuration) environ() map[string]string {
	out := make(map[string]string, len(c.values))
	for key, value := range c.values {
		name := strings.ToUpper(strings.ReplaceAll(key, KeyDelimiter, envKeyDelimiter))
		out[name] = value
	}
	return out
}
