package property

import (
	"os"

	"github.com/spf13/viper"
)

// Overrides is a process-level key/value lookup consulted before the property
// store, such as environment variables or -D style command line definitions.
// An absent key is simply not set; it is never an error.
type Overrides interface {
	Lookup(key string) (string, bool)
}

// OverridesFunc adapts a function to Overrides.
type OverridesFunc func(key string) (string, bool)

// Lookup implements Overrides.
func (f OverridesFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// MapOverrides serves overrides from a fixed map.
type MapOverrides map[string]string

// Lookup implements Overrides.
func (m MapOverrides) Lookup(key string) (string, bool) {
	value, ok := m[key]

	return value, ok
}

// EnvOverrides serves overrides from the process environment, keys used verbatim.
type EnvOverrides struct{}

// Lookup implements Overrides.
func (EnvOverrides) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ViperOverrides serves overrides from every key a viper instance holds a value
// for: viper.Set, bound flags and environment, config file and defaults.
// Keys are matched case-insensitively, as viper does. Viper nests dotted keys,
// so a key that only names a subtree ("db" next to "db.host") is not a hit.
type ViperOverrides struct {
	v *viper.Viper
}

// NewViperOverrides wraps v; a nil v uses the global viper instance.
func NewViperOverrides(v *viper.Viper) ViperOverrides {
	if v == nil {
		v = viper.GetViper()
	}

	return ViperOverrides{v: v}
}

// Lookup implements Overrides.
func (o ViperOverrides) Lookup(key string) (string, bool) {
	if !o.v.IsSet(key) {
		return "", false
	}

	switch o.v.Get(key).(type) {
	case nil, map[string]any, map[string]string:
		return "", false
	}

	return o.v.GetString(key), true
}

type chain []Overrides

// Chain consults each Overrides in order and returns the first hit.
// Nil entries are skipped.
func Chain(overrides ...Overrides) Overrides {
	links := make(chain, 0, len(overrides))

	for _, o := range overrides {
		if o != nil {
			links = append(links, o)
		}
	}

	return links
}

func (c chain) Lookup(key string) (string, bool) {
	for _, o := range c {
		if value, ok := o.Lookup(key); ok {
			return value, true
		}
	}

	return "", false
}

func lookup(overrides Overrides, key string) (string, bool) {
	if overrides == nil {
		return "", false
	}

	return overrides.Lookup(key)
}
