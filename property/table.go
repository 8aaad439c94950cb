package property

import (
	"maps"
	"slices"
)

// Table is a flat key/value property mapping. Tables published by a Store are
// never modified afterwards; mutate a Clone instead.
type Table map[string]string

// Get returns the value stored under key.
func (t Table) Get(key string) (string, bool) {
	value, ok := t[key]

	return value, ok
}

// GetOr returns the value stored under key, or fallback when key is absent.
func (t Table) GetOr(key, fallback string) string {
	if value, ok := t[key]; ok {
		return value
	}

	return fallback
}

// Keys returns the keys in sorted order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns an independent copy; the copy of a nil Table is empty, not nil.
func (t Table) Clone() Table {
	clone := make(Table, len(t))
	maps.Copy(clone, t)

	return clone
}

// Overlay returns a new Table holding t's entries overwritten by each layer in
// order, so later layers win on conflicting keys.
func (t Table) Overlay(layers ...Table) Table {
	merged := t.Clone()

	for _, layer := range layers {
		maps.Copy(merged, layer)
	}

	return merged
}
