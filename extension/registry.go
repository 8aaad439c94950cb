package extension

import (
	"slices"
	"sync"
)

// Registry answers whether an extension of a given kind is registered under a name.
type Registry interface {
	HasExtension(kind, name string) bool
}

// MergeValues merges requested with defaults, keeping only defaults that reg
// knows for kind.
func MergeValues(reg Registry, kind, requested string, defaults []string) []string {
	return Merge(requested, defaults, func(name string) bool {
		return reg != nil && reg.HasExtension(kind, name)
	})
}

// MapRegistry is an in-memory Registry safe for concurrent use.
// The zero value is ready to use.
type MapRegistry struct {
	mu    sync.RWMutex
	kinds map[string]map[string]struct{}
}

// NewMapRegistry creates an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{}
}

// Register adds names under kind. Blank names are ignored.
func (r *MapRegistry) Register(kind string, names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kinds == nil {
		r.kinds = make(map[string]map[string]struct{})
	}

	set, ok := r.kinds[kind]
	if !ok {
		set = make(map[string]struct{}, len(names))
		r.kinds[kind] = set
	}

	for _, name := range names {
		if name != "" {
			set[name] = struct{}{}
		}
	}
}

// HasExtension implements Registry.
func (r *MapRegistry) HasExtension(kind, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.kinds[kind][name]

	return ok
}

// Names returns the sorted names registered under kind.
func (r *MapRegistry) Names(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds[kind]))
	for name := range r.kinds[kind] {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// MergeSetting is MergeValues for a configured value. A value that IsEmpty,
// other than "", switches the kind off and yields no names. A value that
// IsDefault selects the registered defaults alone.
func MergeSetting(reg Registry, kind, value string, defaults []string) []string {
	switch {
	case value != "" && IsEmpty(value):
		return []string{}
	case IsDefault(value):
		return MergeValues(reg, kind, "", defaults)
	default:
		return MergeValues(reg, kind, value, defaults)
	}
}
