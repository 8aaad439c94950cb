package property

import "sync"

// Resolver looks property values up through the process overrides and a Store,
// expanding placeholders in stored values.
type Resolver struct {
	store     *Store
	overrides Overrides
}

// NewResolver creates a Resolver. A nil overrides disables the override layer;
// a nil store resolves against an empty table.
func NewResolver(store *Store, overrides Overrides) *Resolver {
	if store == nil {
		store = NewStore(nil)
	}

	return &Resolver{store: store, overrides: overrides}
}

// Store returns the underlying store.
func (r *Resolver) Store() *Store {
	return r.store
}

// Get resolves key with an empty fallback.
func (r *Resolver) Get(key string) string {
	return r.GetOr(key, "")
}

// GetOr resolves key. A non-empty override is returned verbatim. Otherwise the
// stored value, or fallback when key is not stored, is returned with its
// placeholders expanded against the overrides and the store.
func (r *Resolver) GetOr(key, fallback string) string {
	value, _ := r.resolve(key, fallback)

	return value
}

// Lookup is GetOr with an empty fallback that also reports whether key was
// found as a non-empty override or a stored key.
func (r *Resolver) Lookup(key string) (string, bool) {
	return r.resolve(key, "")
}

// Expand expands placeholders in expr against the overrides and the store.
func (r *Resolver) Expand(expr string) string {
	return Expand(expr, r.overrides, r.store.snapshot())
}

func (r *Resolver) resolve(key, fallback string) (string, bool) {
	if value, ok := lookup(r.overrides, key); ok && value != "" {
		return value, true
	}

	table := r.store.snapshot()
	value, found := table.Get(key)

	if !found {
		value = fallback
	}

	return Expand(value, r.overrides, table), found
}

//nolint:gochecknoglobals // process-wide resolver, built on first use.
var processResolver = sync.OnceValue(func() *Resolver {
	overrides := EnvOverrides{}
	store := NewLoader().StoreFor(overrides, LoadOptions{MultiFile: false, MustExist: true})

	return NewResolver(store, overrides)
})

// Default returns the process-wide Resolver. Its overrides are environment
// variables and its store loads ResolvePath from the working directory on
// first access, in single-file mode.
func Default() *Resolver {
	return processResolver()
}

// Get resolves key through Default.
func Get(key string) string {
	return Default().Get(key)
}

// GetOr resolves key through Default.
func GetOr(key, fallback string) string {
	return Default().GetOr(key, fallback)
}
