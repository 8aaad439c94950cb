package property

import (
	"sync"
	"sync/atomic"
)

// LoadFunc produces the initial contents of a Store.
type LoadFunc func() Table

// Store is a layered property table loaded lazily on first access.
//
// Reads after initialization do not lock: the current table is published
// through an atomic pointer and never modified. Initialization, Add and Set
// take the same mutex, so load runs at most once and writers never interleave.
type Store struct {
	load  LoadFunc
	mu    sync.Mutex
	table atomic.Pointer[Table]
}

// NewStore creates a Store that calls load on first access. A nil load starts empty.
func NewStore(load LoadFunc) *Store {
	return &Store{load: load}
}

// Properties returns a copy of the current table, loading it first if needed.
func (s *Store) Properties() Table {
	return s.snapshot().Clone()
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	return s.snapshot().Get(key)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	return s.snapshot().Keys()
}

// Loaded reports whether the table has been initialized, by loading or Set.
func (s *Store) Loaded() bool {
	return s.table.Load() != nil
}

// Add merges table into the store, overwriting existing keys. The store is
// loaded first if needed. A nil table is ignored.
func (s *Store) Add(table Table) {
	if table == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.initLocked().Overlay(table)
	s.table.Store(&merged)
}

// Set replaces the whole store with a copy of table without loading. A nil
// table is ignored.
func (s *Store) Set(table Table) {
	if table == nil {
		return
	}

	replacement := table.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Store(&replacement)
}

// snapshot returns the published table; callers must not modify it.
func (s *Store) snapshot() Table {
	if current := s.table.Load(); current != nil {
		return *current
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.initLocked()
}

func (s *Store) initLocked() Table {
	if current := s.table.Load(); current != nil {
		return *current
	}

	var loaded Table
	if s.load != nil {
		loaded = s.load()
	}

	loaded = loaded.Clone()
	s.table.Store(&loaded)

	return loaded
}
