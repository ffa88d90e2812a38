package state

import (
	"sync"

	"corvid/pkg/corvid"
)

// Store holds the latest known value per entity id for one globally-scoped
// entity kind. Safe for concurrent use.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[corvid.ID]T
}

// NewStore creates an empty one-level store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[corvid.ID]T),
	}
}

// Put unconditionally replaces the value for id.
func (s *Store[T]) Put(id corvid.ID, value T) {
	s.mu.Lock()
	s.items[id] = value
	s.mu.Unlock()
}

// Get returns the value for id, reporting absence instead of failing.
func (s *Store[T]) Get(id corvid.ID) (T, bool) {
	s.mu.RLock()
	value, ok := s.items[id]
	s.mu.RUnlock()

	return value, ok
}

// Remove deletes the value for id. No-op when absent.
func (s *Store[T]) Remove(id corvid.ID) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Len returns the number of stored values.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Values returns a live read-only view over the store.
func (s *Store[T]) Values() View[T] {
	return storeView[T]{store: s}
}

// snapshot copies the current values for lock-free iteration.
func (s *Store[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]T, 0, len(s.items))
	for _, value := range s.items {
		values = append(values, value)
	}

	return values
}

// ScopedStore holds the latest known value per (scope, id) pair for one
// guild-scoped entity kind. Inner per-scope stores are created lazily on
// first write and carry their own locks, so writes under different scopes
// never contend. Safe for concurrent use.
type ScopedStore[T any] struct {
	mu     sync.RWMutex
	scopes map[corvid.ID]*Store[T]
}

// NewScopedStore creates an empty two-level store.
func NewScopedStore[T any]() *ScopedStore[T] {
	return &ScopedStore[T]{
		scopes: make(map[corvid.ID]*Store[T]),
	}
}

// Put unconditionally replaces the value for (scope, id), creating the
// scope's inner store on its first write.
func (s *ScopedStore[T]) Put(scope, id corvid.ID, value T) {
	s.ensureScope(scope).Put(id, value)
}

// Get returns the value for (scope, id). Both a missing scope and a missing
// id report absence.
func (s *ScopedStore[T]) Get(scope, id corvid.ID) (T, bool) {
	inner, ok := s.scope(scope)
	if !ok {
		var zero T
		return zero, false
	}

	return inner.Get(id)
}

// Remove deletes the value for (scope, id). No-op when absent.
func (s *ScopedStore[T]) Remove(scope, id corvid.ID) {
	inner, ok := s.scope(scope)
	if !ok {
		return
	}
	inner.Remove(id)
}

// RemoveScope drops the scope's entire inner store. Used for cascading
// deletes when the owning entity goes away.
func (s *ScopedStore[T]) RemoveScope(scope corvid.ID) {
	s.mu.Lock()
	delete(s.scopes, scope)
	s.mu.Unlock()
}

// Len returns the total number of stored values across all scopes.
func (s *ScopedStore[T]) Len() int {
	total := 0
	for _, inner := range s.scopeSnapshot() {
		total += inner.Len()
	}

	return total
}

// ValuesIn returns a live view over one scope's values. The view tracks the
// scope even when its inner store does not exist yet.
func (s *ScopedStore[T]) ValuesIn(scope corvid.ID) View[T] {
	return scopeView[T]{store: s, scope: scope}
}

// AllValues returns a live flattened view across all scopes. Iteration
// visits constituent scopes on demand without pre-copying the whole store.
func (s *ScopedStore[T]) AllValues() View[T] {
	return flatView[T]{store: s}
}

// scope returns the inner store for a scope when it exists.
func (s *ScopedStore[T]) scope(scope corvid.ID) (*Store[T], bool) {
	s.mu.RLock()
	inner, ok := s.scopes[scope]
	s.mu.RUnlock()

	return inner, ok
}

// ensureScope returns the inner store for a scope, allocating it on first use.
func (s *ScopedStore[T]) ensureScope(scope corvid.ID) *Store[T] {
	if inner, ok := s.scope(scope); ok {
		return inner
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if inner, ok := s.scopes[scope]; ok {
		return inner
	}
	inner := NewStore[T]()
	s.scopes[scope] = inner

	return inner
}

// scopeSnapshot copies the current inner store handles for iteration
// without holding the outer lock.
func (s *ScopedStore[T]) scopeSnapshot() []*Store[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]*Store[T], 0, len(s.scopes))
	for _, inner := range s.scopes {
		scopes = append(scopes, inner)
	}

	return scopes
}
