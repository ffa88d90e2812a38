package state

import (
	"iter"

	"corvid/pkg/corvid"
)

// View is a live, read-only projection over one or more stores.
//
// A view never owns entities: lookups and iteration read through to the
// backing store at call time, so mutations applied after the view was
// obtained are visible without re-acquiring it. All returns a restartable
// sequence; each range over it re-reads the backing store.
type View[T any] interface {
	// Get returns the value for id, reporting absence instead of failing.
	Get(id corvid.ID) (T, bool)
	// ForEach visits every value until fn returns false.
	ForEach(fn func(T) bool)
	// Len returns the number of values currently visible.
	Len() int
	// All returns a lazy, restartable sequence over the current values.
	All() iter.Seq[T]
}

// storeView projects a one-level store.
type storeView[T any] struct {
	store *Store[T]
}

func (v storeView[T]) Get(id corvid.ID) (T, bool) {
	return v.store.Get(id)
}

func (v storeView[T]) ForEach(fn func(T) bool) {
	for _, value := range v.store.snapshot() {
		if !fn(value) {
			return
		}
	}
}

func (v storeView[T]) Len() int {
	return v.store.Len()
}

func (v storeView[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.store.snapshot() {
			if !yield(value) {
				return
			}
		}
	}
}

// scopeView projects a single scope of a two-level store. The scope is
// resolved on every access so the view stays valid across scope creation
// and cascade removal.
type scopeView[T any] struct {
	store *ScopedStore[T]
	scope corvid.ID
}

func (v scopeView[T]) Get(id corvid.ID) (T, bool) {
	return v.store.Get(v.scope, id)
}

func (v scopeView[T]) ForEach(fn func(T) bool) {
	inner, ok := v.store.scope(v.scope)
	if !ok {
		return
	}
	for _, value := range inner.snapshot() {
		if !fn(value) {
			return
		}
	}
}

func (v scopeView[T]) Len() int {
	inner, ok := v.store.scope(v.scope)
	if !ok {
		return 0
	}

	return inner.Len()
}

func (v scopeView[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		inner, ok := v.store.scope(v.scope)
		if !ok {
			return
		}
		for _, value := range inner.snapshot() {
			if !yield(value) {
				return
			}
		}
	}
}

// flatView projects a two-level store flattened across all scopes,
// iterating constituent scopes on demand.
type flatView[T any] struct {
	store *ScopedStore[T]
}

// Get returns the value for id in whichever scope holds it. When multiple
// scopes hold the same id (members of mutual guilds) an arbitrary one wins;
// use a scoped view for scope-precise lookups.
func (v flatView[T]) Get(id corvid.ID) (T, bool) {
	for _, inner := range v.store.scopeSnapshot() {
		if value, ok := inner.Get(id); ok {
			return value, true
		}
	}

	var zero T
	return zero, false
}

func (v flatView[T]) ForEach(fn func(T) bool) {
	for _, inner := range v.store.scopeSnapshot() {
		for _, value := range inner.snapshot() {
			if !fn(value) {
				return
			}
		}
	}
}

func (v flatView[T]) Len() int {
	return v.store.Len()
}

func (v flatView[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, inner := range v.store.scopeSnapshot() {
			for _, value := range inner.snapshot() {
				if !yield(value) {
					return
				}
			}
		}
	}
}
