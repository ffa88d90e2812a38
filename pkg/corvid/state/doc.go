// Package state implements the incremental entity cache: a local mirror of
// the partially-observed remote object graph, kept eventually consistent by
// applying decoded gateway events in arrival order.
//
// The Engine owns one store per entity kind and is the only mutator; any
// number of goroutines may use the point lookups and live views
// concurrently with the apply path. Stored values are immutable once built,
// so readers observe a write either fully applied or not at all, never a
// partially-constructed entity.
package state
