// Package dispatch fans decoded gateway events out to consumers through
// bounded asynchronous subscriptions. The cache engine subscribes with a
// single worker and blocking backpressure so events reach it strictly in
// arrival order; other consumers choose their own buffering and drop
// policies.
package dispatch
