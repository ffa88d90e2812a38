// Package gateway converts raw gateway frames into the neutral event
// envelopes the cache consumes: frame envelope splitting, dispatch-event
// routing, and record unmarshalling.
package gateway
