package corvid

import "errors"

var (
	// ErrInvalidEvent indicates that an event does not satisfy envelope invariants.
	ErrInvalidEvent = errors.New("corvid: invalid event")
	// ErrMalformedRecord indicates that an entity could not be built from a gateway record.
	ErrMalformedRecord = errors.New("corvid: malformed record")
	// ErrUnknownEvent indicates a gateway event name this client does not consume.
	ErrUnknownEvent = errors.New("corvid: unknown gateway event")
	// ErrInvalidSubscription indicates that a subscription configuration is invalid.
	ErrInvalidSubscription = errors.New("corvid: invalid subscription")
	// ErrSubscriptionClosed indicates that a subscription is no longer active.
	ErrSubscriptionClosed = errors.New("corvid: subscription closed")
	// ErrEventDropped indicates a non-blocking backpressure drop.
	ErrEventDropped = errors.New("corvid: event dropped due to backpressure")
)
