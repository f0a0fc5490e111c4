package events

import "context"

// Publisher relays committed contract events to downstream consumers.
// Publishing happens after commit; a relay failure never rolls back the
// invocation.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// NopPublisher drops every event. Used when the relay is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Envelope) error { return nil }

func (NopPublisher) Close() error { return nil }
