package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted subject suffix, e.g. "catalog.imported".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher is implemented by every event bus the services can write to.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Discard drops events; used when no broker is reachable.
var Discard Publisher = discard{}
