package booking

import "context"

// EventSink publishes booking lifecycle events. Implementations must be safe
// to call after the storage transaction committed; failures are ignored by
// the service.
type EventSink interface {
	Publish(ctx context.Context, queueName string, event any) error
}
