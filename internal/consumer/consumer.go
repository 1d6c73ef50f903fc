// Package consumer implements the queue consumers: the validator on the
// primary queue and the dead-letter handler on the DLQ, plus the runner
// that polls a queue and dispatches envelopes to a bounded worker pool.
//
// A handler never acknowledges a message itself. It returns nil to signal
// "acknowledge" and an error to signal "leave the message outstanding";
// the runner translates that into a Delete call or into nothing at all,
// letting the visibility timeout return the message to circulation. No
// error ever crosses the queue boundary in any other form.
package consumer

import (
	"context"

	"github.com/todoworks/todo-pipeline/internal/queue"
)

// Handler processes one envelope. Returning nil acknowledges the delivery;
// returning an error leaves it outstanding for redelivery (and eventual
// redrive). Handlers must not share mutable state across concurrent calls:
// each envelope is processed with no dependency on sibling envelopes.
type Handler interface {
	Handle(ctx context.Context, env queue.Envelope) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, env queue.Envelope) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, env queue.Envelope) error {
	return f(ctx, env)
}
