package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/todoworks/todo-pipeline/internal/codec"
	"github.com/todoworks/todo-pipeline/internal/domain"
	"github.com/todoworks/todo-pipeline/internal/queue"
)

// Validator enforces the due-date invariant on events from the primary
// queue. A valid event is acknowledged and forgotten; an invalid one is
// left outstanding so the queue's redrive policy retries it and eventually
// moves it to the DLQ. The validator itself has no knowledge of the retry
// threshold.
//
// The due date is compared against the wall clock at processing time, not
// enqueue time. A message whose due date is already past can therefore
// never succeed on redelivery: it is a poison message that will
// unconditionally exhaust its retry budget.
type Validator struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewValidator creates a validator using the system clock.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the clock used for the due-date comparison. Intended
// for tests.
func (v *Validator) SetClock(now func() time.Time) {
	v.now = now
}

// Handle decodes the envelope and checks the due-date invariant. A decode
// failure is treated exactly like a validation failure: the message stays
// on the queue and consumes retry budget until the redrive policy moves it
// to the DLQ.
func (v *Validator) Handle(ctx context.Context, env queue.Envelope) error {
	ev, err := codec.Decode(env.Body)
	if err != nil {
		return fmt.Errorf("message %s: %w", env.MessageID, err)
	}

	if ev.DueDate.Before(v.now()) {
		return fmt.Errorf("todo %q (due %s): %w",
			ev.Title, ev.DueDate.Raw(), domain.ErrDueDateInPast)
	}

	v.logger.Info("todo validated",
		"title", ev.Title,
		"due_date", ev.DueDate.Raw(),
		"message_id", env.MessageID)
	return nil
}
