package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// message is the internal state of one queued message. A message is either
// waiting (inFlight false) or delivered and hidden until visibleAt.
type message struct {
	id        string
	body      []byte
	receipt   string
	attempts  int
	inFlight  bool
	visibleAt time.Time
}

// MemoryConfig configures an in-memory queue.
type MemoryConfig struct {
	// Redrive, when non-nil, is the dead-letter queue. A message whose
	// visibility lapses unacknowledged after Redrive's threshold of
	// deliveries is moved there instead of becoming deliverable again.
	Redrive *Memory

	// MaxReceiveCount is the redrive threshold. Ignored when Redrive is
	// nil. Defaults to 3.
	MaxReceiveCount int

	// Now returns the current time. Defaults to time.Now. Tests inject a
	// fake clock to drive visibility expiry deterministically.
	Now func() time.Time
}

// Memory is an in-memory Queue with visibility timeouts, per-message
// delivery counts, and optional redrive to a dead-letter queue. It models
// the same contract as the SQS implementation so consumers can be tested
// without external infrastructure.
//
// Expired visibility windows are swept lazily on Receive, so with an
// injected clock the full redelivery/redrive state machine is
// deterministic.
type Memory struct {
	mu              sync.Mutex
	messages        []*message
	redrive         *Memory
	maxReceiveCount int
	now             func() time.Time
}

// NewMemory creates an in-memory queue.
func NewMemory(cfg MemoryConfig) *Memory {
	if cfg.MaxReceiveCount <= 0 {
		cfg.MaxReceiveCount = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Memory{
		redrive:         cfg.Redrive,
		maxReceiveCount: cfg.MaxReceiveCount,
		now:             cfg.Now,
	}
}

// Send enqueues a new message, immediately deliverable.
func (m *Memory) Send(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, &message{
		id:   uuid.NewString(),
		body: append([]byte(nil), body...),
	})
	return nil
}

// Receive sweeps expired visibility windows, then delivers up to max
// deliverable messages, hiding each for the visibility window.
func (m *Memory) Receive(ctx context.Context, max int, visibility time.Duration) ([]Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if max <= 0 {
		return nil, fmt.Errorf("max must be positive, got %d", max)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	var out []Envelope
	for _, msg := range m.messages {
		if len(out) == max {
			break
		}
		if msg.inFlight || msg.visibleAt.After(now) {
			continue
		}

		msg.attempts++
		msg.inFlight = true
		msg.receipt = uuid.NewString()
		msg.visibleAt = now.Add(visibility)

		out = append(out, Envelope{
			MessageID:     msg.id,
			Body:          append([]byte(nil), msg.body...),
			ReceiptHandle: msg.receipt,
			DeliveryCount: msg.attempts,
		})
	}

	return out, nil
}

// Delete acknowledges an in-flight delivery. A stale receipt handle (the
// message was already redelivered, redriven, or deleted) returns
// ErrReceiptNotFound.
func (m *Memory) Delete(ctx context.Context, receiptHandle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, msg := range m.messages {
		if msg.inFlight && msg.receipt == receiptHandle {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrReceiptNotFound, receiptHandle)
}

// Size returns the number of messages currently held, in flight or not.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// sweepLocked returns lapsed in-flight messages to the deliverable state,
// or moves them to the redrive target once the delivery budget is spent.
// The redriven copy carries the same body with delivery bookkeeping reset.
// Callers must hold m.mu.
func (m *Memory) sweepLocked(now time.Time) {
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.inFlight && !msg.visibleAt.After(now) {
			msg.inFlight = false
			msg.receipt = ""
			if m.redrive != nil && msg.attempts >= m.maxReceiveCount {
				m.redrive.mu.Lock()
				m.redrive.messages = append(m.redrive.messages, &message{
					id:   msg.id,
					body: msg.body,
				})
				m.redrive.mu.Unlock()
				continue
			}
		}
		kept = append(kept, msg)
	}
	m.messages = kept
}
