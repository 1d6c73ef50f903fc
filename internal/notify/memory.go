package notify

import (
	"context"
	"sync"
)

// MemoryPublisher records published messages for tests.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []string
}

// NewMemoryPublisher creates an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish records the message.
func (p *MemoryPublisher) Publish(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return nil
}

// Messages returns a copy of everything published so far.
func (p *MemoryPublisher) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}
