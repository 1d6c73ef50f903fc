package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an adjustable clock for driving visibility expiry.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemorySendReceiveDelete(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	q := NewMemory(MemoryConfig{Now: clock.Now})

	require.NoError(t, q.Send(ctx, []byte("hello")))
	assert.Equal(t, 1, q.Size())

	envs, err := q.Receive(ctx, 10, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, []byte("hello"), envs[0].Body)
	assert.Equal(t, 1, envs[0].DeliveryCount)
	assert.NotEmpty(t, envs[0].ReceiptHandle)
	assert.NotEmpty(t, envs[0].MessageID)

	// In flight: invisible to other consumers.
	again, err := q.Receive(ctx, 10, 30*time.Second)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, q.Delete(ctx, envs[0].ReceiptHandle))
	assert.Equal(t, 0, q.Size())
}

func TestMemoryRedeliveryAfterVisibilityLapse(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	q := NewMemory(MemoryConfig{Now: clock.Now})

	require.NoError(t, q.Send(ctx, []byte("payload")))

	first, err := q.Receive(ctx, 1, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Not yet expired.
	clock.Advance(29 * time.Second)
	envs, err := q.Receive(ctx, 1, 30*time.Second)
	require.NoError(t, err)
	assert.Empty(t, envs)

	// Expired: redelivered with an incremented count and a fresh handle.
	clock.Advance(2 * time.Second)
	second, err := q.Receive(ctx, 1, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].MessageID, second[0].MessageID)
	assert.Equal(t, 2, second[0].DeliveryCount)
	assert.NotEqual(t, first[0].ReceiptHandle, second[0].ReceiptHandle)
}

func TestMemoryStaleReceiptDelete(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	q := NewMemory(MemoryConfig{Now: clock.Now})

	require.NoError(t, q.Send(ctx, []byte("payload")))

	first, err := q.Receive(ctx, 1, 10*time.Second)
	require.NoError(t, err)
	require.Len(t, first, 1)

	clock.Advance(11 * time.Second)
	second, err := q.Receive(ctx, 1, 10*time.Second)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// The first delivery's handle went stale on redelivery.
	err = q.Delete(ctx, first[0].ReceiptHandle)
	assert.ErrorIs(t, err, ErrReceiptNotFound)

	// The current handle still works and the message is gone for good.
	require.NoError(t, q.Delete(ctx, second[0].ReceiptHandle))
	assert.Equal(t, 0, q.Size())
}

func TestMemoryRedriveAfterMaxReceiveCount(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	dlq := NewMemory(MemoryConfig{Now: clock.Now})
	q := NewMemory(MemoryConfig{Redrive: dlq, MaxReceiveCount: 3, Now: clock.Now})

	require.NoError(t, q.Send(ctx, []byte("poison")))

	// Three deliveries, none acknowledged.
	for i := 1; i <= 3; i++ {
		envs, err := q.Receive(ctx, 1, 10*time.Second)
		require.NoError(t, err)
		require.Len(t, envs, 1, "delivery %d", i)
		assert.Equal(t, i, envs[0].DeliveryCount)
		clock.Advance(11 * time.Second)
	}

	// The budget is spent: the message moved to the DLQ exactly once and
	// is no longer on the primary queue.
	envs, err := q.Receive(ctx, 10, 10*time.Second)
	require.NoError(t, err)
	assert.Empty(t, envs)
	assert.Equal(t, 0, q.Size())
	require.Equal(t, 1, dlq.Size())

	// The redriven copy has the same body with delivery bookkeeping reset.
	dead, err := dlq.Receive(ctx, 1, 10*time.Second)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, []byte("poison"), dead[0].Body)
	assert.Equal(t, 1, dead[0].DeliveryCount)
}

func TestMemoryAcknowledgedMessageNeverRedriven(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	dlq := NewMemory(MemoryConfig{Now: clock.Now})
	q := NewMemory(MemoryConfig{Redrive: dlq, MaxReceiveCount: 3, Now: clock.Now})

	require.NoError(t, q.Send(ctx, []byte("fine")))

	envs, err := q.Receive(ctx, 1, 10*time.Second)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	require.NoError(t, q.Delete(ctx, envs[0].ReceiptHandle))

	clock.Advance(time.Hour)
	envs, err = q.Receive(ctx, 10, 10*time.Second)
	require.NoError(t, err)
	assert.Empty(t, envs)
	assert.Equal(t, 0, dlq.Size())
}

func TestMemoryReceiveHonorsMax(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	q := NewMemory(MemoryConfig{Now: clock.Now})

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Send(ctx, []byte{byte(i)}))
	}

	envs, err := q.Receive(ctx, 3, time.Minute)
	require.NoError(t, err)
	assert.Len(t, envs, 3)

	rest, err := q.Receive(ctx, 10, time.Minute)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}
