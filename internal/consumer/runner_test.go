package consumer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoworks/todo-pipeline/internal/queue"
)

func testRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:  2,
		MaxMessages:  10,
		Visibility:   5 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

func TestRunnerAcknowledgesOnSuccess(t *testing.T) {
	q := newMemoryQueue()
	require.NoError(t, q.Send(context.Background(), []byte("ok")))

	var handled atomic.Int32
	handler := HandlerFunc(func(ctx context.Context, env queue.Envelope) error {
		handled.Add(1)
		return nil
	})

	r := NewRunner(q, handler, testRunnerConfig(), discardLogger())
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return handled.Load() == 1 && q.Size() == 0
	}, 2*time.Second, 10*time.Millisecond, "message should be handled and acknowledged")
}

func TestRunnerLeavesMessageOnHandlerError(t *testing.T) {
	q := newMemoryQueue()
	require.NoError(t, q.Send(context.Background(), []byte("bad")))

	var handled atomic.Int32
	handler := HandlerFunc(func(ctx context.Context, env queue.Envelope) error {
		handled.Add(1)
		return errors.New("validation failed")
	})

	r := NewRunner(q, handler, testRunnerConfig(), discardLogger())
	r.Start()

	require.Eventually(t, func() bool {
		return handled.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	r.Stop()

	// Not acknowledged: still on the queue, waiting out its visibility.
	assert.Equal(t, 1, q.Size())
}

func TestRunnerStopAbandonsInFlightEnvelope(t *testing.T) {
	// Short visibility so the abandoned message comes back quickly.
	q := newMemoryQueue()
	require.NoError(t, q.Send(context.Background(), []byte("slow")))

	started := make(chan struct{})
	handler := HandlerFunc(func(ctx context.Context, env queue.Envelope) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	cfg := testRunnerConfig()
	cfg.Visibility = 50 * time.Millisecond

	r := NewRunner(q, handler, cfg, discardLogger())
	r.Start()

	<-started
	r.Stop()

	// No explicit release: the message lapses back into visibility and is
	// redelivered with an incremented delivery count.
	require.Eventually(t, func() bool {
		envs, err := q.Receive(context.Background(), 1, time.Second)
		if err != nil || len(envs) == 0 {
			return false
		}
		assert.Equal(t, 2, envs[0].DeliveryCount)
		return true
	}, 2*time.Second, 20*time.Millisecond)
}

// newMemoryQueue is a test shorthand for an in-memory queue with defaults.
func newMemoryQueue() *queue.Memory {
	return queue.NewMemory(queue.MemoryConfig{})
}
