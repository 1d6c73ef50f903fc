package consumer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/todoworks/todo-pipeline/internal/queue"
)

// RunnerConfig holds configuration for a Runner.
type RunnerConfig struct {
	// WorkerCount determines how many envelopes are handled concurrently.
	// If zero or negative, defaults to 1.
	WorkerCount int

	// MaxMessages is the batch size requested per Receive call.
	MaxMessages int

	// Visibility is how long a received envelope stays hidden from other
	// consumers while a worker handles it.
	Visibility time.Duration

	// PollInterval is how long to wait after an empty receive or a receive
	// error before polling again. Queues with long polling make this
	// mostly irrelevant; the in-memory queue relies on it.
	PollInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:  2,
		MaxMessages:  10,
		Visibility:   30 * time.Second,
		PollInterval: time.Second,
	}
}

// Runner polls a queue and dispatches envelopes to a pool of workers. A
// worker acknowledges an envelope only when its handler returns nil.
//
// Stop cancels polling and waits for workers to finish their current
// envelope. Envelopes received but not yet handled are abandoned: their
// visibility timeout lapses and they are redelivered, possibly to another
// instance. There is no explicit release call.
type Runner struct {
	queue     queue.Queue
	handler   Handler
	config    RunnerConfig
	logger    *slog.Logger
	envelopes chan queue.Envelope
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewRunner creates a runner for the given queue and handler.
func NewRunner(q queue.Queue, handler Handler, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.MaxMessages <= 0 {
		config.MaxMessages = 10
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:     q,
		handler:   handler,
		config:    config,
		logger:    logger,
		envelopes: make(chan queue.Envelope),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the poll loop and the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.poll()

	r.logger.Info("consumer started",
		"worker_count", r.config.WorkerCount,
		"max_messages", r.config.MaxMessages,
		"visibility", r.config.Visibility)
}

// Stop cancels the runner and waits for workers to finish their current
// envelope.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
	r.logger.Info("consumer stopped")
}

// poll receives batches and feeds them to the workers. The envelope
// channel is unbuffered so a received message is never parked waiting
// behind other work while its visibility window burns down.
func (r *Runner) poll() {
	defer r.wg.Done()

	for {
		if r.ctx.Err() != nil {
			return
		}

		envs, err := r.queue.Receive(r.ctx, r.config.MaxMessages, r.config.Visibility)
		if err != nil {
			if r.ctx.Err() != nil {
				return
			}
			r.logger.Error("receive failed", "error", err)
			r.sleep()
			continue
		}

		if len(envs) == 0 {
			r.sleep()
			continue
		}

		for _, env := range envs {
			select {
			case r.envelopes <- env:
			case <-r.ctx.Done():
				// Undispatched envelopes lapse back into visibility.
				return
			}
		}
	}
}

func (r *Runner) sleep() {
	select {
	case <-time.After(r.config.PollInterval):
	case <-r.ctx.Done():
	}
}

// worker handles envelopes until the runner stops.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	logger := r.logger.With("worker_id", id)
	logger.Debug("starting worker")

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("stopping worker")
			return
		case env := <-r.envelopes:
			r.process(logger, env)
		}
	}
}

// process runs the handler on one envelope and acknowledges on success.
func (r *Runner) process(logger *slog.Logger, env queue.Envelope) {
	logger = logger.With(
		"message_id", env.MessageID,
		"delivery_count", env.DeliveryCount)

	if err := r.handler.Handle(r.ctx, env); err != nil {
		// Not acknowledged: the message stays outstanding and becomes
		// redeliverable when its visibility timeout lapses.
		logger.Warn("handler failed, leaving message for redelivery", "error", err)
		return
	}

	if err := r.queue.Delete(r.ctx, env.ReceiptHandle); err != nil {
		if errors.Is(err, queue.ErrReceiptNotFound) {
			// Visibility lapsed mid-handling and the message was
			// redelivered elsewhere. At-least-once delivery at work.
			logger.Warn("receipt handle stale, message was redelivered")
			return
		}
		logger.Error("failed to acknowledge message", "error", err)
		return
	}

	logger.Debug("message acknowledged")
}
