package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/todoworks/todo-pipeline/internal/archive"
	"github.com/todoworks/todo-pipeline/internal/codec"
	"github.com/todoworks/todo-pipeline/internal/notify"
	"github.com/todoworks/todo-pipeline/internal/queue"
)

// DeadLetterConfig holds configuration for a DeadLetterHandler.
type DeadLetterConfig struct {
	// Policy decides when a dead letter is acknowledged. Defaults to
	// AckOnNotify.
	Policy AckPolicy

	// Key derives the archive key. Defaults to archive.DefaultKey.
	Key archive.KeyFunc

	// ArchiveTimeout bounds the archive write so a slow store cannot hold
	// the message in flight past its visibility window indefinitely.
	// Defaults to 30 seconds.
	ArchiveTimeout time.Duration
}

// DeadLetterHandler processes events that exhausted their retries on the
// primary queue. It archives the raw payload under a deterministic key,
// publishes an operator alert referencing that key, and acknowledges per
// its AckPolicy. It is a best-effort sink: neither archive nor notify is
// retried within a single attempt.
//
// Duplicate deliveries are safe. Archiving is idempotent (same key, same
// payload, last write wins) and the worst case for notification is one
// duplicate alert per redelivery.
type DeadLetterHandler struct {
	store          archive.Store
	publisher      notify.Publisher
	policy         AckPolicy
	key            archive.KeyFunc
	archiveTimeout time.Duration
	logger         *slog.Logger
}

// NewDeadLetterHandler creates a handler writing to the given store and
// publisher.
func NewDeadLetterHandler(
	store archive.Store,
	publisher notify.Publisher,
	config DeadLetterConfig,
	logger *slog.Logger,
) *DeadLetterHandler {
	if config.Policy == "" {
		config.Policy = AckOnNotify
	}
	if config.Key == nil {
		config.Key = archive.DefaultKey
	}
	if config.ArchiveTimeout <= 0 {
		config.ArchiveTimeout = 30 * time.Second
	}

	return &DeadLetterHandler{
		store:          store,
		publisher:      publisher,
		policy:         config.Policy,
		key:            config.Key,
		archiveTimeout: config.ArchiveTimeout,
		logger:         logger,
	}
}

// Handle archives the payload, publishes the alert, and decides on
// acknowledgment.
//
// A payload that cannot be decoded is terminal: there is no key to archive
// under and redelivery can never succeed, so it is logged and acknowledged
// under every policy.
func (h *DeadLetterHandler) Handle(ctx context.Context, env queue.Envelope) error {
	logger := h.logger.With("message_id", env.MessageID)

	ev, err := codec.Decode(env.Body)
	if err != nil {
		logger.Error("dropping undecodable dead letter",
			"error", err,
			"body_bytes", len(env.Body))
		return nil
	}

	key := h.key(ev)
	logger = logger.With("archive_key", key)

	archiveErr := h.archivePayload(ctx, key, env.Body)
	if archiveErr != nil {
		logger.Error("failed to archive dead letter", "error", archiveErr)
	} else {
		logger.Info("dead letter archived")
	}

	// The notification goes out whether or not archiving worked; it may be
	// the only remaining trace of the event.
	notifyErr := h.publisher.Publish(ctx, notify.FailureMessage(key))
	if notifyErr != nil {
		logger.Error("failed to publish dead letter notification", "error", notifyErr)
	} else {
		logger.Info("dead letter notification published")
	}

	switch h.policy {
	case AckOnSuccess:
		if archiveErr != nil {
			return fmt.Errorf("archive %q: %w", key, archiveErr)
		}
		if notifyErr != nil {
			return fmt.Errorf("notify for %q: %w", key, notifyErr)
		}
	case AckOnNotify:
		if notifyErr != nil {
			return fmt.Errorf("notify for %q: %w", key, notifyErr)
		}
	}
	return nil
}

func (h *DeadLetterHandler) archivePayload(ctx context.Context, key string, body []byte) error {
	putCtx, cancel := context.WithTimeout(ctx, h.archiveTimeout)
	defer cancel()
	return h.store.Put(putCtx, key, body)
}
