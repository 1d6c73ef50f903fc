// Package queue defines the durable queue contract the pipeline runs on,
// an in-memory implementation with visibility timeouts and redrive, and an
// SQS-backed implementation for deployment.
package queue

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by queue implementations.
var (
	// ErrReceiptNotFound is returned by Delete when the receipt handle does
	// not identify an in-flight delivery. This happens when the visibility
	// timeout lapsed and the message was redelivered (or redriven) before
	// the original consumer acknowledged it.
	ErrReceiptNotFound = errors.New("receipt handle not found")
)

// Envelope is one delivery of a message. The receipt handle identifies this
// specific delivery: acknowledging with a stale handle after redelivery
// fails rather than deleting someone else's in-flight copy.
type Envelope struct {
	// MessageID identifies the message across deliveries.
	MessageID string

	// Body is the serialized event payload.
	Body []byte

	// ReceiptHandle is the opaque token for acknowledging this delivery.
	ReceiptHandle string

	// DeliveryCount is how many times the message has been delivered,
	// including this delivery. Maintained by the queue, never the payload.
	DeliveryCount int
}

// Queue is a durable, at-least-once delivery channel.
//
// A received message stays invisible to other consumers for the visibility
// window passed to Receive. If it is not deleted within that window it
// becomes deliverable again, possibly to a different consumer. Redrive to a
// dead-letter queue is a property of the queue's configuration, not a
// runtime call.
type Queue interface {
	// Send enqueues a new message.
	Send(ctx context.Context, body []byte) error

	// Receive returns up to max messages, hiding each from other consumers
	// for the visibility window.
	Receive(ctx context.Context, max int, visibility time.Duration) ([]Envelope, error)

	// Delete acknowledges a delivery, removing the message permanently.
	Delete(ctx context.Context, receiptHandle string) error
}
