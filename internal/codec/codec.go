// Package codec serializes todo events to and from the queue wire format.
//
// The wire format is a UTF-8 JSON document carrying the event fields. The
// codec does not inspect delivery metadata; that belongs to the queue.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/todoworks/todo-pipeline/internal/domain"
)

// EncodingError is returned by Encode when the event cannot be serialized,
// typically because a required field is absent.
type EncodingError struct {
	Reason error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode todo event: %v", e.Reason)
}

func (e *EncodingError) Unwrap() error { return e.Reason }

// DecodingError is returned by Decode when the payload is malformed or a
// required field is missing or of the wrong type. A payload that fails to
// decode can never start succeeding on redelivery: it is a poison message
// and will exhaust its retry budget like any other failed validation.
type DecodingError struct {
	Reason error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode todo event: %v", e.Reason)
}

func (e *DecodingError) Unwrap() error { return e.Reason }

// Encode serializes the event for the queue. Returns an *EncodingError if
// a required field is absent.
func Encode(ev domain.TodoEvent) ([]byte, error) {
	if err := ev.Validate(); err != nil {
		return nil, &EncodingError{Reason: err}
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return nil, &EncodingError{Reason: err}
	}

	return body, nil
}

// Decode parses a queue payload into a TodoEvent. Returns a *DecodingError
// if the document is malformed, the due date is unparseable, or a required
// field is missing.
func Decode(body []byte) (domain.TodoEvent, error) {
	var ev domain.TodoEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return domain.TodoEvent{}, &DecodingError{Reason: err}
	}

	if err := ev.Validate(); err != nil {
		return domain.TodoEvent{}, &DecodingError{Reason: err}
	}

	return ev, nil
}
