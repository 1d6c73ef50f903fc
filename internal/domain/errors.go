// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyTitle is returned when a todo has no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyDueDate is returned when a todo has no due date.
	ErrEmptyDueDate = errors.New("due date cannot be empty")

	// ErrEmptyStatus is returned when a todo has no status.
	ErrEmptyStatus = errors.New("status cannot be empty")

	// ErrEmptyUserEmail is returned when a todo has no user email.
	ErrEmptyUserEmail = errors.New("user email cannot be empty")

	// ErrDueDateInPast is returned when a todo's due date is before the
	// current time at the moment of validation. The check is made against
	// processing time, not creation time, so the same todo can fail
	// repeatedly on redelivery.
	ErrDueDateInPast = errors.New("due date is in the past")

	// ErrInvalidDueDate is returned when a due date string cannot be
	// parsed as a timestamp.
	ErrInvalidDueDate = errors.New("invalid due date")
)
