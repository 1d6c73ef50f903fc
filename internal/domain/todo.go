package domain

import (
	"time"

	"github.com/google/uuid"
)

// Known todo status values. The pipeline treats status as opaque text and
// never branches on it; these constants exist for the CRUD surface.
const (
	TodoStatusOpen = "open"
	TodoStatusDone = "done"
)

// TodoEvent is the payload of one task-change event as it travels through
// the queues. All fields except the due date are opaque to the pipeline.
type TodoEvent struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     DueDate `json:"dueDate"`
	Status      string  `json:"status"`
	UserEmail   string  `json:"userEmail"`
}

// Validate checks that all required fields are present. Description is
// optional. It does not compare the due date against the clock; that check
// belongs to the consumer because "in the past" depends on processing time.
func (e TodoEvent) Validate() error {
	if e.Title == "" {
		return ErrEmptyTitle
	}
	if e.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if e.Status == "" {
		return ErrEmptyStatus
	}
	if e.UserEmail == "" {
		return ErrEmptyUserEmail
	}
	return nil
}

// Todo is a stored todo row behind the HTTP API.
type Todo struct {
	ID          uuid.UUID `json:"todoId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	UserEmail   string    `json:"userEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTodo creates a new Todo with a generated ID and timestamps.
// Returns an error if validation fails.
func NewTodo(title, description string, dueDate time.Time, status, userEmail string) (*Todo, error) {
	now := time.Now().UTC()
	todo := &Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
		UserEmail:   userEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks that all required fields of the row are present.
func (t *Todo) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if t.Status == "" {
		return ErrEmptyStatus
	}
	if t.UserEmail == "" {
		return ErrEmptyUserEmail
	}
	return nil
}

// Event converts the stored row into the wire event published to the
// primary queue.
func (t *Todo) Event() TodoEvent {
	return TodoEvent{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     NewDueDate(t.DueDate),
		Status:      t.Status,
		UserEmail:   t.UserEmail,
	}
}
