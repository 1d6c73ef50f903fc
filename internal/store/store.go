// Package store defines persistence interfaces for the todo API.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/todoworks/todo-pipeline/internal/domain"
)

// ErrTodoNotFound is returned when a todo does not exist.
var ErrTodoNotFound = errors.New("todo not found")

// DBTX is the common interface satisfied by *sql.DB and *sql.Tx, allowing
// stores to run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TodoStore persists todos behind the HTTP API.
type TodoStore interface {
	// CreateTodo inserts a new todo.
	CreateTodo(ctx context.Context, todo *domain.Todo) error

	// GetTodo returns the todo with the given ID, or ErrTodoNotFound.
	GetTodo(ctx context.Context, id uuid.UUID) (*domain.Todo, error)

	// ListTodos returns all todos, newest first.
	ListTodos(ctx context.Context) ([]domain.Todo, error)

	// DeleteTodo removes the todo with the given ID, or returns
	// ErrTodoNotFound.
	DeleteTodo(ctx context.Context, id uuid.UUID) error
}
