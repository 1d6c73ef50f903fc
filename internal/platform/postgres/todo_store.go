// Package postgres implements the persistence interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/todoworks/todo-pipeline/internal/domain"
	"github.com/todoworks/todo-pipeline/internal/store"
)

// TodoStore implements store.TodoStore using PostgreSQL.
type TodoStore struct {
	db store.DBTX
}

// NewTodoStore creates a new TodoStore.
func NewTodoStore(db store.DBTX) *TodoStore {
	return &TodoStore{db: db}
}

// CreateTodo inserts a new todo row.
func (s *TodoStore) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (id, title, description, due_date, status, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.DueDate,
		todo.Status,
		todo.UserEmail,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// GetTodo returns the todo with the given ID.
func (s *TodoStore) GetTodo(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	query := `
		SELECT id, title, description, due_date, status, user_email, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.DueDate,
		&todo.Status,
		&todo.UserEmail,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo %s: %w", id, err)
	}

	return &todo, nil
}

// ListTodos returns all todos, newest first.
func (s *TodoStore) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	query := `
		SELECT id, title, description, due_date, status, user_email, created_at, updated_at
		FROM todos
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var todos []domain.Todo
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.DueDate,
			&todo.Status,
			&todo.UserEmail,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo rows: %w", err)
	}

	return todos, nil
}

// DeleteTodo removes the todo with the given ID.
func (s *TodoStore) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTodoNotFound
	}

	return nil
}
