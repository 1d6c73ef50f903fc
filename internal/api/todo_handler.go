// Package api implements the HTTP surface of the todo service. The create
// path doubles as the event producer: every new todo is published to the
// primary queue for asynchronous validation.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/todoworks/todo-pipeline/internal/codec"
	"github.com/todoworks/todo-pipeline/internal/domain"
	"github.com/todoworks/todo-pipeline/internal/queue"
	"github.com/todoworks/todo-pipeline/internal/store"
)

// CreateTodoRequest represents the request body for creating a new todo.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	Status      string `json:"status" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
}

// TodoResponse represents the response data for a todo.
type TodoResponse struct {
	TodoID      string    `json:"todoId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	UserEmail   string    `json:"userEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoHandler handles todo-related HTTP requests.
type TodoHandler struct {
	todos     store.TodoStore
	events    queue.Queue
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTodoHandler creates a new TodoHandler publishing events to the given
// queue.
func NewTodoHandler(todos store.TodoStore, events queue.Queue, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todos:     todos,
		events:    events,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateTodo handles POST /todos requests. The row is saved first; the
// event publish is best effort because validation happens asynchronously
// on the pipeline, never at write time.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	dueDate, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid due date: "+req.DueDate)
		return
	}

	todo, err := domain.NewTodo(req.Title, req.Description, dueDate.Time(), req.Status, req.UserEmail)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.todos.CreateTodo(r.Context(), todo); err != nil {
		h.logger.Error("failed to create todo", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	h.publishEvent(r, todo)

	respondWithJSON(w, http.StatusCreated, todoToResponse(todo))
}

// publishEvent sends the todo-change event to the primary queue. Failures
// are logged, not surfaced: the row is already durable and the pipeline
// owns validation.
func (h *TodoHandler) publishEvent(r *http.Request, todo *domain.Todo) {
	body, err := codec.Encode(todo.Event())
	if err != nil {
		h.logger.Error("failed to encode todo event",
			"todo_id", todo.ID,
			"error", err)
		return
	}

	if err := h.events.Send(r.Context(), body); err != nil {
		h.logger.Error("failed to publish todo event",
			"todo_id", todo.ID,
			"error", err)
		return
	}

	h.logger.Info("todo event published", "todo_id", todo.ID)
}

// GetTodos handles GET /todos requests.
func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.ListTodos(r.Context())
	if err != nil {
		h.logger.Error("failed to list todos", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, todoToResponse(&todos[i]))
	}
	respondWithJSON(w, http.StatusOK, responses)
}

// GetTodoByID handles GET /todos/{todoId} requests.
func (h *TodoHandler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "todoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	todo, err := h.todos.GetTodo(r.Context(), id)
	if errors.Is(err, store.ErrTodoNotFound) {
		respondWithError(w, http.StatusNotFound, "Todo not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get todo", "todo_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}

	respondWithJSON(w, http.StatusOK, todoToResponse(todo))
}

// DeleteTodo handles DELETE /todos/{todoId} requests.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "todoId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	err = h.todos.DeleteTodo(r.Context(), id)
	if errors.Is(err, store.ErrTodoNotFound) {
		respondWithError(w, http.StatusNotFound, "Todo not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete todo", "todo_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// todoToResponse converts a domain.Todo to a TodoResponse.
func todoToResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		TodoID:      todo.ID.String(),
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Status:      todo.Status,
		UserEmail:   todo.UserEmail,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}
