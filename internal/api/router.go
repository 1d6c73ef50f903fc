package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the application router with all routes and standard
// middleware.
func NewRouter(handler *TodoHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/todos", handler.CreateTodo)
	r.Get("/todos", handler.GetTodos)
	r.Get("/todos/{todoId}", handler.GetTodoByID)
	r.Delete("/todos/{todoId}", handler.DeleteTodo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
