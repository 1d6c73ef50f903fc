// Package main implements the todo API server. It persists todos to
// Postgres and publishes a change event to the primary queue for every
// created todo.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/todoworks/todo-pipeline/internal/api"
	"github.com/todoworks/todo-pipeline/internal/config"
	"github.com/todoworks/todo-pipeline/internal/platform/awsclient"
	"github.com/todoworks/todo-pipeline/internal/platform/logger"
	"github.com/todoworks/todo-pipeline/internal/platform/postgres"
	"github.com/todoworks/todo-pipeline/internal/queue"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server)
	logg.Info("starting todo API server",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL == "" {
		return errors.New("database.url is required for the API server")
	}
	if cfg.Queue.PrimaryURL == "" {
		return errors.New("queue.primary_url is required for the API server")
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logg.Info("database ready")

	awsCfg, err := awsclient.Load(ctx, cfg.AWS)
	if err != nil {
		return err
	}
	events := queue.NewSQS(awsclient.NewSQS(awsCfg, cfg.AWS), cfg.Queue.PrimaryURL, cfg.Queue.WaitTime)

	handler := api.NewTodoHandler(postgres.NewTodoStore(db), events, logg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(handler, logg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
