// Package main implements the validator consumer. It polls the primary
// queue, checks each todo event, and acknowledges only those that pass;
// failed events stay on the queue until the redrive policy moves them to
// the dead letter queue.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/todoworks/todo-pipeline/internal/config"
	"github.com/todoworks/todo-pipeline/internal/consumer"
	"github.com/todoworks/todo-pipeline/internal/platform/awsclient"
	"github.com/todoworks/todo-pipeline/internal/platform/logger"
	"github.com/todoworks/todo-pipeline/internal/queue"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("validator failed: %v", err)
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

	if cfg.Queue.PrimaryURL == "" {
		return errors.New("queue.primary_url is required for the validator")
	}

	awsCfg, err := awsclient.Load(ctx, cfg.AWS)
	if err != nil {
		return err
	}
	primary := queue.NewSQS(awsclient.NewSQS(awsCfg, cfg.AWS), cfg.Queue.PrimaryURL, cfg.Queue.WaitTime)

	runner := consumer.NewRunner(primary, consumer.NewValidator(logg), consumer.RunnerConfig{
		WorkerCount:  cfg.Pipeline.WorkerCount,
		MaxMessages:  cfg.Pipeline.MaxMessages,
		Visibility:   cfg.Pipeline.VisibilityTimeout,
		PollInterval: cfg.Pipeline.PollInterval,
	}, logg)

	logg.Info("validator consumer started",
		"queue_url", cfg.Queue.PrimaryURL,
		"workers", cfg.Pipeline.WorkerCount)
	runner.Start()

	<-ctx.Done()
	logg.Info("shutting down")
	runner.Stop()
	return nil
}
