// Package main implements the dead letter consumer. It drains the dead
// letter queue, archives each payload to the object store, and notifies
// operators on the alert topic.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/todoworks/todo-pipeline/internal/archive"
	"github.com/todoworks/todo-pipeline/internal/config"
	"github.com/todoworks/todo-pipeline/internal/consumer"
	"github.com/todoworks/todo-pipeline/internal/notify"
	"github.com/todoworks/todo-pipeline/internal/platform/awsclient"
	"github.com/todoworks/todo-pipeline/internal/platform/logger"
	"github.com/todoworks/todo-pipeline/internal/queue"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("dlq worker failed: %v", err)
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

	if cfg.Queue.DLQURL == "" {
		return errors.New("queue.dlq_url is required for the dlq worker")
	}
	if cfg.Archive.Bucket == "" {
		return errors.New("archive.bucket is required for the dlq worker")
	}
	if cfg.Notify.TopicARN == "" {
		return errors.New("notify.topic_arn is required for the dlq worker")
	}

	policy, err := consumer.ParseAckPolicy(cfg.Pipeline.AckPolicy)
	if err != nil {
		return fmt.Errorf("invalid ack policy: %w", err)
	}

	awsCfg, err := awsclient.Load(ctx, cfg.AWS)
	if err != nil {
		return err
	}

	dlq := queue.NewSQS(awsclient.NewSQS(awsCfg, cfg.AWS), cfg.Queue.DLQURL, cfg.Queue.WaitTime)
	store := archive.NewS3Store(awsclient.NewS3(awsCfg, cfg.AWS), cfg.Archive.Bucket)
	publisher := notify.NewSNSPublisher(awsclient.NewSNS(awsCfg, cfg.AWS), cfg.Notify.TopicARN)

	handler := consumer.NewDeadLetterHandler(store, publisher, consumer.DeadLetterConfig{
		Policy:         policy,
		ArchiveTimeout: cfg.Pipeline.ArchiveTimeout,
	}, logg)

	runner := consumer.NewRunner(dlq, handler, consumer.RunnerConfig{
		WorkerCount:  cfg.Pipeline.WorkerCount,
		MaxMessages:  cfg.Pipeline.MaxMessages,
		Visibility:   cfg.Pipeline.VisibilityTimeout,
		PollInterval: cfg.Pipeline.PollInterval,
	}, logg)

	logg.Info("dead letter consumer started",
		"queue_url", cfg.Queue.DLQURL,
		"bucket", cfg.Archive.Bucket,
		"ack_policy", string(policy))
	runner.Start()

	<-ctx.Done()
	logg.Info("shutting down")
	runner.Stop()
	return nil
}
