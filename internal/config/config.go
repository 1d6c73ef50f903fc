// Package config loads application configuration from the environment.
package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ServerConfig contains the HTTP API settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the todo store settings. The URL is only
// required by the API server; the queue consumers never touch the
// database.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AWSConfig contains settings shared by the SQS, S3, and SNS clients.
// Endpoint overrides the service endpoint for local stacks; empty means
// the real AWS endpoints.
type AWSConfig struct {
	Region   string `mapstructure:"region" validate:"required"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// QueueConfig identifies the two queues. Their redrive relationship
// (primary -> DLQ after maxReceiveCount deliveries) is configured on the
// queue infrastructure, not here.
type QueueConfig struct {
	PrimaryURL string `mapstructure:"primary_url"`
	DLQURL     string `mapstructure:"dlq_url"`
	// WaitTime enables long polling on receive.
	WaitTime time.Duration `mapstructure:"wait_time" validate:"min=0"`
}

// ArchiveConfig identifies the object store bucket for dead letters.
type ArchiveConfig struct {
	Bucket string `mapstructure:"bucket"`
}

// NotifyConfig identifies the operator notification topic.
type NotifyConfig struct {
	TopicARN string `mapstructure:"topic_arn"`
}

// PipelineConfig tunes the consumers.
type PipelineConfig struct {
	WorkerCount       int           `mapstructure:"worker_count" validate:"required,gt=0"`
	MaxMessages       int           `mapstructure:"max_messages" validate:"required,gt=0,lte=10"`
	VisibilityTimeout time.Duration `mapstructure:"visibility_timeout" validate:"required"`
	PollInterval      time.Duration `mapstructure:"poll_interval" validate:"required"`
	AckPolicy         string        `mapstructure:"ack_policy" validate:"required,oneof=always on-notify on-success"`
	ArchiveTimeout    time.Duration `mapstructure:"archive_timeout" validate:"required"`
}
