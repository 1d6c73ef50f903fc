package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variables, e.g.
// TODO_QUEUE_PRIMARY_URL maps to the queue.primary_url key.
const envPrefix = "TODO"

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key with viper. Keys without a meaningful
// default get an empty value so AutomaticEnv can still resolve them during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")

	v.SetDefault("queue.primary_url", "")
	v.SetDefault("queue.dlq_url", "")
	v.SetDefault("queue.wait_time", "10s")

	v.SetDefault("archive.bucket", "")
	v.SetDefault("notify.topic_arn", "")

	v.SetDefault("pipeline.worker_count", 2)
	v.SetDefault("pipeline.max_messages", 10)
	v.SetDefault("pipeline.visibility_timeout", "30s")
	v.SetDefault("pipeline.poll_interval", "1s")
	v.SetDefault("pipeline.ack_policy", "on-notify")
	v.SetDefault("pipeline.archive_timeout", "30s")
}
