package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 10*time.Second, cfg.Queue.WaitTime)
	assert.Equal(t, 2, cfg.Pipeline.WorkerCount)
	assert.Equal(t, 10, cfg.Pipeline.MaxMessages)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.VisibilityTimeout)
	assert.Equal(t, time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, "on-notify", cfg.Pipeline.AckPolicy)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.ArchiveTimeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TODO_SERVER_PORT", "9090")
	t.Setenv("TODO_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TODO_QUEUE_PRIMARY_URL", "https://sqs.example.com/primary")
	t.Setenv("TODO_QUEUE_DLQ_URL", "https://sqs.example.com/dlq")
	t.Setenv("TODO_PIPELINE_WORKER_COUNT", "8")
	t.Setenv("TODO_PIPELINE_ACK_POLICY", "always")
	t.Setenv("TODO_PIPELINE_VISIBILITY_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "https://sqs.example.com/primary", cfg.Queue.PrimaryURL)
	assert.Equal(t, "https://sqs.example.com/dlq", cfg.Queue.DLQURL)
	assert.Equal(t, 8, cfg.Pipeline.WorkerCount)
	assert.Equal(t, "always", cfg.Pipeline.AckPolicy)
	assert.Equal(t, 45*time.Second, cfg.Pipeline.VisibilityTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"bad log level", "TODO_SERVER_LOG_LEVEL", "verbose"},
		{"bad ack policy", "TODO_PIPELINE_ACK_POLICY", "sometimes"},
		{"zero workers", "TODO_PIPELINE_WORKER_COUNT", "0"},
		{"oversized batch", "TODO_PIPELINE_MAX_MESSAGES", "100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
