package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todoworks/todo-pipeline/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		l := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		assert.NotNil(t, l, "level %s", level)
	}
}
