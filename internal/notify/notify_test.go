package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureMessage(t *testing.T) {
	msg := FailureMessage("2020-01-01-pay rent.json")
	assert.Equal(t, "The Todo with the following ID couldn't be processed: 2020-01-01-pay rent", msg)
}

func TestMemoryPublisherRecords(t *testing.T) {
	p := NewMemoryPublisher()
	require.NoError(t, p.Publish(context.Background(), "one"))
	require.NoError(t, p.Publish(context.Background(), "two"))
	assert.Equal(t, []string{"one", "two"}, p.Messages())
}
