// Package notify publishes operator alerts about events the pipeline gave
// up on.
package notify

import (
	"context"
	"strings"

	"github.com/todoworks/todo-pipeline/internal/archive"
)

// Publisher is a publish/subscribe fan-out with at least one external
// subscriber.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// FailureMessage builds the human-readable alert for an archived dead
// letter. The message references the archive key (without its extension),
// not the payload itself: if the archive write failed, this text is the
// only surviving trace of the event.
func FailureMessage(archiveKey string) string {
	id := strings.TrimSuffix(archiveKey, archive.KeyExtension)
	return "The Todo with the following ID couldn't be processed: " + id
}
