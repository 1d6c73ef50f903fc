// Package archive persists failed event payloads in an object store under
// deterministically derived keys.
package archive

import (
	"context"

	"github.com/todoworks/todo-pipeline/internal/domain"
)

// Store is a key/value object store. Put overwrites any existing object at
// the key.
type Store interface {
	Put(ctx context.Context, key string, body []byte) error
}

// KeyFunc derives the archive key for a failed event. Key derivation is
// pluggable so a scheme with a unique event identifier can be substituted
// without touching consumer logic.
type KeyFunc func(ev domain.TodoEvent) string

// KeyExtension is the fixed extension appended to derived keys.
const KeyExtension = ".json"

// DefaultKey derives "<dueDate>-<title>.json" from the event, using the
// due date exactly as the producer wrote it. The key is not unique: two
// distinct events sharing due date and title collide, and the later write
// wins. That is a documented property of the scheme, not an accident.
func DefaultKey(ev domain.TodoEvent) string {
	return ev.DueDate.Raw() + "-" + ev.Title + KeyExtension
}
