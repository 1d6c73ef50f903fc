package consumer

import "fmt"

// AckPolicy decides when the dead-letter handler acknowledges a message
// relative to the outcome of its archive and notify steps.
type AckPolicy string

const (
	// AckAlways acknowledges regardless of step outcomes. An archive
	// failure followed by a successful ack loses the payload permanently,
	// with only the notification (which carries the key, not the data)
	// surviving.
	AckAlways AckPolicy = "always"

	// AckOnNotify acknowledges unless the notification publish failed.
	// Archive failures stay non-blocking, but the alert is the last
	// surviving signal of a lost payload, so failing to send it keeps the
	// message on the DLQ for another attempt.
	AckOnNotify AckPolicy = "on-notify"

	// AckOnSuccess acknowledges only when both archive and notify
	// succeeded.
	AckOnSuccess AckPolicy = "on-success"
)

// ParseAckPolicy validates a policy string from configuration.
func ParseAckPolicy(s string) (AckPolicy, error) {
	switch AckPolicy(s) {
	case AckAlways, AckOnNotify, AckOnSuccess:
		return AckPolicy(s), nil
	}
	return "", fmt.Errorf("unknown ack policy %q", s)
}
