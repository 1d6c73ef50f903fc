package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// dueDateLayouts lists the accepted textual forms of a due date, tried in
// order. Producers send either a bare calendar date or an RFC 3339
// timestamp (with or without fractional seconds).
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DueDate is a todo's due date as it travels on the wire. It keeps the
// producer's original string alongside the parsed instant: downstream key
// derivation concatenates the text exactly as it was sent, so reformatting
// it would change archive keys between deliveries of the same message.
type DueDate struct {
	t   time.Time
	raw string
}

// NewDueDate builds a DueDate from a time value. The raw form is the
// RFC 3339 rendering of the instant in UTC.
func NewDueDate(t time.Time) DueDate {
	return DueDate{t: t, raw: t.UTC().Format(time.RFC3339)}
}

// ParseDueDate parses the textual form of a due date, preserving the
// original string. Returns ErrInvalidDueDate (wrapped) if no accepted
// layout matches.
func ParseDueDate(s string) (DueDate, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DueDate{t: t, raw: s}, nil
		}
	}
	return DueDate{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
}

// Time returns the parsed instant.
func (d DueDate) Time() time.Time { return d.t }

// Raw returns the due date exactly as the producer wrote it.
func (d DueDate) Raw() string { return d.raw }

// IsZero reports whether the due date is unset.
func (d DueDate) IsZero() bool { return d.raw == "" }

// Before reports whether the due date is before the given instant.
func (d DueDate) Before(t time.Time) bool { return d.t.Before(t) }

// MarshalJSON writes the preserved raw string.
func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.raw)
}

// UnmarshalJSON parses a JSON string into a DueDate.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: due date must be a string", ErrInvalidDueDate)
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
