package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// ISOLayout is the fixed-width UTC layout used for persisted timestamps.
// Fixed width keeps the text lexically sortable.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Time is a UTC instant truncated to milliseconds that encodes as ISOLayout.
type Time struct {
	time.Time
}

// At normalises t to the persisted precision.
func At(t time.Time) Time {
	return Time{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Time) String() string {
	return t.UTC().Format(ISOLayout)
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(b))
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", string(b), err)
	}
	*t = At(parsed)
	return nil
}

// MarshalJSON and UnmarshalJSON shadow the ones promoted from time.Time.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// Max returns the later of a and b.
func Max(a, b Time) Time {
	if b.After(a.Time) {
		return b
	}
	return a
}
