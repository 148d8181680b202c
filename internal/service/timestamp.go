package service

import (
	"fmt"
	"time"
)

// The calendar client sends a few fixed shapes: full RFC3339 from event
// drags, zone-less datetimes from the create dialog, and bare dates from
// all-day slots.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, s)
}
