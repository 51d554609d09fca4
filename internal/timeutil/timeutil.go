// Package timeutil provides the shared time arithmetic, duration
// formatting and id generation used by the tracking core.
package timeutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NowInstant returns the current wall-clock instant in UTC, truncated to
// second resolution. All persisted timestamps go through this.
func NowInstant() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// DurationSeconds returns the whole seconds between start and end.
// Callers guarantee end >= start; the result is clamped at zero so a
// clock hiccup can never produce a negative accumulator.
func DurationSeconds(start, end time.Time) int {
	d := int(end.Sub(start) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// FormatClock renders seconds as zero-padded HH:MM:SS. Hours are not
// wrapped at 24, so a 25-hour span renders as "25:00:00".
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHuman renders seconds compactly: "45s", "12m" or "1h 23m".
func FormatHuman(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// NewID returns an opaque unique identifier: a base-36 millisecond
// timestamp prefix (keeps ids roughly insert-ordered) followed by a UUID.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()
}
