package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	testCases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		// Hours are not wrapped at 24.
		{25*3600 + 5, "25:00:05"},
		{100 * 3600, "100:00:00"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatClock(tc.seconds))
	}
}

func TestFormatHuman(t *testing.T) {
	testCases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{59, "59s"},
		{60, "1m"},
		{119, "1m"}, // rounded down
		{3599, "59m"},
		{3600, "1h 0m"},
		{4980, "1h 23m"},
		{90000, "25h 0m"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatHuman(tc.seconds))
	}
}

func TestDurationSeconds(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, DurationSeconds(start, start.Add(90*time.Second)))
	assert.Equal(t, 0, DurationSeconds(start, start))
	// Sub-second remainders are truncated.
	assert.Equal(t, 1, DurationSeconds(start, start.Add(1900*time.Millisecond)))
	// Clamped, never negative.
	assert.Equal(t, 0, DurationSeconds(start, start.Add(-5*time.Second)))
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestNowInstantUTC(t *testing.T) {
	now := NowInstant()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond())
}
