package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return t0.Add(time.Duration(seconds) * time.Second)
}

// assertCoverage checks that the entry spans are contiguous, non-overlapping
// and cover [start, end] exactly.
func assertCoverage(t *testing.T, entries []Entry, start, end time.Time) {
	t.Helper()
	require.NotEmpty(t, entries)
	assert.Equal(t, start, entries[0].StartTime)
	for i, e := range entries {
		require.NotNil(t, e.EndTime, "entry %d left open", i)
		require.NotNil(t, e.Duration, "entry %d has no duration", i)
		assert.Equal(t, int(e.EndTime.Sub(e.StartTime)/time.Second), *e.Duration)
		if i > 0 {
			assert.Equal(t, *entries[i-1].EndTime, e.StartTime, "gap before entry %d", i)
		}
	}
	assert.Equal(t, end, *entries[len(entries)-1].EndTime)
}

func TestSwitchThenStop(t *testing.T) {
	// start -> 90s first -> switch -> 60s second -> stop
	m := NewMachine(model.ModeBreast, t0)
	m.SwitchSides(at(90))
	totals := m.Close(at(150))

	assert.Equal(t, 90, totals.First)
	assert.Equal(t, 60, totals.Second)
	assert.Equal(t, 0, totals.Break)

	require.Len(t, totals.Entries, 2)
	assert.Equal(t, KindFirst, totals.Entries[0].Type)
	assert.Equal(t, KindSecond, totals.Entries[1].Type)
	assertCoverage(t, totals.Entries, t0, at(150))
}

func TestBreakThenResumeSameSide(t *testing.T) {
	// 30s first -> 45s break -> 20s first -> stop
	m := NewMachine(model.ModeBreast, t0)
	m.ToggleBreak(at(30))
	m.ToggleBreak(at(75))
	totals := m.Close(at(95))

	assert.Equal(t, 50, totals.First)
	assert.Equal(t, 0, totals.Second)
	assert.Equal(t, 45, totals.Break)

	require.Len(t, totals.Entries, 3)
	assert.Equal(t, []Kind{KindFirst, KindBreak, KindFirst},
		[]Kind{totals.Entries[0].Type, totals.Entries[1].Type, totals.Entries[2].Type})
	assertCoverage(t, totals.Entries, t0, at(95))
}

func TestBottleSinglePhase(t *testing.T) {
	m := NewMachine(model.ModeBottle, t0)
	totals := m.Close(at(180))

	assert.Equal(t, 180, totals.First)
	assert.Equal(t, 0, totals.Second)
	assert.Equal(t, 0, totals.Break)
	require.Len(t, totals.Entries, 1)
	assert.Equal(t, KindFirst, totals.Entries[0].Type)
	assertCoverage(t, totals.Entries, t0, at(180))
}

func TestBreakFreezesElapsed(t *testing.T) {
	m := NewMachine(model.ModeBreast, t0)

	// T seconds of feeding, then a break of N seconds, then M more.
	const T, N, M = 120, 300, 40
	assert.Equal(t, T, m.Elapsed(at(T)))

	m.ToggleBreak(at(T))
	// Frozen for the whole break.
	assert.Equal(t, T, m.Elapsed(at(T+1)))
	assert.Equal(t, T, m.Elapsed(at(T+N)))
	assert.Equal(t, N, m.BreakElapsed(at(T+N)))

	m.ToggleBreak(at(T + N))
	assert.Equal(t, T+M, m.Elapsed(at(T+N+M)))
	assert.Equal(t, N, m.BreakElapsed(at(T+N+M)))
}

func TestSwitchDuringBreak(t *testing.T) {
	m := NewMachine(model.ModeBreast, t0)
	m.ToggleBreak(at(60))
	entriesBefore := len(m.entries)

	// Flipping the side mid-break changes only which side resumes.
	m.SwitchSides(at(70))
	assert.Equal(t, KindSecond, m.Current())
	assert.True(t, m.OnBreak())
	assert.Len(t, m.entries, entriesBefore, "no new entry until the break ends")
	assert.Equal(t, 0, m.breakAcc, "break stays open, nothing credited yet")

	// Flipping twice lands back on the original side.
	m.SwitchSides(at(75))
	assert.Equal(t, KindFirst, m.Current())

	m.SwitchSides(at(80))
	m.ToggleBreak(at(90)) // resume on second
	assert.Equal(t, KindSecond, m.Current())
	assert.Equal(t, 30, m.breakAcc)

	totals := m.Close(at(100))
	assert.Equal(t, 60, totals.First)
	assert.Equal(t, 10, totals.Second)
	assert.Equal(t, 30, totals.Break)
}

func TestSideElapsedLiveDelta(t *testing.T) {
	m := NewMachine(model.ModeBreast, t0)
	m.SwitchSides(at(50))

	assert.Equal(t, 50, m.SideElapsed(KindFirst, at(80)))
	assert.Equal(t, 30, m.SideElapsed(KindSecond, at(80)))
	assert.Equal(t, 80, m.Elapsed(at(80)))

	m.ToggleBreak(at(100))
	// Both sides frozen during the break.
	assert.Equal(t, 50, m.SideElapsed(KindFirst, at(130)))
	assert.Equal(t, 50, m.SideElapsed(KindSecond, at(130)))
	assert.Equal(t, 30, m.BreakElapsed(at(130)))
}

func TestMultipleSwitchesCoverSession(t *testing.T) {
	m := NewMachine(model.ModeBreast, t0)
	m.SwitchSides(at(60))
	m.SwitchSides(at(150))
	m.ToggleBreak(at(200))
	m.ToggleBreak(at(260))
	m.SwitchSides(at(300))
	totals := m.Close(at(330))

	assert.Equal(t, 60+50+40, totals.First) // 0-60, 150-200, 260-300
	assert.Equal(t, 90+30, totals.Second)   // 60-150, 300-330
	assert.Equal(t, 60, totals.Break)       // 200-260
	assertCoverage(t, totals.Entries, t0, at(330))

	sum := 0
	for _, e := range totals.Entries {
		sum += *e.Duration
	}
	assert.Equal(t, 330, sum)
}
