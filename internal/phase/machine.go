// Package phase tracks the sub-phase history of an open feeding session:
// which side is active, whether the session is paused, and how many
// seconds have accumulated per category. It is purely in-memory; callers
// supply every instant, so the package has no clock of its own.
package phase

import (
	"time"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

// Kind identifies a sub-phase category.
type Kind string

const (
	KindFirst  Kind = "first"
	KindSecond Kind = "second"
	KindBreak  Kind = "break"
)

// Opposite returns the other breast side. Opposite of break is break.
func (k Kind) Opposite() Kind {
	switch k {
	case KindFirst:
		return KindSecond
	case KindSecond:
		return KindFirst
	}
	return k
}

// Entry is one contiguous sub-phase within a session. EndTime and
// Duration are nil while the entry is still the active sub-phase.
type Entry struct {
	Type      Kind       `json:"type"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int       `json:"duration,omitempty"` // seconds
}

// Totals is the outcome of closing a machine.
type Totals struct {
	First   int
	Second  int
	Break   int
	Entries []Entry
}

// Machine is the in-memory phase state of one open session. It is not
// safe for concurrent use; the session controller serializes access.
type Machine struct {
	mode       model.FeedingMode
	current    Kind // first or second, never break
	onBreak    bool
	entries    []Entry
	phaseStart time.Time
	firstAcc   int
	secondAcc  int
	breakAcc   int
}

// NewMachine starts tracking a session that began at start. The first
// entry is always the first side; bottle sessions keep it for their
// whole lifetime.
func NewMachine(mode model.FeedingMode, start time.Time) *Machine {
	return &Machine{
		mode:       mode,
		current:    KindFirst,
		entries:    []Entry{{Type: KindFirst, StartTime: start}},
		phaseStart: start,
	}
}

func (m *Machine) Mode() model.FeedingMode { return m.mode }
func (m *Machine) Current() Kind           { return m.current }
func (m *Machine) OnBreak() bool           { return m.onBreak }

// closeOpenEntry stamps the active entry and credits its duration to the
// matching accumulator.
func (m *Machine) closeOpenEntry(at time.Time) {
	if len(m.entries) == 0 {
		return
	}
	last := &m.entries[len(m.entries)-1]
	d := timeutil.DurationSeconds(m.phaseStart, at)
	end := at
	last.EndTime = &end
	last.Duration = &d

	switch {
	case m.onBreak:
		m.breakAcc += d
	case m.current == KindFirst:
		m.firstAcc += d
	default:
		m.secondAcc += d
	}
}

func (m *Machine) openEntry(k Kind, at time.Time) {
	m.entries = append(m.entries, Entry{Type: k, StartTime: at})
	m.phaseStart = at
}

// SwitchSides flips the active breast at the given instant.
//
// During a break only the side label flips: the break entry stays open
// and feeding resumes on the newly selected side once the break ends.
// While feeding, the current entry is closed and a new one opened.
func (m *Machine) SwitchSides(at time.Time) {
	next := m.current.Opposite()
	if m.onBreak {
		m.current = next
		return
	}
	m.closeOpenEntry(at)
	m.current = next
	m.openEntry(next, at)
}

// ToggleBreak enters or exits the break sub-phase at the given instant.
func (m *Machine) ToggleBreak(at time.Time) {
	m.closeOpenEntry(at)
	if m.onBreak {
		m.onBreak = false
		m.openEntry(m.current, at)
	} else {
		m.onBreak = true
		m.openEntry(KindBreak, at)
	}
}

// Close ends the session at the given instant, crediting the final open
// entry, and returns the per-category totals with the full history.
// Break seconds are reported separately and never count as feeding time.
func (m *Machine) Close(at time.Time) Totals {
	m.closeOpenEntry(at)
	return Totals{
		First:   m.firstAcc,
		Second:  m.secondAcc,
		Break:   m.breakAcc,
		Entries: m.entries,
	}
}

// liveDelta is the not-yet-credited seconds of the open sub-phase.
func (m *Machine) liveDelta(at time.Time) int {
	return timeutil.DurationSeconds(m.phaseStart, at)
}

// Elapsed returns total feeding seconds at the given instant. Break time
// is excluded, so the value is frozen while on break.
func (m *Machine) Elapsed(at time.Time) int {
	total := m.firstAcc + m.secondAcc
	if !m.onBreak {
		total += m.liveDelta(at)
	}
	return total
}

// SideElapsed returns the accumulated seconds for one breast side,
// including the live delta when that side is actively feeding.
func (m *Machine) SideElapsed(k Kind, at time.Time) int {
	acc := m.firstAcc
	if k == KindSecond {
		acc = m.secondAcc
	}
	if !m.onBreak && m.current == k {
		acc += m.liveDelta(at)
	}
	return acc
}

// BreakElapsed returns accumulated break seconds, growing live while the
// session is paused.
func (m *Machine) BreakElapsed(at time.Time) int {
	if m.onBreak {
		return m.breakAcc + m.liveDelta(at)
	}
	return m.breakAcc
}
