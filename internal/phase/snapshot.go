package phase

import (
	"encoding/json"
	"time"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

// Snapshot is the serialized working state of an open session, persisted
// so an interrupted session restores exactly. Accumulators exclude the
// currently-open sub-phase; its elapsed time is derived live from
// PhaseStart.
type Snapshot struct {
	CurrentPhase Kind              `json:"currentPhase"`
	OnBreak      bool              `json:"onBreak"`
	Phases       []Entry           `json:"phases"`
	PhaseStart   time.Time         `json:"phaseStart"`
	FirstAcc     int               `json:"firstAcc"`
	SecondAcc    int               `json:"secondAcc"`
	BreakAcc     int               `json:"breakAcc"`
	FeedingMode  model.FeedingMode `json:"feedingMode"`
}

// Snapshot captures the machine state at the given instant. With fold
// set, the open sub-phase's elapsed seconds are moved into its
// accumulator and PhaseStart advances to the instant, so the persisted
// state is self-consistent even if the process dies immediately after.
// Folding mutates the machine and is required before handing the session
// context to another baby.
func (m *Machine) Snapshot(at time.Time, fold bool) Snapshot {
	if fold {
		d := m.liveDelta(at)
		switch {
		case m.onBreak:
			m.breakAcc += d
		case m.current == KindFirst:
			m.firstAcc += d
		default:
			m.secondAcc += d
		}
		m.phaseStart = at
	}
	phases := make([]Entry, len(m.entries))
	copy(phases, m.entries)
	return Snapshot{
		CurrentPhase: m.current,
		OnBreak:      m.onBreak,
		Phases:       phases,
		PhaseStart:   m.phaseStart,
		FirstAcc:     m.firstAcc,
		SecondAcc:    m.secondAcc,
		BreakAcc:     m.breakAcc,
		FeedingMode:  m.mode,
	}
}

// Encode renders the snapshot as the opaque blob the store persists.
func (s Snapshot) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSnapshot parses a stored snapshot blob.
func DecodeSnapshot(blob string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// FromSnapshot reconstructs a machine by direct field copy.
func FromSnapshot(s Snapshot) *Machine {
	mode := s.FeedingMode
	if mode == "" {
		mode = model.ModeBreast
	}
	current := s.CurrentPhase
	if current == "" || current == KindBreak {
		current = KindFirst
	}
	return &Machine{
		mode:       mode,
		current:    current,
		onBreak:    s.OnBreak,
		entries:    s.Phases,
		phaseStart: s.PhaseStart,
		firstAcc:   s.FirstAcc,
		secondAcc:  s.SecondAcc,
		breakAcc:   s.BreakAcc,
	}
}

// FromSessionStart is the legacy reconstruction for open sessions with no
// stored snapshot: the whole elapsed time counts as first-side feeding.
func FromSessionStart(mode model.FeedingMode, start time.Time) *Machine {
	return NewMachine(mode, start)
}

// Restore builds a machine for an open session, preferring the stored
// snapshot and falling back to the legacy reconstruction when the blob is
// missing or does not decode. It never fails.
func Restore(blob *string, mode model.FeedingMode, start time.Time) *Machine {
	if blob != nil && *blob != "" {
		if s, err := DecodeSnapshot(*blob); err == nil {
			return FromSnapshot(s)
		}
	}
	return FromSessionStart(mode, start)
}

// EncodeEntries renders a phase history as the opaque blob stored on
// finalized sessions.
func EncodeEntries(entries []Entry) (string, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeEntries parses a stored phase history blob.
func DecodeEntries(blob string) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
