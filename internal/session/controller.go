// Package session orchestrates the lifecycle of feeding sessions for the
// one active baby context: start/stop with tap debouncing, phase
// transitions with fire-and-forget snapshot persistence, the 1 Hz live
// tick, and the next-breast suggestion.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/phase"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

// DebounceInterval is the minimum spacing between accepted start/stop
// taps. Switch and break toggles are deliberately not debounced.
const DebounceInterval = 500 * time.Millisecond

var (
	// ErrDebounced marks a start/stop call arriving too soon after the
	// previous one. Callers ignore it silently.
	ErrDebounced = errors.New("session: tap debounced")
	// ErrNoOpenSession marks a stop call with nothing to stop.
	ErrNoOpenSession = errors.New("session: no open session")
	// ErrSessionOpen marks a start call while a session is already open.
	ErrSessionOpen = errors.New("session: a session is already open")
)

// StopResult is returned to the caller when a session finalizes, so the
// follow-up prompts (volume, note, reminder) can react.
type StopResult struct {
	SessionID string            `json:"sessionId"`
	Duration  int               `json:"duration"`
	Mode      model.FeedingMode `json:"feedingMode"`
}

// Elapsed is the live display state recomputed on every tick.
type Elapsed struct {
	Feeding bool              `json:"feeding"`
	Mode    model.FeedingMode `json:"feedingMode"`
	Phase   phase.Kind        `json:"currentPhase"`
	OnBreak bool              `json:"onBreak"`
	Total   int               `json:"elapsed"`
	First   int               `json:"firstElapsed"`
	Second  int               `json:"secondElapsed"`
	Break   int               `json:"breakElapsed"`
}

// Controller owns the in-memory session state for the selected baby. All
// methods are safe for concurrent use; internally a single mutex restores
// the one-owner-at-a-time model the tracking logic assumes. In-memory
// state is always updated before persistence is issued, so rapid taps
// never observe stale state while a write is in flight.
type Controller struct {
	mu    sync.Mutex
	store store.Store

	babyID    string
	sessionID string
	machine   *phase.Machine

	lastTap       time.Time
	suggested     *phase.Kind
	lastWasBottle bool

	tickStop chan struct{}
	snapWG   sync.WaitGroup

	// OnTick, when set before use, receives the live view once per second
	// while a session is open.
	OnTick func(Elapsed)

	now      func() time.Time
	debounce time.Duration
}

// NewController creates a controller bound to the given store. No baby is
// selected until Start or RestoreForBaby.
func NewController(s store.Store) *Controller {
	return &Controller{
		store:    s,
		now:      timeutil.NowInstant,
		debounce: DebounceInterval,
	}
}

// BabyID returns the currently selected baby context ("" when none).
func (c *Controller) BabyID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.babyID
}

// Start opens a new feeding session for a baby. Double-taps within the
// debounce window return ErrDebounced; a still-open session returns
// ErrSessionOpen. Selecting a different baby than the current context
// first runs the ordered switch (persist outgoing, load incoming).
func (c *Controller) Start(ctx context.Context, babyID string, mode model.FeedingMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.babyID != babyID {
		if err := c.switchBabyLocked(ctx, babyID); err != nil {
			return err
		}
	}
	if c.machine != nil {
		return ErrSessionOpen
	}

	now := c.now()
	if now.Sub(c.lastTap) < c.debounce {
		return ErrDebounced
	}
	c.lastTap = now

	id := timeutil.NewID()
	if err := c.store.CreateSession(ctx, id, babyID, now, mode); err != nil {
		// Critical write: surface so the caller can tell the user the
		// session did not start.
		return err
	}

	c.sessionID = id
	c.machine = phase.NewMachine(mode, now)
	c.persistSnapshotLocked(false)
	c.startTickLocked()
	return nil
}

// Stop finalizes the open session and returns its totals. Break time is
// excluded from the reported duration.
func (c *Controller) Stop(ctx context.Context) (*StopResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.machine == nil {
		return nil, ErrNoOpenSession
	}

	now := c.now()
	if now.Sub(c.lastTap) < c.debounce {
		return nil, ErrDebounced
	}
	c.lastTap = now

	// Capture the pre-close state so a failed finalize can roll back to a
	// still-open machine instead of stranding an open row.
	rollback := c.machine.Snapshot(now, false)

	mode := c.machine.Mode()
	totals := c.machine.Close(now)
	duration := totals.First + totals.Second

	phasesBlob, err := phase.EncodeEntries(totals.Entries)
	if err != nil {
		log.Printf("Failed to encode phase history for session %s: %v", c.sessionID, err)
		phasesBlob = "[]"
	}

	result := &StopResult{SessionID: c.sessionID, Duration: duration, Mode: mode}

	if err := c.store.FinalizeSession(ctx, c.sessionID, now, duration,
		totals.First, totals.Second, totals.Break, phasesBlob); err != nil {
		// The row is still open. Restore the machine so memory matches
		// storage, keeping the session stoppable: there is never more than
		// one open session per baby, and the user can retry the stop.
		c.machine = phase.FromSnapshot(rollback)
		return nil, err
	}

	c.stopTickLocked()
	c.machine = nil
	c.sessionID = ""

	c.refreshSuggestionLocked(ctx)
	return result, nil
}

// SwitchSides flips the active breast. With no open session it is a
// silent no-op; the transition applies in memory first and the snapshot
// write is fire-and-forget.
func (c *Controller) SwitchSides(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine == nil {
		return
	}
	c.machine.SwitchSides(c.now())
	c.persistSnapshotLocked(false)
}

// ToggleBreak pauses or resumes the open session. No-op without one.
func (c *Controller) ToggleBreak(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine == nil {
		return
	}
	c.machine.ToggleBreak(c.now())
	c.persistSnapshotLocked(false)
}

// RestoreForBaby switches the active baby context: the outgoing baby's
// state is folded and persisted first (awaited), then the incoming baby's
// open session, if any, is restored from its snapshot.
func (c *Controller) RestoreForBaby(ctx context.Context, babyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.switchBabyLocked(ctx, babyID)
}

func (c *Controller) switchBabyLocked(ctx context.Context, babyID string) error {
	if c.machine != nil {
		// Persist outgoing state before anything is loaded. In-flight
		// async snapshot writes must land first, and the folded write is
		// awaited, so a fast switch back cannot read a stale blob.
		c.snapWG.Wait()
		blob, err := c.machine.Snapshot(c.now(), true).Encode()
		if err == nil {
			err = c.store.UpdatePhaseSnapshot(ctx, c.sessionID, blob)
		}
		if err != nil {
			log.Printf("Failed to persist outgoing snapshot for session %s: %v", c.sessionID, err)
		}
	}
	c.stopTickLocked()
	c.machine = nil
	c.sessionID = ""
	c.babyID = babyID

	if babyID == "" {
		c.suggested = nil
		c.lastWasBottle = false
		return nil
	}

	open, err := c.store.GetOpenSession(ctx, babyID)
	if err != nil {
		return err
	}
	if open != nil {
		c.sessionID = open.ID
		c.machine = phase.Restore(open.PhaseState, open.Mode, open.StartTime.UTC())
		c.startTickLocked()
	}
	c.refreshSuggestionLocked(ctx)
	return nil
}

// Close tears the controller down: the open session's folded snapshot is
// persisted and the tick stops. Used on shutdown.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.machine != nil {
		c.snapWG.Wait()
		blob, err := c.machine.Snapshot(c.now(), true).Encode()
		if err == nil {
			err = c.store.UpdatePhaseSnapshot(ctx, c.sessionID, blob)
		}
		if err != nil {
			log.Printf("Failed to persist snapshot on teardown for session %s: %v", c.sessionID, err)
		}
	}
	c.stopTickLocked()
	c.machine = nil
	c.sessionID = ""
}

// Elapsed returns the live display state at this instant.
func (c *Controller) Elapsed() Elapsed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Controller) elapsedLocked() Elapsed {
	if c.machine == nil {
		return Elapsed{Phase: phase.KindFirst, Mode: model.ModeBreast}
	}
	now := c.now()
	return Elapsed{
		Feeding: true,
		Mode:    c.machine.Mode(),
		Phase:   c.machine.Current(),
		OnBreak: c.machine.OnBreak(),
		Total:   c.machine.Elapsed(now),
		First:   c.machine.SideElapsed(phase.KindFirst, now),
		Second:  c.machine.SideElapsed(phase.KindSecond, now),
		Break:   c.machine.BreakElapsed(now),
	}
}

// persistSnapshotLocked encodes the current state under the lock and
// writes it out asynchronously. Losing one of these writes only costs
// recovery precision; the next transition overwrites it.
func (c *Controller) persistSnapshotLocked(fold bool) {
	blob, err := c.machine.Snapshot(c.now(), fold).Encode()
	if err != nil {
		log.Printf("Failed to encode snapshot for session %s: %v", c.sessionID, err)
		return
	}
	id := c.sessionID
	c.snapWG.Add(1)
	go func() {
		defer c.snapWG.Done()
		if err := c.store.UpdatePhaseSnapshot(context.Background(), id, blob); err != nil {
			log.Printf("Failed to persist snapshot for session %s: %v", id, err)
		}
	}()
}

func (c *Controller) startTickLocked() {
	c.stopTickLocked()
	stop := make(chan struct{})
	c.tickStop = stop
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				view := c.elapsedLocked()
				cb := c.OnTick
				c.mu.Unlock()
				if cb != nil {
					cb(view)
				}
			}
		}
	}()
}

func (c *Controller) stopTickLocked() {
	if c.tickStop != nil {
		close(c.tickStop)
		c.tickStop = nil
	}
}
