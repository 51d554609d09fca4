package session

import (
	"context"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/phase"
)

// Suggestion reports which breast to offer next, derived from the last
// closed session. side is nil when there is no basis for a suggestion;
// lastWasBottle distinguishes "last feed was a bottle" from "no prior
// data" so the UI can render a different hint.
func (c *Controller) Suggestion() (side *phase.Kind, lastWasBottle bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggested, c.lastWasBottle
}

// refreshSuggestionLocked recomputes the suggestion from the most recent
// finalized session. Any lookup or decode problem silently yields no
// suggestion; stale history is not worth surfacing an error for.
func (c *Controller) refreshSuggestionLocked(ctx context.Context) {
	c.suggested = nil
	c.lastWasBottle = false
	if c.babyID == "" {
		return
	}

	last, err := c.store.GetLastClosedSession(ctx, c.babyID)
	if err != nil || last == nil {
		return
	}
	if last.Mode == model.ModeBottle {
		c.lastWasBottle = true
		return
	}
	if last.Phases == nil {
		return
	}
	entries, err := phase.DecodeEntries(*last.Phases)
	if err != nil {
		return
	}
	// The suggestion is the opposite of the last side actually fed from,
	// scanning past any trailing break entries.
	for i := len(entries) - 1; i >= 0; i-- {
		if t := entries[i].Type; t == phase.KindFirst || t == phase.KindSecond {
			opposite := t.Opposite()
			c.suggested = &opposite
			return
		}
	}
}
