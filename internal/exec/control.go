package exec

import (
	"main/internal/errors"
	"main/internal/schema"
)

// AuditEntry records one operator halt or resume action against a venue.
type AuditEntry struct {
	VenueID  schema.VenueID
	Halted   bool
	Operator string
	Reason   string
	TsMs     int64
}

// Halt refuses new admissions for a venue and moves every live, non-terminal
// hedge touching it into Unwinding, per the documented operator control
// surface. It returns the intent IDs of hedges nudged into unwinding.
func (e *Engine) Halt(venue schema.VenueID, operator, reason string, nowMs int64) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.halted == nil {
		e.halted = make(map[schema.VenueID]bool)
	}
	e.halted[venue] = true
	e.audit = append(e.audit, AuditEntry{VenueID: venue, Halted: true, Operator: operator, Reason: reason, TsMs: nowMs})

	var affected []uint64
	for intentID, h := range e.hedges {
		if h.State.Terminal() || h.State == StateUnwinding {
			continue
		}
		if h.primaryVenue != venue && h.hedgeVenue != venue {
			continue
		}
		h.State = StateUnwinding
		affected = append(affected, intentID)
	}
	return affected
}

// Resume clears a venue's halt flag, but only if the caller reports the
// venue currently healthy; otherwise it refuses and leaves the venue
// halted.
func (e *Engine) Resume(venue schema.VenueID, operator, reason string, venueHealthy bool, nowMs int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !venueHealthy {
		return errors.Newf(errors.ConfigError, "exec: refusing resume for unhealthy venue %d", venue)
	}
	if e.halted == nil {
		e.halted = make(map[schema.VenueID]bool)
	}
	e.halted[venue] = false
	e.audit = append(e.audit, AuditEntry{VenueID: venue, Halted: false, Operator: operator, Reason: reason, TsMs: nowMs})
	return nil
}

// Halted reports whether a venue currently carries an operator halt.
func (e *Engine) Halted(venue schema.VenueID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.halted[venue]
}

// AuditTrail returns a copy of every halt/resume action recorded so far,
// oldest first.
func (e *Engine) AuditTrail() []AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]AuditEntry, len(e.audit))
	copy(out, e.audit)
	return out
}
