package scheduling

import "time"

// Normalizer converts between the storage timezone (UTC) and the salon's
// configured display timezone. All persisted instants are UTC; all slot
// computation and display happens after explicit conversion through it.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer for the given location.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// Location returns the configured local timezone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ToUTC anchors a local wall-clock time to UTC. If t carries a different
// location its wall-clock fields are reinterpreted in the configured zone.
func (n *Normalizer) ToUTC(t time.Time) time.Time {
	if t.Location() != n.loc {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), n.loc)
	}
	return t.UTC()
}

// ToLocal converts a UTC instant to the configured local timezone.
func (n *Normalizer) ToLocal(t time.Time) time.Time {
	return t.In(n.loc)
}

// DayStart returns local midnight of the calendar day containing t.
func (n *Normalizer) DayStart(t time.Time) time.Time {
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc)
}

// SameDay reports whether a and b fall on the same local calendar day.
func (n *Normalizer) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(n.loc).Date()
	by, bm, bd := b.In(n.loc).Date()
	return ay == by && am == bm && ad == bd
}
