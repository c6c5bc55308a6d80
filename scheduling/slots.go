package scheduling

import "time"

// DefaultStepMinutes is the slot granularity used when none is configured.
const DefaultStepMinutes = 30

// Slots enumerates candidate local start times within the window: starting at
// Open, stepping by step, stopping once start+duration would run past Close.
// Candidates whose [start, start+duration) interval intersects the break are
// never generated. A closed day, or a service longer than the whole window,
// yields no candidates.
func (w DayWindow) Slots(duration, step time.Duration) []time.Time {
	if !w.IsWorkingDay || duration <= 0 || step <= 0 {
		return nil
	}

	var slots []time.Time
	for cursor := w.Open; !cursor.Add(duration).After(w.Close); cursor = cursor.Add(step) {
		if w.HasBreak() && Overlaps(cursor, cursor.Add(duration), w.BreakStart, w.BreakEnd) {
			continue
		}
		slots = append(slots, cursor)
	}
	return slots
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap: an appointment
// ending at 10:00 does not conflict with one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
