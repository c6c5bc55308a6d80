package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint", dayAt(9, 0), dayAt(10, 0), dayAt(11, 0), dayAt(12, 0), false},
		{"touching endpoints", dayAt(9, 0), dayAt(10, 0), dayAt(10, 0), dayAt(11, 0), false},
		{"partial overlap", dayAt(9, 0), dayAt(10, 0), dayAt(9, 30), dayAt(10, 30), true},
		{"contained", dayAt(9, 0), dayAt(12, 0), dayAt(10, 0), dayAt(11, 0), true},
		{"identical", dayAt(9, 0), dayAt(10, 0), dayAt(9, 0), dayAt(10, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestSlots_BasicWindow(t *testing.T) {
	w := DayWindow{IsWorkingDay: true, Open: dayAt(9, 0), Close: dayAt(10, 0)}

	slots := w.Slots(30*time.Minute, 30*time.Minute)
	require.Len(t, slots, 2)
	assert.Equal(t, dayAt(9, 0), slots[0])
	assert.Equal(t, dayAt(9, 30), slots[1])
}

func TestSlots_StopsWhenServiceRunsPastClose(t *testing.T) {
	w := DayWindow{IsWorkingDay: true, Open: dayAt(9, 0), Close: dayAt(10, 0)}

	// A 45-minute service stepping every 30 minutes only fits at 09:00:
	// 09:30 + 45m would run past close.
	slots := w.Slots(45*time.Minute, 30*time.Minute)
	require.Len(t, slots, 1)
	assert.Equal(t, dayAt(9, 0), slots[0])
}

func TestSlots_BreakCandidatesNeverGenerated(t *testing.T) {
	w := DayWindow{
		IsWorkingDay: true,
		Open:         dayAt(9, 0),
		Close:        dayAt(18, 0),
		BreakStart:   dayAt(13, 0),
		BreakEnd:     dayAt(14, 0),
	}

	slots := w.Slots(30*time.Minute, 30*time.Minute)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.False(t, Overlaps(s, s.Add(30*time.Minute), w.BreakStart, w.BreakEnd),
			"slot %s intersects the break", s.Format("15:04"))
	}

	// 12:30 ends exactly at break start and 14:00 starts exactly at break
	// end, so both survive; everything in between is gone.
	assert.Contains(t, slots, dayAt(12, 30))
	assert.Contains(t, slots, dayAt(14, 0))
	assert.NotContains(t, slots, dayAt(13, 0))
	assert.NotContains(t, slots, dayAt(13, 30))
}

func TestSlots_LongServiceStraddlingBreakExcluded(t *testing.T) {
	w := DayWindow{
		IsWorkingDay: true,
		Open:         dayAt(9, 0),
		Close:        dayAt(18, 0),
		BreakStart:   dayAt(13, 0),
		BreakEnd:     dayAt(14, 0),
	}

	// A 90-minute service starting 12:00 would run into the break.
	slots := w.Slots(90*time.Minute, 30*time.Minute)
	assert.NotContains(t, slots, dayAt(12, 0))
	assert.Contains(t, slots, dayAt(11, 30))
	assert.Contains(t, slots, dayAt(14, 0))
}

func TestSlots_ClosedDay(t *testing.T) {
	w := DayWindow{IsWorkingDay: false, Open: dayAt(9, 0), Close: dayAt(18, 0)}
	assert.Empty(t, w.Slots(30*time.Minute, 30*time.Minute))
}

func TestSlots_DurationExceedsWindow(t *testing.T) {
	w := DayWindow{IsWorkingDay: true, Open: dayAt(9, 0), Close: dayAt(10, 0)}
	assert.Empty(t, w.Slots(2*time.Hour, 30*time.Minute))
}

func TestSlots_InvalidArguments(t *testing.T) {
	w := DayWindow{IsWorkingDay: true, Open: dayAt(9, 0), Close: dayAt(18, 0)}
	assert.Empty(t, w.Slots(0, 30*time.Minute))
	assert.Empty(t, w.Slots(30*time.Minute, 0))
}
