package scheduling

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
)

// DayWindow is a stylist's resolved schedule for one calendar day, expressed
// in local time. A zero BreakStart/BreakEnd means no break.
type DayWindow struct {
	IsWorkingDay bool
	Open         time.Time
	Close        time.Time
	BreakStart   time.Time
	BreakEnd     time.Time
}

// HasBreak reports whether the window defines a break.
func (w DayWindow) HasBreak() bool {
	return !w.BreakStart.IsZero() && !w.BreakEnd.IsZero()
}

// WorkingHoursStore reads working-hours rules. The scheduling core never
// writes them; they are owned by the admin configuration screens.
type WorkingHoursStore interface {
	// RuleFor returns the rule for a stylist and weekday, or nil when no
	// rule exists (a closed day, not an error).
	RuleFor(ctx context.Context, stylistID uuid.UUID, day time.Weekday) (*models.WorkingHoursRule, error)
}

// Resolver turns working-hours rules into concrete local time windows.
type Resolver struct {
	rules WorkingHoursStore
	tz    *Normalizer
}

// NewResolver creates a working-hours resolver.
func NewResolver(rules WorkingHoursStore, tz *Normalizer) *Resolver {
	return &Resolver{rules: rules, tz: tz}
}

// Resolve returns the stylist's window for the calendar day containing date.
// No rule for that weekday, or IsWorkingDay=false, yields a closed window.
func (r *Resolver) Resolve(ctx context.Context, stylistID uuid.UUID, date time.Time) (DayWindow, error) {
	day := r.tz.DayStart(date)

	rule, err := r.rules.RuleFor(ctx, stylistID, day.Weekday())
	if err != nil {
		return DayWindow{}, fmt.Errorf("load working hours: %w", err)
	}
	if rule == nil || !rule.IsWorkingDay {
		return DayWindow{}, nil
	}

	open, err := atClock(day, rule.OpenTime)
	if err != nil {
		return DayWindow{}, fmt.Errorf("rule %s open time: %w", rule.ID, err)
	}
	closeAt, err := atClock(day, rule.CloseTime)
	if err != nil {
		return DayWindow{}, fmt.Errorf("rule %s close time: %w", rule.ID, err)
	}
	if !open.Before(closeAt) {
		return DayWindow{}, nil
	}

	window := DayWindow{IsWorkingDay: true, Open: open, Close: closeAt}

	if rule.HasBreak() {
		bs, err := atClock(day, *rule.BreakStart)
		if err != nil {
			return DayWindow{}, fmt.Errorf("rule %s break start: %w", rule.ID, err)
		}
		be, err := atClock(day, *rule.BreakEnd)
		if err != nil {
			return DayWindow{}, fmt.Errorf("rule %s break end: %w", rule.ID, err)
		}
		if bs.Before(be) {
			window.BreakStart = bs
			window.BreakEnd = be
		}
	}

	return window, nil
}

// atClock places an "HH:MM" wall-clock string on the given day.
func atClock(day time.Time, clock string) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
