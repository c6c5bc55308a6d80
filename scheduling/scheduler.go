package scheduling

import (
	"context"
	"fmt"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
)

// CancellationCutoff is how close to the appointment start a customer may
// still cancel. It is advisory at this layer: the customer-facing controller
// checks it before calling Cancel, while staff cancellations bypass it.
const CancellationCutoff = 2 * time.Hour

// Scheduler owns the appointment lifecycle: availability queries, creation,
// rescheduling, cancellation and the remaining status transitions. All
// conflict checks happen in UTC; all returned slot times are local.
type Scheduler struct {
	store AppointmentStore
	hours *Resolver
	tz    *Normalizer
	clock Clock
	step  time.Duration
}

// NewScheduler wires the scheduler. stepMinutes is the slot granularity;
// zero or negative falls back to DefaultStepMinutes.
func NewScheduler(store AppointmentStore, rules WorkingHoursStore, tz *Normalizer, clock Clock, stepMinutes int) *Scheduler {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		store: store,
		hours: NewResolver(rules, tz),
		tz:    tz,
		clock: clock,
		step:  time.Duration(stepMinutes) * time.Minute,
	}
}

// CreateRequest carries everything needed to book an appointment. StartAt
// must be UTC; EndAt is computed from the duration.
type CreateRequest struct {
	SalonID         uuid.UUID
	BranchID        uuid.UUID
	StylistID       uuid.UUID
	CustomerID      uuid.UUID
	ServiceID       uuid.UUID
	StartAt         time.Time
	DurationMinutes int
	Price           float64
	Discount        float64
	Notes           string
}

// AvailableSlots returns the bookable local start times for a stylist on the
// calendar day containing date: working hours minus breaks, minus candidates
// overlapping an occupying appointment, minus already-elapsed times when the
// day is today. Ascending, no duplicates.
func (s *Scheduler) AvailableSlots(ctx context.Context, stylistID uuid.UUID, date time.Time, durationMinutes int) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration %d minutes: %w", durationMinutes, ErrInvalidInterval)
	}

	window, err := s.hours.Resolve(ctx, stylistID, date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	now := s.clock.Now()
	today := s.tz.SameDay(date, now)

	var available []time.Time
	for _, start := range window.Slots(duration, s.step) {
		startUTC := s.tz.ToUTC(start)
		if today && !startUTC.After(now) {
			continue
		}
		conflict, err := s.store.HasOverlap(ctx, stylistID, startUTC, startUTC.Add(duration), uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("check slot %s: %w", start.Format("15:04"), err)
		}
		if !conflict {
			available = append(available, start)
		}
	}
	return available, nil
}

// HasConflict reports whether [startUTC, endUTC) overlaps an occupying
// appointment for the stylist. Exposed for validation-only callers such as
// the staff override screen. excludeID may be uuid.Nil.
func (s *Scheduler) HasConflict(ctx context.Context, stylistID uuid.UUID, startUTC, endUTC time.Time, excludeID uuid.UUID) (bool, error) {
	if !startUTC.Before(endUTC) {
		return false, ErrInvalidInterval
	}
	return s.store.HasOverlap(ctx, stylistID, startUTC.UTC(), endUTC.UTC(), excludeID)
}

// Create books a new appointment with status pending. The overlap check and
// insert run as one atomic unit under the stylist lock, so two concurrent
// requests for overlapping intervals cannot both succeed.
func (s *Scheduler) Create(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration %d minutes: %w", req.DurationMinutes, ErrInvalidInterval)
	}

	start := req.StartAt.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	appt := &models.Appointment{
		ID:         uuid.New(),
		SalonID:    req.SalonID,
		BranchID:   req.BranchID,
		StylistID:  req.StylistID,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		StartAt:    start,
		EndAt:      end,
		Status:     models.StatusPending,
		Price:      req.Price,
		Discount:   req.Discount,
		Notes:      req.Notes,
	}

	err := s.store.WithStylistLock(ctx, req.StylistID, func(tx AppointmentStore) error {
		conflict, err := tx.HasOverlap(ctx, req.StylistID, start, end, uuid.Nil)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if conflict {
			return ErrSchedulingConflict
		}
		return tx.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Reschedule moves an appointment to a new UTC start time, keeping its id,
// status and duration. The appointment's own current interval is excluded
// from the conflict check, so moving it onto its original time succeeds.
func (s *Scheduler) Reschedule(ctx context.Context, id uuid.UUID, newStartUTC time.Time) (*models.Appointment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var appt *models.Appointment
	err = s.store.WithStylistLock(ctx, current.StylistID, func(tx AppointmentStore) error {
		appt, err = tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		switch appt.Status {
		case models.StatusPending, models.StatusConfirmed:
			// reschedulable
		case models.StatusInProgress, models.StatusCompleted, models.StatusCancelled, models.StatusNoShow:
			return fmt.Errorf("reschedule %s appointment: %w", appt.Status, ErrInvalidTransition)
		default:
			return fmt.Errorf("reschedule %s appointment: %w", appt.Status, ErrInvalidTransition)
		}

		start := newStartUTC.UTC()
		end := start.Add(appt.Duration())

		conflict, err := tx.HasOverlap(ctx, appt.StylistID, start, end, appt.ID)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if conflict {
			return ErrSchedulingConflict
		}

		appt.StartAt = start
		appt.EndAt = end
		return tx.Update(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks an appointment cancelled and records why, when and by whom.
// Cancelling an already-cancelled appointment is a no-op that returns the
// current record, preserving the original CancelledAt and reason. The
// cancellation cutoff is deliberately not enforced here; see
// WithinCancellationCutoff.
func (s *Scheduler) Cancel(ctx context.Context, id uuid.UUID, reason, actor string) (*models.Appointment, error) {
	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status == models.StatusCancelled {
		return appt, nil
	}
	if !appt.Status.CanTransitionTo(models.StatusCancelled) {
		return nil, fmt.Errorf("cancel %s appointment: %w", appt.Status, ErrInvalidTransition)
	}

	now := s.clock.Now().UTC()
	appt.Status = models.StatusCancelled
	appt.CancelReason = reason
	appt.CancelledAt = &now
	appt.CancelledBy = actor

	if err := s.store.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Confirm moves a pending appointment to confirmed.
func (s *Scheduler) Confirm(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.transition(ctx, id, models.StatusConfirmed)
}

// Start moves a confirmed appointment to in progress.
func (s *Scheduler) Start(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.transition(ctx, id, models.StatusInProgress)
}

// Complete moves an in-progress appointment to completed.
func (s *Scheduler) Complete(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.transition(ctx, id, models.StatusCompleted)
}

// MarkNoShow marks a pending or confirmed appointment as a no-show.
func (s *Scheduler) MarkNoShow(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.transition(ctx, id, models.StatusNoShow)
}

func (s *Scheduler) transition(ctx context.Context, id uuid.UUID, next models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", appt.Status, next, ErrInvalidTransition)
	}
	appt.Status = next
	if err := s.store.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// WithinCancellationCutoff reports whether the appointment starts too soon
// for a customer-initiated cancellation. Staff callers skip this check.
func (s *Scheduler) WithinCancellationCutoff(appt *models.Appointment) bool {
	return appt.StartAt.Sub(s.clock.Now()) <= CancellationCutoff
}

// Get loads one appointment by id.
func (s *Scheduler) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.store.GetByID(ctx, id)
}

// DaySchedule returns a stylist's appointments intersecting the local
// calendar day containing date, ordered by start time. Backs the stylist
// schedule view.
func (s *Scheduler) DaySchedule(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	from := s.tz.ToUTC(s.tz.DayStart(date))
	return s.store.ListByStylistAndRange(ctx, stylistID, from, from.Add(24*time.Hour))
}

// Normalizer exposes the configured timezone converter so controllers can
// translate request times the same way the core does.
func (s *Scheduler) Normalizer() *Normalizer {
	return s.tz
}
