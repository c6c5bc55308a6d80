package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookingDay is Monday 2026-03-02; the fixture clock starts the day before so
// today-filtering stays out of the way unless a test moves the clock.
var bookingDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memStore
	clock     *fakeClock
	sched     *Scheduler
	stylistID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	clock := &fakeClock{now: bookingDay.AddDate(0, 0, -1).Add(12 * time.Hour)}
	stylistID := uuid.New()

	for day := time.Monday; day <= time.Saturday; day++ {
		store.addRule(models.WorkingHoursRule{
			StylistID:    stylistID,
			DayOfWeek:    day,
			OpenTime:     "09:00",
			CloseTime:    "17:00",
			IsWorkingDay: true,
		})
	}

	sched := NewScheduler(store, store, NewNormalizer(time.UTC), clock, 30)
	return &fixture{store: store, clock: clock, sched: sched, stylistID: stylistID}
}

func (f *fixture) createAt(t *testing.T, hour, min, durationMin int) *models.Appointment {
	t.Helper()
	appt, err := f.sched.Create(context.Background(), CreateRequest{
		SalonID:         uuid.New(),
		BranchID:        uuid.New(),
		StylistID:       f.stylistID,
		CustomerID:      uuid.New(),
		ServiceID:       uuid.New(),
		StartAt:         bookingDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute),
		DurationMinutes: durationMin,
	})
	require.NoError(t, err)
	return appt
}

func TestAvailableSlots_ExcludesBookedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 10, 0, 30)
	_, err := f.sched.Confirm(ctx, appt.ID)
	require.NoError(t, err)

	slots, err := f.sched.AvailableSlots(ctx, f.stylistID, bookingDay, 30)
	require.NoError(t, err)

	assert.Contains(t, slots, bookingDay.Add(9*time.Hour+30*time.Minute))
	assert.Contains(t, slots, bookingDay.Add(10*time.Hour+30*time.Minute))
	assert.NotContains(t, slots, bookingDay.Add(10*time.Hour))

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]), "slots must be ascending and unique")
	}
}

func TestAvailableSlots_ClosedDayIsEmpty(t *testing.T) {
	f := newFixture(t)

	sunday := bookingDay.AddDate(0, 0, -1)
	slots, err := f.sched.AvailableSlots(context.Background(), f.stylistID, sunday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_TodayFiltersElapsedTimes(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(bookingDay.Add(10*time.Hour + 5*time.Minute))

	slots, err := f.sched.AvailableSlots(context.Background(), f.stylistID, bookingDay, 30)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, bookingDay.Add(10*time.Hour+30*time.Minute), slots[0])
}

func TestAvailableSlots_TodayFullyElapsed(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(bookingDay.Add(18 * time.Hour))

	slots, err := f.sched.AvailableSlots(context.Background(), f.stylistID, bookingDay, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_FutureDayNotFilteredByClock(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(bookingDay.AddDate(0, 0, -1).Add(18 * time.Hour))

	slots, err := f.sched.AvailableSlots(context.Background(), f.stylistID, bookingDay, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, bookingDay.Add(9*time.Hour), slots[0])
}

func TestAvailableSlots_InvalidDuration(t *testing.T) {
	f := newFixture(t)
	_, err := f.sched.AvailableSlots(context.Background(), f.stylistID, bookingDay, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreate_Succeeds(t *testing.T) {
	f := newFixture(t)

	appt := f.createAt(t, 14, 0, 45)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, bookingDay.Add(14*time.Hour), appt.StartAt)
	assert.Equal(t, bookingDay.Add(14*time.Hour+45*time.Minute), appt.EndAt)

	loaded, err := f.sched.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.True(t, loaded.StartAt.Equal(appt.StartAt))
}

func TestCreate_OverlapRejected(t *testing.T) {
	f := newFixture(t)
	f.createAt(t, 14, 0, 30)

	_, err := f.sched.Create(context.Background(), CreateRequest{
		StylistID:       f.stylistID,
		StartAt:         bookingDay.Add(14*time.Hour + 15*time.Minute),
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestCreate_TouchingIntervalsBothSucceed(t *testing.T) {
	f := newFixture(t)
	f.createAt(t, 9, 30, 30) // ends 10:00
	f.createAt(t, 10, 0, 30) // starts 10:00
}

func TestCreate_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 11, 0, 30)
	_, err := f.sched.Cancel(ctx, appt.ID, "customer request", "customer")
	require.NoError(t, err)

	f.createAt(t, 11, 0, 30)
}

func TestCreate_InvalidDuration(t *testing.T) {
	f := newFixture(t)
	_, err := f.sched.Create(context.Background(), CreateRequest{
		StylistID:       f.stylistID,
		StartAt:         bookingDay.Add(14 * time.Hour),
		DurationMinutes: -15,
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreate_ConcurrentOverlapOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	starts := []time.Time{
		bookingDay.Add(14 * time.Hour),
		bookingDay.Add(14*time.Hour + 15*time.Minute),
	}

	errs := make([]error, len(starts))
	var wg sync.WaitGroup
	for i, start := range starts {
		wg.Add(1)
		go func(i int, start time.Time) {
			defer wg.Done()
			_, errs[i] = f.sched.Create(ctx, CreateRequest{
				StylistID:       f.stylistID,
				StartAt:         start,
				DurationMinutes: 30,
			})
		}(i, start)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrSchedulingConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestReschedule_MovesInterval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)
	moved, err := f.sched.Reschedule(ctx, appt.ID, bookingDay.Add(9*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, appt.ID, moved.ID)
	assert.Equal(t, bookingDay.Add(9*time.Hour), moved.StartAt)
	assert.Equal(t, bookingDay.Add(9*time.Hour+30*time.Minute), moved.EndAt)
	assert.Equal(t, models.StatusPending, moved.Status)
}

func TestReschedule_OwnIntervalIsNotASelfConflict(t *testing.T) {
	f := newFixture(t)

	appt := f.createAt(t, 14, 0, 30)
	moved, err := f.sched.Reschedule(context.Background(), appt.ID, appt.StartAt)
	require.NoError(t, err)
	assert.True(t, moved.StartAt.Equal(appt.StartAt))
}

func TestReschedule_ConflictWithOtherAppointment(t *testing.T) {
	f := newFixture(t)

	f.createAt(t, 10, 0, 30)
	appt := f.createAt(t, 14, 0, 30)

	_, err := f.sched.Reschedule(context.Background(), appt.ID, bookingDay.Add(10*time.Hour+15*time.Minute))
	assert.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestReschedule_UnknownAppointment(t *testing.T) {
	f := newFixture(t)
	_, err := f.sched.Reschedule(context.Background(), uuid.New(), bookingDay.Add(9*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReschedule_CancelledRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)
	_, err := f.sched.Cancel(ctx, appt.ID, "", "staff")
	require.NoError(t, err)

	_, err = f.sched.Reschedule(ctx, appt.ID, bookingDay.Add(9*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_SetsMetadata(t *testing.T) {
	f := newFixture(t)

	appt := f.createAt(t, 14, 0, 30)
	cancelled, err := f.sched.Cancel(context.Background(), appt.ID, "customer request", "customer")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "customer request", cancelled.CancelReason)
	assert.Equal(t, "customer", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)
	assert.True(t, cancelled.CancelledAt.Equal(f.clock.Now().UTC()))
}

func TestCancel_IdempotentKeepsOriginalMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)
	first, err := f.sched.Cancel(ctx, appt.ID, "customer request", "customer")
	require.NoError(t, err)

	f.clock.Set(f.clock.Now().Add(time.Hour))
	second, err := f.sched.Cancel(ctx, appt.ID, "different reason", "staff")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, second.Status)
	assert.Equal(t, "customer request", second.CancelReason)
	assert.Equal(t, "customer", second.CancelledBy)
	assert.True(t, second.CancelledAt.Equal(*first.CancelledAt))
}

func TestCancel_CompletedRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)
	_, err := f.sched.Confirm(ctx, appt.ID)
	require.NoError(t, err)
	_, err = f.sched.Start(ctx, appt.ID)
	require.NoError(t, err)
	_, err = f.sched.Complete(ctx, appt.ID)
	require.NoError(t, err)

	_, err = f.sched.Cancel(ctx, appt.ID, "too late", "staff")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitions_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)

	confirmed, err := f.sched.Confirm(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	started, err := f.sched.Start(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)

	completed, err := f.sched.Complete(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
}

func TestTransitions_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)

	// pending cannot jump straight to in progress or completed
	_, err := f.sched.Start(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.sched.Complete(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkNoShow_FromConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.createAt(t, 14, 0, 30)
	_, err := f.sched.Confirm(ctx, appt.ID)
	require.NoError(t, err)

	marked, err := f.sched.MarkNoShow(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, marked.Status)

	// no-show frees the slot
	f.createAt(t, 14, 0, 30)
}

func TestDaySchedule_ReturnsDayAppointmentsInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	late := f.createAt(t, 15, 0, 30)
	early := f.createAt(t, 9, 0, 30)

	// another day, another stylist: both must be excluded
	_, err := f.sched.Create(ctx, CreateRequest{
		StylistID:       f.stylistID,
		StartAt:         bookingDay.AddDate(0, 0, 1).Add(9 * time.Hour),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	_, err = f.sched.Create(ctx, CreateRequest{
		StylistID:       uuid.New(),
		StartAt:         bookingDay.Add(10 * time.Hour),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	appts, err := f.sched.DaySchedule(ctx, f.stylistID, bookingDay)
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, early.ID, appts[0].ID)
	assert.Equal(t, late.ID, appts[1].ID)
}

func TestWithinCancellationCutoff(t *testing.T) {
	f := newFixture(t)

	appt := f.createAt(t, 14, 0, 30)

	f.clock.Set(appt.StartAt.Add(-3 * time.Hour))
	assert.False(t, f.sched.WithinCancellationCutoff(appt))

	f.clock.Set(appt.StartAt.Add(-90 * time.Minute))
	assert.True(t, f.sched.WithinCancellationCutoff(appt))
}

func TestHasConflict_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sched.HasConflict(ctx, f.stylistID, bookingDay.Add(10*time.Hour), bookingDay.Add(10*time.Hour), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	appt := f.createAt(t, 10, 0, 30)

	conflict, err := f.sched.HasConflict(ctx, f.stylistID, bookingDay.Add(10*time.Hour+15*time.Minute), bookingDay.Add(11*time.Hour), uuid.Nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = f.sched.HasConflict(ctx, f.stylistID, appt.StartAt, appt.EndAt, appt.ID)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestAvailableSlots_LocalTimezoneScenario(t *testing.T) {
	store := newMemStore()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	stylistID := uuid.New()
	store.addRule(models.WorkingHoursRule{
		StylistID:    stylistID,
		DayOfWeek:    time.Monday,
		OpenTime:     "09:00",
		CloseTime:    "11:00",
		IsWorkingDay: true,
	})

	sched := NewScheduler(store, store, NewNormalizer(ist), clock, 30)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, ist)
	slots, err := sched.AvailableSlots(context.Background(), stylistID, date, 30)
	require.NoError(t, err)

	// 09:00, 09:30, 10:00, 10:30 local
	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].Format("15:04"))
	assert.Equal(t, ist, slots[0].Location())

	// Booking 09:30 local must be stored as 04:00 UTC and then hide the
	// 09:30 candidate.
	n := sched.Normalizer()
	startUTC := n.ToUTC(time.Date(2026, 3, 2, 9, 30, 0, 0, ist))
	assert.Equal(t, "04:00", startUTC.Format("15:04"))

	_, err = sched.Create(context.Background(), CreateRequest{
		StylistID:       stylistID,
		StartAt:         startUTC,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	slots, err = sched.AvailableSlots(context.Background(), stylistID, date, 30)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Format("15:04"))
	assert.Equal(t, "10:00", slots[1].Format("15:04"))
}
