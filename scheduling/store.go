package scheduling

import (
	"context"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
)

// AppointmentStore is the persistence boundary for appointments. The
// WithStylistLock contract is what closes the check-then-create race: Create
// and Reschedule run their overlap check and write inside it, and the store
// must guarantee that at most one caller holds the lock for a given stylist
// at a time (a row lock in Postgres, a mutex in the in-memory test double).
type AppointmentStore interface {
	// GetByID returns the appointment or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	// HasOverlap reports whether any occupying appointment for the stylist
	// intersects [startUTC, endUTC). excludeID, when not uuid.Nil, removes
	// that appointment from consideration.
	HasOverlap(ctx context.Context, stylistID uuid.UUID, startUTC, endUTC time.Time, excludeID uuid.UUID) (bool, error)

	// Create persists a new appointment.
	Create(ctx context.Context, appt *models.Appointment) error

	// Update persists changes to an existing appointment.
	Update(ctx context.Context, appt *models.Appointment) error

	// ListByStylistAndRange returns appointments intersecting
	// [fromUTC, toUTC), ordered by start time.
	ListByStylistAndRange(ctx context.Context, stylistID uuid.UUID, fromUTC, toUTC time.Time) ([]models.Appointment, error)

	// WithStylistLock runs fn while holding an exclusive lock on the
	// stylist's calendar. fn receives a store bound to the same lock scope.
	// Returning an error from fn aborts any writes made inside it.
	WithStylistLock(ctx context.Context, stylistID uuid.UUID, fn func(AppointmentStore) error) error
}
