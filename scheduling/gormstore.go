package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements AppointmentStore and WorkingHoursStore on Postgres.
//
// WithStylistLock takes a SELECT ... FOR UPDATE row lock on the stylist
// inside a transaction, serializing every check-then-write sequence for that
// stylist's calendar. Two concurrent bookings for the same stylist therefore
// queue on the row lock, and the second one sees the first one's insert
// before running its own overlap check.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	return &appt, nil
}

func (s *GormStore) HasOverlap(ctx context.Context, stylistID uuid.UUID, startUTC, endUTC time.Time, excludeID uuid.UUID) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("stylist_id = ?", stylistID).
		Where("status IN ?", occupyingStatuses()).
		Where("start_at < ? AND ? < end_at", endUTC, startUTC)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count overlapping appointments: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) Create(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Create(appt).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Save(appt).Error; err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (s *GormStore) ListByStylistAndRange(ctx context.Context, stylistID uuid.UUID, fromUTC, toUTC time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("stylist_id = ?", stylistID).
		Where("start_at < ? AND ? < end_at", toUTC, fromUTC).
		Order("start_at ASC").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *GormStore) WithStylistLock(ctx context.Context, stylistID uuid.UUID, fn func(AppointmentStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stylist models.Stylist
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stylist, "id = ?", stylistID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("stylist %s: %w", stylistID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock stylist: %w", err)
		}
		return fn(&GormStore{db: tx})
	})
}

// RuleFor implements WorkingHoursStore. A missing rule is a closed day, not
// an error.
func (s *GormStore) RuleFor(ctx context.Context, stylistID uuid.UUID, day time.Weekday) (*models.WorkingHoursRule, error) {
	var rule models.WorkingHoursRule
	err := s.db.WithContext(ctx).
		First(&rule, "stylist_id = ? AND day_of_week = ?", stylistID, day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load working hours rule: %w", err)
	}
	return &rule, nil
}

func occupyingStatuses() []models.AppointmentStatus {
	return []models.AppointmentStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusInProgress,
	}
}
