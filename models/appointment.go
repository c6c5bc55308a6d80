package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the closed set of lifecycle states for an appointment.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status blocks its time
// interval for conflict detection. Cancelled and no-show appointments never
// block a slot.
func (s AppointmentStatus) Occupies() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return false
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	case StatusPending, StatusConfirmed, StatusInProgress:
		return false
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next. Reschedules are not transitions: they keep the current status.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return false
	}
	return false
}

// Appointment is a booked service for a customer with a stylist. StartAt and
// EndAt are always stored in UTC as a half-open interval [StartAt, EndAt).
// Cancelled appointments are retained for reporting, never deleted.
type Appointment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	BranchID   uuid.UUID `gorm:"type:uuid;index;not null" json:"branchId"`
	StylistID  uuid.UUID `gorm:"type:uuid;index:idx_stylist_start,priority:1;not null" json:"stylistId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	StartAt time.Time         `gorm:"index:idx_stylist_start,priority:2;not null" json:"startAt"`
	EndAt   time.Time         `gorm:"not null" json:"endAt"`
	Status  AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Carried for invoicing; the scheduling core never interprets these.
	Price    float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`
	Discount float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	Notes    string  `json:"notes"`

	CancelReason string     `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy  string     `gorm:"type:varchar(20)" json:"cancelledBy,omitempty"` // customer, staff

	Stylist  Stylist  `gorm:"foreignKey:StylistID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"-"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Duration returns the length of the appointment interval.
func (a *Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}
