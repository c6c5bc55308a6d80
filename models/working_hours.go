package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHoursRule defines a stylist's schedule for one weekday. Times are
// local wall-clock strings in "HH:MM" 24h format; at most one rule exists per
// (stylist, weekday) pair. Rules are owned by the admin configuration screens
// and only read by the scheduling core.
type WorkingHoursRule struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	SalonID   uuid.UUID    `gorm:"type:uuid;index;not null" json:"salonId"`
	StylistID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_stylist_weekday,priority:1" json:"stylistId"`
	DayOfWeek time.Weekday `gorm:"not null;uniqueIndex:idx_stylist_weekday,priority:2" json:"dayOfWeek"`

	OpenTime  string `gorm:"type:varchar(5);not null" json:"openTime"`  // "09:00"
	CloseTime string `gorm:"type:varchar(5);not null" json:"closeTime"` // "18:00"

	IsWorkingDay bool    `gorm:"default:true" json:"isWorkingDay"`
	BreakStart   *string `gorm:"type:varchar(5)" json:"breakStart,omitempty"`
	BreakEnd     *string `gorm:"type:varchar(5)" json:"breakEnd,omitempty"`

	gorm.Model
}

func (r *WorkingHoursRule) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// HasBreak reports whether the rule defines a break window.
func (r *WorkingHoursRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil && *r.BreakStart != "" && *r.BreakEnd != ""
}
