package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stylist is the schedulable resource: appointments reserve a stylist's time.
type Stylist struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null" json:"branchId"`

	Name      string `gorm:"not null" json:"name"`
	Phone     string `json:"phone"`
	Specialty string `gorm:"default:'General'" json:"specialty"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	WorkingHours []WorkingHoursRule `gorm:"foreignKey:StylistID" json:"-"`
	Appointments []Appointment      `gorm:"foreignKey:StylistID" json:"-"`

	gorm.Model
}

func (s *Stylist) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
