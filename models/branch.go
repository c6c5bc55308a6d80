package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a physical salon location. Stylists belong to a branch and
// appointments record which branch they were booked at.
type Branch struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name     string `gorm:"not null" json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Stylists []Stylist `gorm:"foreignKey:BranchID" json:"-"`

	gorm.Model
}

func (b *Branch) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
