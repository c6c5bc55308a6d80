package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate is the message sent to customers ahead of an appointment.
// Placeholders: [CustomerName], [StylistName], [ServiceName], [StartTime].
type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Type     string    `gorm:"type:varchar(20);not null"` // appointment, birthday
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
