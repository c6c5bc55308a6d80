package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string

	AppointmentReminders  bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	SMSNotifications      bool `gorm:"default:false"`

	Users        []User             `gorm:"foreignKey:SalonID"`
	Branches     []Branch           `gorm:"foreignKey:SalonID"`
	Customers    []Customer         `gorm:"foreignKey:SalonID"`
	Services     []Service          `gorm:"foreignKey:SalonID"`
	Appointments []Appointment      `gorm:"foreignKey:SalonID"`
	Templates    []ReminderTemplate `gorm:"foreignKey:SalonID"`
}
