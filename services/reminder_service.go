// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/scheduling"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders. It only reads
// appointments; all scheduling mutations go through the scheduling package.
type ReminderService struct {
	db     *gorm.DB
	tz     *scheduling.Normalizer
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB, tz *scheduling.Normalizer) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		tz: tz,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the reminder sweep every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 9 * * *", s.SendAppointmentReminders); err != nil {
		log.Printf("Failed to schedule reminder job: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendAppointmentReminders messages every customer with a pending or
// confirmed appointment tomorrow (local salon time).
func (s *ReminderService) SendAppointmentReminders() {
	log.Println("Starting appointment reminder processing...")

	tomorrowLocal := s.tz.DayStart(time.Now()).AddDate(0, 0, 1)
	fromUTC := s.tz.ToUTC(tomorrowLocal)
	toUTC := fromUTC.Add(24 * time.Hour)

	var salons []models.Salon
	if err := s.db.Where("appointment_reminders = true").Find(&salons).Error; err != nil {
		log.Printf("Failed to fetch salons: %v", err)
		return
	}

	for _, salon := range salons {
		s.processSalon(salon, fromUTC, toUTC)
	}

	log.Println("Appointment reminder processing completed")
}

func (s *ReminderService) processSalon(salon models.Salon, fromUTC, toUTC time.Time) {
	var template models.ReminderTemplate
	if err := s.db.Where("salon_id = ? AND type = ? AND is_active = true", salon.ID, "appointment").
		First(&template).Error; err != nil {
		log.Printf("Salon %s: No active appointment template: %v", salon.ID, err)
		return
	}

	var appts []models.Appointment
	err := s.db.Preload("Customer").Preload("Stylist").Preload("Service").
		Where("salon_id = ? AND start_at >= ? AND start_at < ?", salon.ID, fromUTC, toUTC).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&appts).Error
	if err != nil {
		log.Printf("Salon %s: Failed to fetch appointments: %v", salon.ID, err)
		return
	}

	for _, appt := range appts {
		// Skip if already reminded
		var count int64
		s.db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appt.ID, "sent").Count(&count)
		if count > 0 {
			continue
		}

		message := template.Message
		message = strings.ReplaceAll(message, "[CustomerName]", appt.Customer.Name)
		message = strings.ReplaceAll(message, "[StylistName]", appt.Stylist.Name)
		message = strings.ReplaceAll(message, "[ServiceName]", appt.Service.Name)
		message = strings.ReplaceAll(message, "[StartTime]", s.tz.ToLocal(appt.StartAt).Format("Mon 02 Jan, 15:04"))

		s.send(salon, appt, template.ID, message)
	}
}

func (s *ReminderService) send(salon models.Salon, appt models.Appointment, templateID uuid.UUID, message string) {
	// Determine channel (WhatsApp if enabled and phone is E.164, else SMS)
	channel := "sms"
	to := appt.Customer.Phone
	if salon.WhatsAppNotifications && strings.HasPrefix(appt.Customer.Phone, "+") {
		to = "whatsapp:" + appt.Customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", appt.Customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", appt.Customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", appt.Customer.Phone)
	}

	reminderLog := models.ReminderLog{
		SalonID:       salon.ID,
		CustomerID:    appt.CustomerID,
		AppointmentID: appt.ID,
		TemplateID:    templateID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", appt.ID, err)
	}
}
