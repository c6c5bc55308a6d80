package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/scheduling"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentController exposes the scheduling core over HTTP. All request
// times are local salon time; the controller converts through the core's
// Normalizer before anything touches the store.
type AppointmentController struct {
	Scheduler *scheduling.Scheduler
}

// CreateAppointmentInput books a service with a stylist. Date and startTime
// are salon-local wall clock.
type CreateAppointmentInput struct {
	StylistID  uuid.UUID `json:"stylistId" binding:"required"`
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	Date       string    `json:"date" binding:"required"`      // "2006-01-02"
	StartTime  string    `json:"startTime" binding:"required"` // "15:04"
	Discount   float64   `json:"discount"`
	Notes      string    `json:"notes"`
}

type RescheduleInput struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

type CancelInput struct {
	Reason    string `json:"reason"`
	Initiator string `json:"initiator"` // "customer" or "staff", default staff
}

// GetAvailableSlots returns bookable local start times for a stylist, date
// and service.
func (ac *AppointmentController) GetAvailableSlots(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	stylistID, err := uuid.Parse(c.Query("stylistId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylistId")
		return
	}
	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceId")
		return
	}

	tz := ac.Scheduler.Normalizer()
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), tz.Location())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	service, ok := ac.loadService(c, salonUUID, serviceID)
	if !ok {
		return
	}

	slots, err := ac.Scheduler.AvailableSlots(c.Request.Context(), stylistID, date, service.Duration)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date.Format("2006-01-02"),
		"timezone": tz.Location().String(),
		"duration": service.Duration,
		"slots":    out,
	})
}

// CreateAppointment books an appointment; an occupied slot yields 409.
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var stylist models.Stylist
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		First(&stylist, "id = ?", input.StylistID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("salon_id = ?", salonUUID).
		First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	service, ok := ac.loadService(c, salonUUID, input.ServiceID)
	if !ok {
		return
	}

	startUTC, ok := ac.parseLocalStart(c, input.Date, input.StartTime)
	if !ok {
		return
	}

	appt, err := ac.Scheduler.Create(c.Request.Context(), scheduling.CreateRequest{
		SalonID:         salonUUID,
		BranchID:        stylist.BranchID,
		StylistID:       stylist.ID,
		CustomerID:      customer.ID,
		ServiceID:       service.ID,
		StartAt:         startUTC,
		DurationMinutes: service.Duration,
		Price:           service.Price,
		Discount:        input.Discount,
		Notes:           input.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetAppointments lists the salon's appointments, optionally filtered by
// stylist and local date.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("salon_id = ?", salonUUID)

	if stylistParam := c.Query("stylistId"); stylistParam != "" {
		stylistID, err := uuid.Parse(stylistParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylistId")
			return
		}
		query = query.Where("stylist_id = ?", stylistID)
	}

	if dateParam := c.Query("date"); dateParam != "" {
		tz := ac.Scheduler.Normalizer()
		date, err := time.ParseInLocation("2006-01-02", dateParam, tz.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		from := tz.ToUTC(date)
		query = query.Where("start_at < ? AND ? < end_at", from.Add(24*time.Hour), from)
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status := models.AppointmentStatus(statusParam)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var appts []models.Appointment
	if err := query.Order("start_at ASC").Find(&appts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appts)
}

// GetAppointment retrieves one appointment.
func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	appt, ok := ac.loadAppointment(c, salonUUID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, appt)
}

// RescheduleAppointment moves an appointment to a new local start time,
// keeping its duration and status.
func (ac *AppointmentController) RescheduleAppointment(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	appt, ok := ac.loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	startUTC, ok := ac.parseLocalStart(c, input.Date, input.StartTime)
	if !ok {
		return
	}

	moved, err := ac.Scheduler.Reschedule(c.Request.Context(), appt.ID, startUTC)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

// CancelAppointment cancels an appointment. Customer-initiated cancellations
// are refused inside the 2-hour cutoff; staff cancellations bypass it.
func (ac *AppointmentController) CancelAppointment(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	appt, ok := ac.loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	var input CancelInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	initiator := input.Initiator
	if initiator == "" {
		initiator = "staff"
	}
	if initiator == "customer" && ac.Scheduler.WithinCancellationCutoff(appt) {
		utils.RespondWithError(c, http.StatusUnprocessableEntity,
			"Appointments can no longer be cancelled less than 2 hours before the start time")
		return
	}

	cancelled, err := ac.Scheduler.Cancel(c.Request.Context(), appt.ID, input.Reason, initiator)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// ConfirmAppointment moves a pending appointment to confirmed.
func (ac *AppointmentController) ConfirmAppointment(c *gin.Context) {
	ac.transition(c, ac.Scheduler.Confirm)
}

// StartAppointment marks a confirmed appointment as in progress.
func (ac *AppointmentController) StartAppointment(c *gin.Context) {
	ac.transition(c, ac.Scheduler.Start)
}

// CompleteAppointment marks an in-progress appointment as completed and
// updates the customer's visit stats.
func (ac *AppointmentController) CompleteAppointment(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	appt, ok := ac.loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	completed, err := ac.Scheduler.Complete(c.Request.Context(), appt.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	now := time.Now()
	config.DB.Model(&models.Customer{}).Where("id = ?", completed.CustomerID).
		Updates(map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + 1"),
			"total_spent":  gorm.Expr("total_spent + ?", completed.Price-completed.Discount),
			"last_visit":   &now,
		})

	c.JSON(http.StatusOK, completed)
}

// GetStylistSchedule returns a stylist's appointments for one local calendar
// day. Without a date parameter it shows today.
func (ac *AppointmentController) GetStylistSchedule(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	stylistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID")
		return
	}

	var stylist models.Stylist
	if err := config.DB.Where("salon_id = ?", salonUUID).
		First(&stylist, "id = ?", stylistID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		return
	}

	tz := ac.Scheduler.Normalizer()
	date := time.Now()
	if dateParam := c.Query("date"); dateParam != "" {
		date, err = time.ParseInLocation("2006-01-02", dateParam, tz.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	appts, err := ac.Scheduler.DaySchedule(c.Request.Context(), stylistID, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         tz.DayStart(date).Format("2006-01-02"),
		"stylistId":    stylistID,
		"appointments": appts,
	})
}

// MarkNoShow marks an appointment as a no-show.
func (ac *AppointmentController) MarkNoShow(c *gin.Context) {
	ac.transition(c, ac.Scheduler.MarkNoShow)
}

// CheckConflict is the validation-only endpoint for the staff override
// screen: it reports whether an interval is free without booking anything.
func (ac *AppointmentController) CheckConflict(c *gin.Context) {
	if _, ok := salonFromContext(c); !ok {
		return
	}

	stylistID, err := uuid.Parse(c.Query("stylistId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylistId")
		return
	}

	startUTC, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start, expected RFC3339")
		return
	}
	endUTC, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end, expected RFC3339")
		return
	}

	excludeID := uuid.Nil
	if excludeParam := c.Query("excludeId"); excludeParam != "" {
		excludeID, err = uuid.Parse(excludeParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid excludeId")
			return
		}
	}

	conflict, err := ac.Scheduler.HasConflict(c.Request.Context(), stylistID, startUTC, endUTC, excludeID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflict": conflict})
}

func (ac *AppointmentController) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*models.Appointment, error)) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	appt, ok := ac.loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	updated, err := op(c.Request.Context(), appt.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ac *AppointmentController) loadAppointment(c *gin.Context, salonUUID uuid.UUID) (*models.Appointment, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment id")
		return nil, false
	}

	var appt models.Appointment
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&appt, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return nil, false
	}
	return &appt, true
}

func (ac *AppointmentController) loadService(c *gin.Context, salonUUID, serviceID uuid.UUID) (*models.Service, bool) {
	var service models.Service
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		First(&service, "id = ?", serviceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return nil, false
	}
	if service.Duration <= 0 {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Service has no duration configured")
		return nil, false
	}
	return &service, true
}

func (ac *AppointmentController) parseLocalStart(c *gin.Context, date, startTime string) (time.Time, bool) {
	if !utils.ValidateClockTime(startTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startTime, expected HH:MM")
		return time.Time{}, false
	}
	tz := ac.Scheduler.Normalizer()
	local, err := time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, tz.Location())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return tz.ToUTC(local), true
}

// respondSchedulingError maps core errors onto HTTP statuses.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrSchedulingConflict):
		utils.RespondWithError(c, http.StatusConflict, "Time slot is already booked, please choose another time")
	case errors.Is(err, scheduling.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, scheduling.ErrInvalidInterval):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time interval")
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Appointment status does not allow this operation")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Scheduling operation failed")
	}
}

// salonFromContext pulls the authenticated salon id set by the JWT
// middleware.
func salonFromContext(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}
