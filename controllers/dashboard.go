package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/scheduling"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers    int64              `json:"totalCustomers"`
	TotalStylists     int64              `json:"totalStylists"`
	MonthlyRevenue    float64            `json:"monthlyRevenue"`
	TodayAppointments []TodayAppointment `json:"todayAppointments"`
	PendingCount      int64              `json:"pendingCount"`
	NoShowsThisMonth  int64              `json:"noShowsThisMonth"`
}

type TodayAppointment struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Stylist  string `json:"stylist"`
	Service  string `json:"service"`
	StartAt  string `json:"startAt"` // local "15:04"
	Status   string `json:"status"`
}

// DashboardController renders the staff landing screen.
type DashboardController struct {
	Scheduler *scheduling.Scheduler
}

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	tz := dc.Scheduler.Normalizer()
	now := time.Now()
	dayStartLocal := tz.DayStart(now)
	dayStartUTC := tz.ToUTC(dayStartLocal)
	monthStart := time.Date(dayStartLocal.Year(), dayStartLocal.Month(), 1, 0, 0, 0, 0, tz.Location())

	overview := DashboardOverview{}

	config.DB.Model(&models.Customer{}).
		Where("salon_id = ? AND is_active = true", salonUUID).Count(&overview.TotalCustomers)

	config.DB.Model(&models.Stylist{}).
		Where("salon_id = ? AND is_active = true", salonUUID).Count(&overview.TotalStylists)

	config.DB.Model(&models.Invoice{}).
		Where("salon_id = ? AND invoice_date >= ?", salonUUID, monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&overview.MonthlyRevenue)

	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ?", salonUUID, models.StatusPending).
		Count(&overview.PendingCount)

	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ? AND start_at >= ?", salonUUID, models.StatusNoShow, monthStart.UTC()).
		Count(&overview.NoShowsThisMonth)

	var appts []models.Appointment
	if err := config.DB.Preload("Customer").Preload("Stylist").Preload("Service").
		Where("salon_id = ? AND start_at >= ? AND start_at < ?", salonUUID, dayStartUTC, dayStartUTC.Add(24*time.Hour)).
		Order("start_at ASC").Find(&appts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load today's appointments")
		return
	}

	for _, a := range appts {
		overview.TodayAppointments = append(overview.TodayAppointments, TodayAppointment{
			ID:       a.ID.String(),
			Customer: a.Customer.Name,
			Stylist:  a.Stylist.Name,
			Service:  a.Service.Name,
			StartAt:  tz.ToLocal(a.StartAt).Format("15:04"),
			Status:   string(a.Status),
		})
	}

	c.JSON(http.StatusOK, overview)
}
