package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHoursRuleInput is one weekday entry of a stylist's schedule.
type WorkingHoursRuleInput struct {
	DayOfWeek    time.Weekday `json:"dayOfWeek"`
	OpenTime     string       `json:"openTime"`
	CloseTime    string       `json:"closeTime"`
	IsWorkingDay bool         `json:"isWorkingDay"`
	BreakStart   *string      `json:"breakStart"`
	BreakEnd     *string      `json:"breakEnd"`
}

type UpdateWorkingHoursInput struct {
	Rules []WorkingHoursRuleInput `json:"rules" binding:"required"`
}

// GetWorkingHours lists a stylist's weekly schedule rules
func GetWorkingHours(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	stylistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID")
		return
	}

	var rules []models.WorkingHoursRule
	if err := config.DB.Where("salon_id = ? AND stylist_id = ?", salonUUID, stylistID).
		Order("day_of_week ASC").Find(&rules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve working hours")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdateWorkingHours replaces a stylist's weekly schedule. At most one rule
// per weekday is kept; the scheduling core only ever reads these rules.
func UpdateWorkingHours(c *gin.Context) {
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
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&stylist, "id = ?", stylistID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		return
	}

	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	seen := make(map[time.Weekday]bool)
	for _, rule := range input.Rules {
		if rule.DayOfWeek < time.Sunday || rule.DayOfWeek > time.Saturday {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid dayOfWeek")
			return
		}
		if seen[rule.DayOfWeek] {
			utils.RespondWithError(c, http.StatusBadRequest, "Duplicate rule for weekday "+rule.DayOfWeek.String())
			return
		}
		seen[rule.DayOfWeek] = true

		if !rule.IsWorkingDay {
			continue
		}
		if !utils.ValidateClockTime(rule.OpenTime) || !utils.ValidateClockTime(rule.CloseTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Open and close times must be HH:MM")
			return
		}
		if rule.OpenTime >= rule.CloseTime {
			utils.RespondWithError(c, http.StatusBadRequest, "Open time must be before close time")
			return
		}
		hasBreakStart := rule.BreakStart != nil && *rule.BreakStart != ""
		hasBreakEnd := rule.BreakEnd != nil && *rule.BreakEnd != ""
		if hasBreakStart != hasBreakEnd {
			utils.RespondWithError(c, http.StatusBadRequest, "Break start and end must be set together")
			return
		}
		if hasBreakStart {
			if !utils.ValidateClockTime(*rule.BreakStart) || !utils.ValidateClockTime(*rule.BreakEnd) {
				utils.RespondWithError(c, http.StatusBadRequest, "Break times must be HH:MM")
				return
			}
			if *rule.BreakStart >= *rule.BreakEnd ||
				*rule.BreakStart < rule.OpenTime || *rule.BreakEnd > rule.CloseTime {
				utils.RespondWithError(c, http.StatusBadRequest, "Break must fall within the working window")
				return
			}
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("salon_id = ? AND stylist_id = ?", salonUUID, stylistID).
			Delete(&models.WorkingHoursRule{}).Error; err != nil {
			return err
		}
		for _, in := range input.Rules {
			rule := models.WorkingHoursRule{
				SalonID:      salonUUID,
				StylistID:    stylistID,
				DayOfWeek:    in.DayOfWeek,
				OpenTime:     in.OpenTime,
				CloseTime:    in.CloseTime,
				IsWorkingDay: in.IsWorkingDay,
				BreakStart:   in.BreakStart,
				BreakEnd:     in.BreakEnd,
			}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	var rules []models.WorkingHoursRule
	config.DB.Where("salon_id = ? AND stylist_id = ?", salonUUID, stylistID).
		Order("day_of_week ASC").Find(&rules)

	c.JSON(http.StatusOK, rules)
}
