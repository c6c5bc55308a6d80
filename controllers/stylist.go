package controllers

import (
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateStylistInput struct {
	BranchID  uuid.UUID `json:"branchId" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
}

type UpdateStylistInput struct {
	BranchID  *uuid.UUID `json:"branchId"`
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Specialty *string    `json:"specialty"`
	IsActive  *bool      `json:"isActive"`
}

// CreateStylist adds a stylist to a branch
func CreateStylist(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateStylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var branch models.Branch
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&branch, "id = ?", input.BranchID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	stylist := models.Stylist{
		SalonID:   salonUUID,
		BranchID:  branch.ID,
		Name:      input.Name,
		Phone:     input.Phone,
		Specialty: input.Specialty,
		IsActive:  true,
	}

	if err := config.DB.Create(&stylist).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create stylist")
		return
	}

	c.JSON(http.StatusCreated, stylist)
}

// GetStylists lists the salon's stylists, optionally by branch
func GetStylists(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("salon_id = ?", salonUUID)
	if branchParam := c.Query("branchId"); branchParam != "" {
		branchID, err := uuid.Parse(branchParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branchId")
			return
		}
		query = query.Where("branch_id = ?", branchID)
	}

	var stylists []models.Stylist
	if err := query.Find(&stylists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stylists")
		return
	}

	c.JSON(http.StatusOK, stylists)
}

// GetStylist retrieves a single stylist
func GetStylist(c *gin.Context) {
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

	c.JSON(http.StatusOK, stylist)
}

// UpdateStylist updates a stylist
func UpdateStylist(c *gin.Context) {
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

	var input UpdateStylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.BranchID != nil {
		var branch models.Branch
		if err := config.DB.Where("salon_id = ?", salonUUID).First(&branch, "id = ?", *input.BranchID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
			return
		}
		stylist.BranchID = branch.ID
	}
	if input.Name != nil {
		stylist.Name = *input.Name
	}
	if input.Phone != nil {
		stylist.Phone = *input.Phone
	}
	if input.Specialty != nil {
		stylist.Specialty = *input.Specialty
	}
	if input.IsActive != nil {
		stylist.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&stylist).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update stylist")
		return
	}

	c.JSON(http.StatusOK, stylist)
}

// DeleteStylist soft-deletes a stylist
func DeleteStylist(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	stylistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID")
		return
	}

	if err := config.DB.Where("salon_id = ?", salonUUID).
		Delete(&models.Stylist{}, "id = ?", stylistID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete stylist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stylist deleted"})
}
