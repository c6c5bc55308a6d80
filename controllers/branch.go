package controllers

import (
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBranchInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchInput struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// CreateBranch adds a branch to the salon
func CreateBranch(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branch := models.Branch{
		SalonID:  salonUUID,
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		IsActive: true,
	}

	if err := config.DB.Create(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// GetBranches lists the salon's branches
func GetBranches(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var branches []models.Branch
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// UpdateBranch updates a branch
func UpdateBranch(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID")
		return
	}

	var branch models.Branch
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&branch, "id = ?", branchID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	var input UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = *input.Address
	}
	if input.Phone != nil {
		branch.Phone = *input.Phone
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch soft-deletes a branch
func DeleteBranch(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID")
		return
	}

	if err := config.DB.Where("salon_id = ?", salonUUID).
		Delete(&models.Branch{}, "id = ?", branchID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete branch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}
