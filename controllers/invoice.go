package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateInvoiceInput struct {
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Tax           float64   `json:"tax"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
}

// CreateInvoice bills a completed appointment.
func CreateInvoice(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appt models.Appointment
	if err := config.DB.Where("salon_id = ?", salonUUID).
		First(&appt, "id = ?", input.AppointmentID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	if appt.Status != models.StatusCompleted {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Only completed appointments can be invoiced")
		return
	}

	var existing models.Invoice
	if err := config.DB.Where("appointment_id = ?", appt.ID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is already invoiced")
		return
	}

	subtotal := appt.Price
	total := subtotal - appt.Discount + input.Tax

	invoice := models.Invoice{
		SalonID:         salonUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		InvoiceNumber:   fmt.Sprintf("INV-%s-%d", time.Now().Format("20060102"), time.Now().UnixNano()%100000),
		CustomerID:      appt.CustomerID,
		AppointmentID:   &appt.ID,
		InvoiceDate:     time.Now(),
		Subtotal:        subtotal,
		Discount:        appt.Discount,
		Tax:             input.Tax,
		Total:           total,
		PaymentStatus:   "unpaid",
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists the salon's invoices
func GetInvoices(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice
func GetInvoice(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&invoice, "id = ?", invoiceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// PayInvoice records a payment against an invoice
func PayInvoice(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var input struct {
		Amount        float64 `json:"amount" binding:"required,min=0"`
		PaymentMethod string  `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("salon_id = ?", salonUUID).First(&invoice, "id = ?", invoiceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	invoice.PaidAmount += input.Amount
	if input.PaymentMethod != "" {
		invoice.PaymentMethod = input.PaymentMethod
	}
	if invoice.PaidAmount >= invoice.Total {
		invoice.PaymentStatus = "paid"
	} else if invoice.PaidAmount > 0 {
		invoice.PaymentStatus = "partial"
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}
