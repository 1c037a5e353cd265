package handlers

import (
	"net/http"

	"clinicore/middleware"
	"clinicore/models"
	"clinicore/services/booking"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling and booking workflow over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// GetAvailability returns the free slots for a doctor on a date.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	doctorID := c.Param("doctorID")
	date := c.Query("date")

	result, err := h.Service.Availability(c.Request.Context(), doctorID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reserve creates a pending appointment and returns the checkout redirect.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var input models.ReserveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation payload", err.Error())
		return
	}

	// Bookings made while signed in as a patient are linked to the account;
	// staff booking on a patient's behalf leaves the link unset.
	var patientUserID *uuid.UUID
	if id, ok := middleware.UserID(c); ok && middleware.RoleOf(c) == models.RolePatient {
		patientUserID = &id
	}

	resp, err := h.Service.Reserve(c.Request.Context(), input, patientUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmPayment verifies a checkout session and finalizes the appointment.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var input models.ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid confirmation payload", err.Error())
		return
	}

	resp, err := h.Service.ConfirmPayment(c.Request.Context(), input.SessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder returns the appointment behind an order id, for the
// post-checkout page to poll.
func (h *BookingHandler) GetOrder(c *gin.Context) {
	appt, err := h.Service.GetByOrder(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment cancels a still-pending reservation, freeing its slot.
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}

// CompleteAppointment marks a paid appointment as clinically completed.
func (h *BookingHandler) CompleteAppointment(c *gin.Context) {
	if err := h.Service.Complete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// ListDoctorDay returns a doctor's non-canceled appointments for a date.
func (h *BookingHandler) ListDoctorDay(c *gin.Context) {
	appts, err := h.Service.ListDoctorDay(c.Request.Context(), c.Param("doctorID"), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListMyAppointments returns the authenticated patient's appointments.
func (h *BookingHandler) ListMyAppointments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	appts, err := h.Service.ListPatientAppointments(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
