package handlers

import (
	"net/http"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the reservation workflow.
type BookingHandler struct {
	Engine scheduling.SchedulingEngine
}

// NewBookingHandler creates a BookingHandler backed by the scheduling engine.
func NewBookingHandler(engine scheduling.SchedulingEngine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// CreateReservation handles POST /api/reservations. The practitioner is
// auto-assigned unless the body names one.
func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Engine.CreateBooking(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Could not create the reservation", msg)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListReservations handles GET /api/reservations for the authenticated owner.
func (h *BookingHandler) ListReservations(c *gin.Context) {
	bookings, err := h.Engine.ListBookings(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Could not list reservations", msg)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"reservations": bookings})
}

// UpdateReservation handles PUT /api/reservations/:id. The booking is
// replaced under a new id; the original is released only after the
// replacement commits.
func (h *BookingHandler) UpdateReservation(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Engine.ModifyBooking(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req)
	if err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Could not update the reservation", msg)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelReservation handles DELETE /api/reservations/:id. Cancelling an
// already-gone reservation succeeds.
func (h *BookingHandler) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	if err := h.Engine.CancelBooking(c.Request.Context(), middleware.CallerID(c), id); err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Could not cancel the reservation", msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
