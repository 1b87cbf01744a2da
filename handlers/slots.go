package handlers

import (
	"net/http"
	"strings"

	"clinicbook/middleware"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// maxDatesPerRequest caps the bulk availability endpoint.
const maxDatesPerRequest = 14

// SlotHandler serves availability queries.
type SlotHandler struct {
	Engine scheduling.SchedulingEngine
}

// NewSlotHandler creates a SlotHandler backed by the scheduling engine.
func NewSlotHandler(engine scheduling.SchedulingEngine) *SlotHandler {
	return &SlotHandler{Engine: engine}
}

// GetSlots handles GET /api/slots?department=<id>&date=<YYYY-MM-DD>.
// When the caller is authenticated, their own booked slots are reported
// unreservable as well.
func (h *SlotHandler) GetSlots(c *gin.Context) {
	department := strings.TrimSpace(c.Query("department"))
	date := strings.TrimSpace(c.Query("date"))
	if department == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "department and date are required")
		return
	}

	avail, err := h.Engine.GetAvailability(c.Request.Context(), department, date, middleware.CallerID(c))
	if err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Failed to fetch availability", msg)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// GetSlotsWeek handles GET /api/slots/week?department=<id>&dates=<d1,d2,...>.
// At most 14 dates are computed per request.
func (h *SlotHandler) GetSlotsWeek(c *gin.Context) {
	department := strings.TrimSpace(c.Query("department"))
	var dates []string
	for _, d := range strings.Split(c.Query("dates"), ",") {
		if d = strings.TrimSpace(d); d != "" {
			dates = append(dates, d)
		}
	}
	if department == "" || len(dates) == 0 {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}
	if len(dates) > maxDatesPerRequest {
		dates = dates[:maxDatesPerRequest]
	}

	results, err := h.Engine.GetAvailabilityForDates(c.Request.Context(), department, dates, middleware.CallerID(c))
	if err != nil {
		status, msg := messageFor(err)
		utils.JSONError(c, status, "Failed to fetch availability", msg)
		return
	}
	c.JSON(http.StatusOK, results)
}
