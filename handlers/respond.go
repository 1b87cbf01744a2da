package handlers

import (
	"errors"
	"net/http"

	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// statusForCode maps scheduling error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case scheduling.CodeInvalidArgument:
		return http.StatusBadRequest
	case scheduling.CodeNotFound:
		return http.StatusNotFound
	case scheduling.CodeSlotTaken, scheduling.CodeOutOfSchedule, scheduling.CodeUnavailable:
		return http.StatusConflict
	case scheduling.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the caller-facing message for a scheduling error.
// SlotTaken and friends carry messages written for end users; anything else
// is an internal fault and gets a generic message.
func messageFor(err error) (int, string) {
	var se *scheduling.SchedulingError
	if errors.As(err, &se) {
		return statusForCode(se.Code), se.Message
	}
	utils.GetLogger().Error("scheduling request failed", zap.Error(err))
	return http.StatusServiceUnavailable, "The service is temporarily unavailable. Please try again."
}
