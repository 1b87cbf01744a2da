package scheduling

import (
	"errors"
	"fmt"
)

// Error codes returned by the scheduling service.
const (
	CodeInvalidArgument  = "invalidArgument"  // malformed date/time/department
	CodeNotFound         = "notFound"         // unknown department or foreign booking id
	CodeOutOfSchedule    = "outOfSchedule"    // time not in the practitioner's working slots
	CodeSlotTaken        = "slotTaken"        // uniqueness violation, pre-write or store constraint
	CodeUnavailable      = "unavailable"      // holiday, weekend or past date
	CodeStoreUnavailable = "storeUnavailable" // collaborator I/O failure
)

// SchedulingError is the typed error surfaced by the engine and the booking
// transaction. SlotTaken is an expected, user-facing outcome, not a fault.
type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSchedulingError(code, msg string) error {
	return &SchedulingError{Code: code, Message: msg}
}

func NewSchedulingErrorf(code, format string, args ...any) error {
	return &SchedulingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the scheduling error code, or CodeStoreUnavailable for
// anything that is not a SchedulingError (I/O failures bubble up wrapped).
func CodeOf(err error) string {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeStoreUnavailable
}

// IsCode reports whether err carries the given scheduling error code.
func IsCode(err error, code string) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == code
}
