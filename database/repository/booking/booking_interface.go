package bookingRepo

import (
	"context"
	"errors"

	"clinicbook/models"
)

// ErrDuplicateSlot is returned by Create when the unique index on
// (department_id, practitioner_id, date, time) rejects the write. This index
// is the authoritative guard against double-booking; every pre-write check in
// the service layer is only a fast-fail optimization.
var ErrDuplicateSlot = errors.New("slot already booked")

// ErrBookingNotFound is returned when a booking id does not exist for the owner.
var ErrBookingNotFound = errors.New("booking not found")

// SlotKey identifies one booked practitioner slot.
type SlotKey struct {
	PractitionerID string
	Date           string
	Time           string
}

// OwnedSlot identifies a (date, time) pair booked by an owner in a department.
type OwnedSlot struct {
	Date string
	Time string
}

// BookingRepository defines access to appointment bookings. Bookings are
// physically scoped under their owner but discoverable cross-owner by
// (department, practitioner, date) for uniqueness checks.
type BookingRepository interface {
	// Create inserts the booking; returns ErrDuplicateSlot on a uniqueness
	// constraint violation.
	Create(ctx context.Context, b *models.Booking) error
	// Delete removes the owner's booking; reports whether a document was
	// actually removed. Deleting an absent id is not an error.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
	// GetByID retrieves the owner's booking; ErrBookingNotFound if absent.
	GetByID(ctx context.Context, ownerID, id string) (*models.Booking, error)
	// ExistsByID reports whether a booking with the id exists for any owner.
	// Used to distinguish "already gone" from "belongs to someone else".
	ExistsByID(ctx context.Context, id string) (bool, error)
	// ExistsByDateTime reports whether any booking occupies the slot,
	// ignoring the booking with excludeID (empty string excludes nothing).
	ExistsByDateTime(ctx context.Context, departmentID, practitionerID, date, time, excludeID string) (bool, error)
	// ListBookedTimes returns the set of taken times for one practitioner/date.
	ListBookedTimes(ctx context.Context, departmentID, practitionerID, date string) (map[string]struct{}, error)
	// ListBookedTimesBulk returns every taken (practitioner, date, time) for
	// the given practitioners and dates in a single query.
	ListBookedTimesBulk(ctx context.Context, departmentID string, practitionerIDs, dates []string) (map[SlotKey]struct{}, error)
	// ListByOwner returns the owner's bookings ascending by (date, time).
	ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	// ListOwnerSlots returns the (date, time) pairs the owner already holds
	// in the department on the given dates, for the duplicate-booking guard.
	ListOwnerSlots(ctx context.Context, ownerID, departmentID string, dates []string) (map[OwnedSlot]struct{}, error)
	// ExistsOwnerSlot reports whether the owner already holds the exact
	// (department, date, time), ignoring the booking with excludeID.
	ExistsOwnerSlot(ctx context.Context, ownerID, departmentID, date, time, excludeID string) (bool, error)
	// ListFromDate returns all bookings on or after the given date, for the
	// reconciliation worker.
	ListFromDate(ctx context.Context, date string) ([]models.Booking, error)
	// EnsureIndexes creates the collection's indexes, including the unique
	// compound slot index.
	EnsureIndexes() error
}
