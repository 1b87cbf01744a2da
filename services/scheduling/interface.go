package scheduling

import (
	"context"
	"time"

	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
)

// SchedulingEngine computes slot availability and runs the booking workflow.
type SchedulingEngine interface {
	// GetAvailability returns the day grid for one department/date. When
	// ownerID is non-empty, slots that owner already holds in the department
	// are reported unreservable.
	GetAvailability(ctx context.Context, departmentID, date, ownerID string) (*models.DayAvailability, error)
	// GetAvailabilityForDates is the bulk variant: one practitioner fetch
	// plus one booked-slot fetch for all requested dates.
	GetAvailabilityForDates(ctx context.Context, departmentID string, dates []string, ownerID string) ([]models.DayAvailability, error)
	// AssignablePractitioner finds the practitioner that would be
	// auto-assigned for a single slot, or nil when none qualifies. Always
	// queries the store fresh; the commit path depends on that.
	AssignablePractitioner(ctx context.Context, departmentID, date, slotTime string) (*models.Practitioner, error)

	// CreateBooking books a slot for the owner. When the request carries no
	// practitioner id, one is auto-assigned at commit time.
	CreateBooking(ctx context.Context, ownerID string, req models.BookingRequest) (*models.Booking, error)
	// ModifyBooking replaces an existing booking with new details under a
	// new id. The replacement is created before the original is cancelled,
	// so a failed modify never costs the caller their slot.
	ModifyBooking(ctx context.Context, ownerID, bookingID string, req models.BookingRequest) (*models.Booking, error)
	// CancelBooking deletes the owner's booking. Cancelling an id that is
	// already gone is a no-op success.
	CancelBooking(ctx context.Context, ownerID, bookingID string) error
	// ListBookings returns the owner's bookings ascending by (date, time).
	ListBookings(ctx context.Context, ownerID string) ([]models.Booking, error)
}

// DefaultSchedulingEngine is the production engine. Correctness under
// concurrent commits rests on the booking store's unique slot index; the
// engine's own checks exist to fail fast with a friendly error.
type DefaultSchedulingEngine struct {
	Practitioners practitionerRepo.PractitionerRepository
	Bookings      bookingRepo.BookingRepository
	Cache         AvailabilityCache
	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time
	// DemoSlots reports weekday morning slots as reservable for departments
	// with no seeded practitioners.
	DemoSlots bool
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}

func (se *DefaultSchedulingEngine) cache() AvailabilityCache {
	if se.Cache != nil {
		return se.Cache
	}
	return NoopAvailabilityCache{}
}
