package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (se *DefaultSchedulingEngine) CreateBooking(ctx context.Context, ownerID string, req models.BookingRequest) (*models.Booking, error) {
	return se.createBooking(ctx, ownerID, req, "")
}

// createBooking runs the commit path. excludeID names a booking of the same
// owner that uniqueness checks must ignore; ModifyBooking passes the booking
// being replaced so a caller can keep their own slot while changing fields.
//
// The pre-write checks here fail fast with friendly errors, but the store's
// unique slot index is what actually decides races: a concurrent winner
// surfaces as ErrDuplicateSlot from Create and is mapped to SlotTaken.
func (se *DefaultSchedulingEngine) createBooking(ctx context.Context, ownerID string, req models.BookingRequest, excludeID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	ownerID = strings.TrimSpace(ownerID)
	req.DepartmentID = strings.TrimSpace(req.DepartmentID)
	req.PractitionerID = strings.TrimSpace(req.PractitionerID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Purpose = strings.TrimSpace(req.Purpose)

	if ownerID == "" {
		return nil, NewSchedulingError(CodeInvalidArgument, "owner id is required")
	}
	if req.DepartmentID == "" || req.Date == "" || req.Time == "" {
		return nil, NewSchedulingError(CodeInvalidArgument, "department, date and time are required")
	}
	if _, ok := models.DepartmentByID(req.DepartmentID); !ok {
		return nil, NewSchedulingErrorf(CodeNotFound, "unknown department %q", req.DepartmentID)
	}
	day, err := ParseDate(req.Date)
	if err != nil {
		return nil, NewSchedulingErrorf(CodeInvalidArgument, "invalid date %q", req.Date)
	}
	if !IsValidSlot(req.Time) {
		return nil, NewSchedulingErrorf(CodeInvalidArgument, "invalid time %q", req.Time)
	}

	now := se.now()
	today := se.today()
	if day.Before(today) {
		return nil, NewSchedulingError(CodeUnavailable, "this date has already passed")
	}
	if day.Equal(today) && req.Time <= now.Format("15:04") {
		return nil, NewSchedulingError(CodeUnavailable, "this time has already passed")
	}
	if IsWeekend(day) || IsHoliday(day) {
		return nil, NewSchedulingError(CodeUnavailable, "the clinic is closed on this date")
	}

	// One appointment per owner per (department, date, time).
	dup, err := se.Bookings.ExistsOwnerSlot(ctx, ownerID, req.DepartmentID, req.Date, req.Time, excludeID)
	if err != nil {
		return nil, fmt.Errorf("booking: owner duplicate check failed: %w", err)
	}
	if dup {
		return nil, NewSchedulingError(CodeSlotTaken, "you already have an appointment at this time")
	}

	var assigned *models.Practitioner
	if req.PractitionerID != "" {
		assigned, err = se.resolveExplicitPractitioner(ctx, req, excludeID)
	} else {
		assigned, err = se.resolveAutoAssignment(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		DepartmentID: req.DepartmentID,
		Date:         req.Date,
		Time:         req.Time,
		Purpose:      req.Purpose,
		CreatedAt:    now,
	}
	if assigned != nil {
		booking.PractitionerID = assigned.ID
		booking.Practitioner = assigned.Name
	} else {
		// Demo fallback for unseeded departments.
		booking.PractitionerID = "demo"
		booking.Practitioner = "(auto-assigned)"
	}

	if err := se.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
			return nil, NewSchedulingError(CodeSlotTaken, "this time was just taken, please choose another")
		}
		return nil, fmt.Errorf("booking: create failed: %w", err)
	}

	se.cache().Invalidate(ctx, req.DepartmentID, req.Date)
	logger.Info("booking created",
		zap.String("id", booking.ID),
		zap.String("department", booking.DepartmentID),
		zap.String("practitioner", booking.PractitionerID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time))
	return booking, nil
}

// resolveExplicitPractitioner validates the caller-chosen practitioner:
// uniqueness first, then working-hours containment.
func (se *DefaultSchedulingEngine) resolveExplicitPractitioner(ctx context.Context, req models.BookingRequest, excludeID string) (*models.Practitioner, error) {
	p, err := se.Practitioners.GetByID(ctx, req.PractitionerID)
	if err != nil {
		if err == practitionerRepo.ErrPractitionerNotFound {
			return nil, NewSchedulingErrorf(CodeNotFound, "unknown practitioner %q", req.PractitionerID)
		}
		return nil, fmt.Errorf("booking: practitioner lookup failed: %w", err)
	}
	if p.DepartmentID != req.DepartmentID {
		return nil, NewSchedulingErrorf(CodeNotFound, "practitioner %q does not belong to department %q", p.ID, req.DepartmentID)
	}

	taken, err := se.Bookings.ExistsByDateTime(ctx, req.DepartmentID, p.ID, req.Date, req.Time, excludeID)
	if err != nil {
		return nil, fmt.Errorf("booking: slot check failed: %w", err)
	}
	if taken {
		return nil, NewSchedulingError(CodeSlotTaken, "this practitioner is already booked at this time")
	}

	day, _ := ParseDate(req.Date)
	if !p.WorksAt(WeekdayKey(day), req.Time) {
		return nil, NewSchedulingErrorf(CodeOutOfSchedule, "practitioner %q does not work at %s on this day", p.ID, req.Time)
	}
	return p, nil
}

// resolveAutoAssignment re-runs the assignable scan immediately before the
// write, never from cache. A nil practitioner with demo slots enabled falls
// back to the demo assignee; otherwise the slot is reported taken.
func (se *DefaultSchedulingEngine) resolveAutoAssignment(ctx context.Context, req models.BookingRequest) (*models.Practitioner, error) {
	p, err := se.AssignablePractitioner(ctx, req.DepartmentID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if se.DemoSlots && demoReservable(req.Time) {
		practitioners, err := se.Practitioners.ListByDepartment(ctx, req.DepartmentID)
		if err == nil && len(practitioners) == 0 {
			return nil, nil
		}
	}
	return nil, NewSchedulingError(CodeSlotTaken, "no practitioner is available at this time, please choose another")
}

func (se *DefaultSchedulingEngine) ModifyBooking(ctx context.Context, ownerID, bookingID string, req models.BookingRequest) (*models.Booking, error) {
	old, err := se.Bookings.GetByID(ctx, ownerID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewSchedulingErrorf(CodeNotFound, "booking %q not found", bookingID)
		}
		return nil, fmt.Errorf("modify: lookup failed: %w", err)
	}

	sameSlot := req.DepartmentID == old.DepartmentID && req.Date == old.Date && req.Time == old.Time
	if sameSlot {
		// The unique index cannot exclude the old record, so a same-slot
		// change must release it before the replacement is written. Keep the
		// assigned practitioner so the re-check targets the same tuple.
		if req.PractitionerID == "" {
			req.PractitionerID = old.PractitionerID
		}
		if err := se.CancelBooking(ctx, ownerID, bookingID); err != nil {
			return nil, err
		}
		return se.createBooking(ctx, ownerID, req, "")
	}

	// Slot change: commit the replacement first; the original is released
	// only once the new booking exists, so a failed create never costs the
	// caller their current appointment.
	replacement, err := se.createBooking(ctx, ownerID, req, old.ID)
	if err != nil {
		return nil, err
	}
	if err := se.CancelBooking(ctx, ownerID, bookingID); err != nil {
		// The replacement is committed; the stale original is the lesser
		// problem and is logged for the reconciliation worker.
		utils.GetLogger().Error("modify: failed to release replaced booking",
			zap.String("old", bookingID), zap.String("new", replacement.ID), zap.Error(err))
	}
	return replacement, nil
}

func (se *DefaultSchedulingEngine) CancelBooking(ctx context.Context, ownerID, bookingID string) error {
	ownerID = strings.TrimSpace(ownerID)
	bookingID = strings.TrimSpace(bookingID)
	if ownerID == "" || bookingID == "" {
		return NewSchedulingError(CodeInvalidArgument, "owner id and booking id are required")
	}

	booking, err := se.Bookings.GetByID(ctx, ownerID, bookingID)
	if err != nil {
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("cancel: lookup failed: %w", err)
		}
		// Distinguish someone else's booking from an already-gone one:
		// the former is NotFound, the latter an idempotent success.
		exists, exErr := se.Bookings.ExistsByID(ctx, bookingID)
		if exErr != nil {
			return fmt.Errorf("cancel: existence check failed: %w", exErr)
		}
		if exists {
			return NewSchedulingErrorf(CodeNotFound, "booking %q not found", bookingID)
		}
		return nil
	}

	deleted, err := se.Bookings.Delete(ctx, ownerID, bookingID)
	if err != nil {
		return fmt.Errorf("cancel: delete failed: %w", err)
	}
	if deleted {
		se.cache().Invalidate(ctx, booking.DepartmentID, booking.Date)
		utils.GetLogger().Info("booking cancelled",
			zap.String("id", bookingID),
			zap.String("department", booking.DepartmentID),
			zap.String("date", booking.Date),
			zap.String("time", booking.Time))
	}
	return nil
}

func (se *DefaultSchedulingEngine) ListBookings(ctx context.Context, ownerID string) ([]models.Booking, error) {
	bookings, err := se.Bookings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return bookings, nil
}

var _ SchedulingEngine = (*DefaultSchedulingEngine)(nil)
