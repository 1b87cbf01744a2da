package scheduling

import (
	"context"
	"fmt"
	"time"

	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Availability reasons surfaced to clients.
const (
	ReasonHoliday = "holiday"
	ReasonPast    = "past"
	ReasonClosed  = "closed"
)

func allUnreservable() []models.SlotStatus {
	slots := AllSlots()
	out := make([]models.SlotStatus, len(slots))
	for i, t := range slots {
		out[i] = models.SlotStatus{Time: t, Reservable: false}
	}
	return out
}

func closedDay(date, reason string, isHoliday bool) models.DayAvailability {
	return models.DayAvailability{
		Date:      date,
		IsHoliday: isHoliday,
		Reason:    reason,
		Slots:     allUnreservable(),
	}
}

func (se *DefaultSchedulingEngine) GetAvailability(ctx context.Context, departmentID, date, ownerID string) (*models.DayAvailability, error) {
	if avail, ok := se.cache().Get(ctx, departmentID, date); ok {
		return se.applyOwnerOverlay(ctx, avail, departmentID, ownerID)
	}

	results, err := se.computeAvailability(ctx, departmentID, []string{date}, "")
	if err != nil {
		return nil, err
	}
	avail := &results[0]
	se.cache().Set(ctx, departmentID, date, avail)
	return se.applyOwnerOverlay(ctx, avail, departmentID, ownerID)
}

func (se *DefaultSchedulingEngine) GetAvailabilityForDates(ctx context.Context, departmentID string, dates []string, ownerID string) ([]models.DayAvailability, error) {
	return se.computeAvailability(ctx, departmentID, dates, ownerID)
}

// computeAvailability builds the availability picture for every requested
// date with one practitioner fetch and one bulk booked-slot fetch. Closed
// days (past, malformed, weekend, holiday) are decided before any store I/O.
func (se *DefaultSchedulingEngine) computeAvailability(ctx context.Context, departmentID string, dates []string, ownerID string) ([]models.DayAvailability, error) {
	logger := utils.GetLogger()
	today := se.today()

	results := make(map[string]models.DayAvailability, len(dates))
	var open []string
	for _, date := range dates {
		day, err := ParseDate(date)
		if err != nil {
			results[date] = closedDay(date, ReasonClosed, false)
			continue
		}
		if day.Before(today) {
			results[date] = closedDay(date, ReasonPast, false)
			continue
		}
		if IsWeekend(day) || IsHoliday(day) {
			results[date] = closedDay(date, ReasonHoliday, true)
			continue
		}
		open = append(open, date)
	}

	if len(open) > 0 {
		practitioners, err := se.Practitioners.ListByDepartment(ctx, departmentID)
		if err != nil {
			if err == practitionerRepo.ErrDepartmentNotFound {
				return nil, NewSchedulingErrorf(CodeNotFound, "unknown department %q", departmentID)
			}
			return nil, fmt.Errorf("availability: practitioner lookup failed: %w", err)
		}

		if len(practitioners) == 0 {
			for _, date := range open {
				results[date] = se.emptyDepartmentDay(date)
			}
		} else {
			ids := make([]string, len(practitioners))
			for i, p := range practitioners {
				ids[i] = p.ID
			}
			taken, err := se.Bookings.ListBookedTimesBulk(ctx, departmentID, ids, open)
			if err != nil {
				return nil, fmt.Errorf("availability: booked-slot lookup failed: %w", err)
			}

			var owned map[bookingRepo.OwnedSlot]struct{}
			if ownerID != "" {
				owned, err = se.Bookings.ListOwnerSlots(ctx, ownerID, departmentID, open)
				if err != nil {
					logger.Warn("availability: owner slot lookup failed",
						zap.String("owner", ownerID), zap.Error(err))
					owned = nil
				}
			}

			for _, date := range open {
				results[date] = se.buildDay(date, practitioners, taken, owned)
			}
		}
	}

	out := make([]models.DayAvailability, len(dates))
	for i, date := range dates {
		out[i] = results[date]
	}
	return out, nil
}

// buildDay merges practitioner schedules and taken slots into the per-slot
// grid for one open day. For each slot, practitioners are scanned in
// ascending id order; the first one working and unbooked wins the assignment.
func (se *DefaultSchedulingEngine) buildDay(date string, practitioners []models.Practitioner, taken map[bookingRepo.SlotKey]struct{}, owned map[bookingRepo.OwnedSlot]struct{}) models.DayAvailability {
	day, _ := ParseDate(date)
	weekday := WeekdayKey(day)

	slots := AllSlots()
	statuses := make([]models.SlotStatus, len(slots))
	assignable := make(map[string]*models.Practitioner, len(slots))
	grid := make(map[string]map[string]bool, len(practitioners))
	for i := range practitioners {
		grid[practitioners[i].ID] = make(map[string]bool, len(slots))
	}

	anyOpen := false
	for i, t := range slots {
		var assigned *models.Practitioner
		for j := range practitioners {
			p := &practitioners[j]
			free := p.WorksAt(weekday, t)
			if free {
				_, booked := taken[bookingRepo.SlotKey{PractitionerID: p.ID, Date: date, Time: t}]
				free = !booked
			}
			grid[p.ID][t] = free
			if free && assigned == nil {
				assigned = p
			}
		}

		reservable := assigned != nil
		if reservable && owned != nil {
			if _, dup := owned[bookingRepo.OwnedSlot{Date: date, Time: t}]; dup {
				reservable = false
			}
		}
		statuses[i] = models.SlotStatus{Time: t, Reservable: reservable}
		if reservable {
			assignable[t] = assigned
			anyOpen = true
		} else {
			assignable[t] = nil
		}
	}

	return models.DayAvailability{
		Date:              date,
		Reservable:        anyOpen,
		Slots:             statuses,
		AssignableByTime:  assignable,
		PractitionerSlots: grid,
	}
}

// emptyDepartmentDay handles departments with no seeded practitioners. With
// demo slots enabled, weekday morning slots are reported open so the booking
// flow can be exercised before seeding.
func (se *DefaultSchedulingEngine) emptyDepartmentDay(date string) models.DayAvailability {
	if !se.DemoSlots {
		return models.DayAvailability{Date: date, Slots: allUnreservable()}
	}
	slots := AllSlots()
	statuses := make([]models.SlotStatus, len(slots))
	anyOpen := false
	for i, t := range slots {
		ok := demoReservable(t)
		statuses[i] = models.SlotStatus{Time: t, Reservable: ok}
		anyOpen = anyOpen || ok
	}
	return models.DayAvailability{Date: date, Reservable: anyOpen, Slots: statuses}
}

// demoReservable opens the 09:00-11:45 range on otherwise open days.
func demoReservable(slotTime string) bool {
	return slotTime < "12:00"
}

// AssignablePractitioner scans the department's practitioners in id order and
// returns the first one working and unbooked at the slot, or nil when no one
// qualifies. The scan always hits the store so the commit path can trust it.
func (se *DefaultSchedulingEngine) AssignablePractitioner(ctx context.Context, departmentID, date, slotTime string) (*models.Practitioner, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, NewSchedulingErrorf(CodeInvalidArgument, "invalid date %q", date)
	}
	if !IsValidSlot(slotTime) {
		return nil, NewSchedulingErrorf(CodeInvalidArgument, "invalid time %q", slotTime)
	}
	if IsWeekend(day) || IsHoliday(day) {
		return nil, NewSchedulingError(CodeUnavailable, "the clinic is closed on this date")
	}

	practitioners, err := se.Practitioners.ListByDepartment(ctx, departmentID)
	if err != nil {
		if err == practitionerRepo.ErrDepartmentNotFound {
			return nil, NewSchedulingErrorf(CodeNotFound, "unknown department %q", departmentID)
		}
		return nil, fmt.Errorf("assignment: practitioner lookup failed: %w", err)
	}

	weekday := WeekdayKey(day)
	for i := range practitioners {
		p := &practitioners[i]
		if !p.WorksAt(weekday, slotTime) {
			continue
		}
		booked, err := se.Bookings.ExistsByDateTime(ctx, departmentID, p.ID, date, slotTime, "")
		if err != nil {
			return nil, fmt.Errorf("assignment: booked check failed: %w", err)
		}
		if !booked {
			return p, nil
		}
	}
	return nil, nil
}

// applyOwnerOverlay marks slots the owner already holds as unreservable on a
// copy of the (possibly cached) availability snapshot.
func (se *DefaultSchedulingEngine) applyOwnerOverlay(ctx context.Context, avail *models.DayAvailability, departmentID, ownerID string) (*models.DayAvailability, error) {
	if ownerID == "" || !avail.Reservable {
		return avail, nil
	}
	owned, err := se.Bookings.ListOwnerSlots(ctx, ownerID, departmentID, []string{avail.Date})
	if err != nil {
		utils.GetLogger().Warn("availability: owner overlay lookup failed",
			zap.String("owner", ownerID), zap.Error(err))
		return avail, nil
	}
	if len(owned) == 0 {
		return avail, nil
	}

	out := *avail
	out.Slots = make([]models.SlotStatus, len(avail.Slots))
	copy(out.Slots, avail.Slots)
	anyOpen := false
	for i := range out.Slots {
		if _, dup := owned[bookingRepo.OwnedSlot{Date: avail.Date, Time: out.Slots[i].Time}]; dup {
			out.Slots[i].Reservable = false
		}
		anyOpen = anyOpen || out.Slots[i].Reservable
	}
	out.Reservable = anyOpen
	return &out, nil
}

// today returns midnight of the current local day.
func (se *DefaultSchedulingEngine) today() time.Time {
	now := se.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
