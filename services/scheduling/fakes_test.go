package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
)

// fakePractitionerRepo is an in-memory PractitionerRepository.
type fakePractitionerRepo struct {
	practitioners []models.Practitioner
}

func (f *fakePractitionerRepo) ListByDepartment(_ context.Context, departmentID string) ([]models.Practitioner, error) {
	if _, ok := models.DepartmentByID(departmentID); !ok {
		return nil, practitionerRepo.ErrDepartmentNotFound
	}
	var out []models.Practitioner
	for _, p := range f.practitioners {
		if p.DepartmentID == departmentID {
			p.Schedules = models.NormalizeSchedules(p.Schedules)
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePractitionerRepo) GetByID(_ context.Context, id string) (*models.Practitioner, error) {
	for _, p := range f.practitioners {
		if p.ID == id {
			p.Schedules = models.NormalizeSchedules(p.Schedules)
			return &p, nil
		}
	}
	return nil, practitionerRepo.ErrPractitionerNotFound
}

func (f *fakePractitionerRepo) Create(_ context.Context, p *models.Practitioner) error {
	f.practitioners = append(f.practitioners, *p)
	return nil
}

func (f *fakePractitionerRepo) Delete(_ context.Context, id string) error {
	for i, p := range f.practitioners {
		if p.ID == id {
			f.practitioners = append(f.practitioners[:i], f.practitioners[i+1:]...)
			return nil
		}
	}
	return practitionerRepo.ErrPractitionerNotFound
}

func (f *fakePractitionerRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo is an in-memory BookingRepository that enforces the unique
// slot constraint in Create, mirroring the Mongo unique index.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	// hideFromChecks suppresses pre-write visibility of existing bookings,
	// simulating a concurrent writer that lands between the engine's check
	// and its write. The unique constraint in Create still fires.
	hideFromChecks bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.PractitionerID != "" {
		for _, existing := range f.bookings {
			if existing.DepartmentID == b.DepartmentID &&
				existing.PractitionerID == b.PractitionerID &&
				existing.Date == b.Date && existing.Time == b.Time {
				return bookingRepo.ErrDuplicateSlot
			}
		}
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, ownerID, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.OwnerID != ownerID {
		return false, nil
	}
	delete(f.bookings, id)
	return true, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, ownerID, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.OwnerID != ownerID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.bookings[id]
	return ok, nil
}

func (f *fakeBookingRepo) ExistsByDateTime(_ context.Context, departmentID, practitionerID, date, slotTime, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideFromChecks {
		return false, nil
	}
	for _, b := range f.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.DepartmentID == departmentID && b.PractitionerID == practitionerID &&
			b.Date == date && b.Time == slotTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) ListBookedTimes(_ context.Context, departmentID, practitionerID, date string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	taken := make(map[string]struct{})
	for _, b := range f.bookings {
		if b.DepartmentID == departmentID && b.PractitionerID == practitionerID && b.Date == date {
			taken[b.Time] = struct{}{}
		}
	}
	return taken, nil
}

func (f *fakeBookingRepo) ListBookedTimesBulk(_ context.Context, departmentID string, practitionerIDs, dates []string) (map[bookingRepo.SlotKey]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make(map[string]struct{}, len(practitionerIDs))
	for _, id := range practitionerIDs {
		ids[id] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[d] = struct{}{}
	}
	taken := make(map[bookingRepo.SlotKey]struct{})
	for _, b := range f.bookings {
		if b.DepartmentID != departmentID {
			continue
		}
		if _, ok := ids[b.PractitionerID]; !ok {
			continue
		}
		if _, ok := wanted[b.Date]; !ok {
			continue
		}
		taken[bookingRepo.SlotKey{PractitionerID: b.PractitionerID, Date: b.Date, Time: b.Time}] = struct{}{}
	}
	return taken, nil
}

func (f *fakeBookingRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (f *fakeBookingRepo) ListOwnerSlots(_ context.Context, ownerID, departmentID string, dates []string) (map[bookingRepo.OwnedSlot]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[d] = struct{}{}
	}
	owned := make(map[bookingRepo.OwnedSlot]struct{})
	for _, b := range f.bookings {
		if b.OwnerID != ownerID || b.DepartmentID != departmentID {
			continue
		}
		if _, ok := wanted[b.Date]; ok {
			owned[bookingRepo.OwnedSlot{Date: b.Date, Time: b.Time}] = struct{}{}
		}
	}
	return owned, nil
}

func (f *fakeBookingRepo) ExistsOwnerSlot(_ context.Context, ownerID, departmentID, date, slotTime, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.OwnerID == ownerID && b.DepartmentID == departmentID && b.Date == date && b.Time == slotTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) ListFromDate(_ context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date >= date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// newTestEngine wires an engine over the fakes with a fixed clock.
// 2026-02-02 is a Monday well before the test dates.
func newTestEngine(fp *fakePractitionerRepo, fb *fakeBookingRepo) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Practitioners: fp,
		Bookings:      fb,
		Cache:         NoopAvailabilityCache{},
		Now: func() time.Time {
			return time.Date(2026, 2, 2, 8, 0, 0, 0, time.Local)
		},
	}
}

// cardiologyStaff is the two-practitioner fixture used across tests: both
// work Monday 09:00, only doc1 also works 09:15.
func cardiologyStaff() *fakePractitionerRepo {
	return &fakePractitionerRepo{practitioners: []models.Practitioner{
		{
			ID:           "doc1",
			Name:         "Taro Yamada",
			DepartmentID: "cardiology",
			Schedules:    map[string][]string{"mon": {"09:00", "09:15"}},
		},
		{
			ID:           "doc2",
			Name:         "Hanako Sato",
			DepartmentID: "cardiology",
			Schedules:    map[string][]string{"mon": {"09:00"}},
		},
	}}
}
