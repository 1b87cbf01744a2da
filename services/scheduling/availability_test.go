package scheduling

import (
	"context"
	"testing"
	"time"

	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openMonday = "2026-02-09"

func slotByTime(t *testing.T, day *models.DayAvailability, slotTime string) models.SlotStatus {
	t.Helper()
	for _, s := range day.Slots {
		if s.Time == slotTime {
			return s
		}
	}
	t.Fatalf("slot %s not present", slotTime)
	return models.SlotStatus{}
}

func TestGetAvailabilityOpenDay(t *testing.T) {
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())

	day, err := engine.GetAvailability(context.Background(), "cardiology", openMonday, "")
	require.NoError(t, err)
	require.Len(t, day.Slots, 32)
	assert.True(t, day.Reservable)
	assert.False(t, day.IsHoliday)

	t.Run("only scheduled slots are reservable", func(t *testing.T) {
		for _, s := range day.Slots {
			want := s.Time == "09:00" || s.Time == "09:15"
			assert.Equal(t, want, s.Reservable, "slot %s", s.Time)
		}
	})

	t.Run("lowest id wins the assignment", func(t *testing.T) {
		require.NotNil(t, day.AssignableByTime["09:00"])
		assert.Equal(t, "doc1", day.AssignableByTime["09:00"].ID)
		require.NotNil(t, day.AssignableByTime["09:15"])
		assert.Equal(t, "doc1", day.AssignableByTime["09:15"].ID)
		assert.Nil(t, day.AssignableByTime["09:30"])
	})

	t.Run("per-practitioner grid", func(t *testing.T) {
		require.Contains(t, day.PractitionerSlots, "doc1")
		require.Contains(t, day.PractitionerSlots, "doc2")
		assert.True(t, day.PractitionerSlots["doc1"]["09:00"])
		assert.True(t, day.PractitionerSlots["doc1"]["09:15"])
		assert.True(t, day.PractitionerSlots["doc2"]["09:00"])
		assert.False(t, day.PractitionerSlots["doc2"]["09:15"])
	})
}

func TestGetAvailabilityBookingShiftsAssignment(t *testing.T) {
	fb := newFakeBookingRepo()
	engine := newTestEngine(cardiologyStaff(), fb)
	ctx := context.Background()

	_, err := engine.CreateBooking(ctx, "owner-a", models.BookingRequest{
		DepartmentID: "cardiology", PractitionerID: "doc1", Date: openMonday, Time: "09:00",
	})
	require.NoError(t, err)

	day, err := engine.GetAvailability(ctx, "cardiology", openMonday, "")
	require.NoError(t, err)

	// doc1 is booked at 09:00 so doc2 takes over; 09:15 stays with doc1.
	assert.True(t, slotByTime(t, day, "09:00").Reservable)
	require.NotNil(t, day.AssignableByTime["09:00"])
	assert.Equal(t, "doc2", day.AssignableByTime["09:00"].ID)
	assert.Equal(t, "doc1", day.AssignableByTime["09:15"].ID)
	assert.False(t, day.PractitionerSlots["doc1"]["09:00"])
	assert.True(t, day.PractitionerSlots["doc2"]["09:00"])

	t.Run("fully booked slot closes", func(t *testing.T) {
		_, err := engine.CreateBooking(ctx, "owner-b", models.BookingRequest{
			DepartmentID: "cardiology", Date: openMonday, Time: "09:00",
		})
		require.NoError(t, err)

		day, err := engine.GetAvailability(ctx, "cardiology", openMonday, "")
		require.NoError(t, err)
		assert.False(t, slotByTime(t, day, "09:00").Reservable)
		assert.Nil(t, day.AssignableByTime["09:00"])
		assert.True(t, slotByTime(t, day, "09:15").Reservable)
	})
}

func TestGetAvailabilityClosedDays(t *testing.T) {
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())
	ctx := context.Background()

	cases := []struct {
		name      string
		date      string
		reason    string
		isHoliday bool
	}{
		{"national holiday", "2026-01-01", ReasonHoliday, true},
		{"happy monday", "2026-10-12", ReasonHoliday, true},
		{"saturday", "2026-02-07", ReasonHoliday, true},
		{"sunday", "2026-02-08", ReasonHoliday, true},
		{"past date", "2026-01-30", ReasonPast, false},
		{"malformed date", "2026-2-9", ReasonClosed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := engine.GetAvailability(ctx, "cardiology", tc.date, "")
			require.NoError(t, err)
			assert.False(t, day.Reservable)
			assert.Equal(t, tc.isHoliday, day.IsHoliday)
			assert.Equal(t, tc.reason, day.Reason)
			require.Len(t, day.Slots, 32)
			for _, s := range day.Slots {
				assert.False(t, s.Reservable, "slot %s", s.Time)
			}
		})
	}
}

func TestGetAvailabilityUnknownDepartment(t *testing.T) {
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())

	_, err := engine.GetAvailability(context.Background(), "astrology", openMonday, "")
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestGetAvailabilityEmptyDepartment(t *testing.T) {
	t.Run("demo slots open weekday mornings", func(t *testing.T) {
		engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())
		engine.DemoSlots = true

		day, err := engine.GetAvailability(context.Background(), "dermatology", openMonday, "")
		require.NoError(t, err)
		assert.True(t, day.Reservable)
		assert.True(t, slotByTime(t, day, "09:00").Reservable)
		assert.True(t, slotByTime(t, day, "11:45").Reservable)
		assert.False(t, slotByTime(t, day, "12:00").Reservable)
		assert.False(t, slotByTime(t, day, "16:45").Reservable)
	})

	t.Run("without demo slots everything is closed", func(t *testing.T) {
		engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())

		day, err := engine.GetAvailability(context.Background(), "dermatology", openMonday, "")
		require.NoError(t, err)
		assert.False(t, day.Reservable)
		for _, s := range day.Slots {
			assert.False(t, s.Reservable)
		}
	})
}

func TestGetAvailabilityOwnerOverlay(t *testing.T) {
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())
	ctx := context.Background()

	_, err := engine.CreateBooking(ctx, "owner-a", models.BookingRequest{
		DepartmentID: "cardiology", PractitionerID: "doc1", Date: openMonday, Time: "09:00",
	})
	require.NoError(t, err)

	t.Run("anonymous view keeps the slot open via doc2", func(t *testing.T) {
		day, err := engine.GetAvailability(ctx, "cardiology", openMonday, "")
		require.NoError(t, err)
		assert.True(t, slotByTime(t, day, "09:00").Reservable)
	})

	t.Run("owner sees their own slot closed", func(t *testing.T) {
		day, err := engine.GetAvailability(ctx, "cardiology", openMonday, "owner-a")
		require.NoError(t, err)
		assert.False(t, slotByTime(t, day, "09:00").Reservable)
		assert.True(t, slotByTime(t, day, "09:15").Reservable)
	})

	t.Run("other owners are unaffected", func(t *testing.T) {
		day, err := engine.GetAvailability(ctx, "cardiology", openMonday, "owner-b")
		require.NoError(t, err)
		assert.True(t, slotByTime(t, day, "09:00").Reservable)
	})
}

func TestGetAvailabilityForDates(t *testing.T) {
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())

	dates := []string{"2026-02-09", "2026-02-10", "2026-02-11", "2026-02-14"}
	days, err := engine.GetAvailabilityForDates(context.Background(), "cardiology", dates, "")
	require.NoError(t, err)
	require.Len(t, days, len(dates))

	// Order must follow the request, not the triage.
	for i, d := range dates {
		assert.Equal(t, d, days[i].Date)
	}
	assert.True(t, days[0].Reservable)   // monday with schedules
	assert.False(t, days[1].Reservable)  // tuesday, nobody scheduled
	assert.False(t, days[3].Reservable)  // saturday
	assert.True(t, days[3].IsHoliday)
}

func TestAssignablePractitioner(t *testing.T) {
	fb := newFakeBookingRepo()
	engine := newTestEngine(cardiologyStaff(), fb)
	ctx := context.Background()

	t.Run("prefers the lowest id", func(t *testing.T) {
		p, err := engine.AssignablePractitioner(ctx, "cardiology", openMonday, "09:00")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "doc1", p.ID)
	})

	t.Run("skips booked practitioners", func(t *testing.T) {
		fb.bookings["b1"] = models.Booking{
			ID: "b1", OwnerID: "owner-a", DepartmentID: "cardiology",
			PractitionerID: "doc1", Date: openMonday, Time: "09:00",
		}
		p, err := engine.AssignablePractitioner(ctx, "cardiology", openMonday, "09:00")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "doc2", p.ID)
	})

	t.Run("nil when everyone is booked or off", func(t *testing.T) {
		fb.bookings["b2"] = models.Booking{
			ID: "b2", OwnerID: "owner-b", DepartmentID: "cardiology",
			PractitionerID: "doc2", Date: openMonday, Time: "09:00",
		}
		p, err := engine.AssignablePractitioner(ctx, "cardiology", openMonday, "09:00")
		require.NoError(t, err)
		assert.Nil(t, p)

		p, err = engine.AssignablePractitioner(ctx, "cardiology", openMonday, "14:00")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("closed date is unavailable", func(t *testing.T) {
		_, err := engine.AssignablePractitioner(ctx, "cardiology", "2026-01-01", "09:00")
		assert.True(t, IsCode(err, CodeUnavailable))
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := engine.AssignablePractitioner(ctx, "cardiology", "garbage", "09:00")
		assert.True(t, IsCode(err, CodeInvalidArgument))
		_, err = engine.AssignablePractitioner(ctx, "cardiology", openMonday, "09:05")
		assert.True(t, IsCode(err, CodeInvalidArgument))
	})
}

// recordingCache verifies the single-date path reads through and invalidates.
type recordingCache struct {
	store       map[string]*models.DayAvailability
	hits, sets  int
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: make(map[string]*models.DayAvailability)}
}

func (c *recordingCache) Get(_ context.Context, departmentID, date string) (*models.DayAvailability, bool) {
	v, ok := c.store[departmentID+"/"+date]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *recordingCache) Set(_ context.Context, departmentID, date string, avail *models.DayAvailability) {
	c.sets++
	c.store[departmentID+"/"+date] = avail
}

func (c *recordingCache) Invalidate(_ context.Context, departmentID, date string) {
	c.invalidated = append(c.invalidated, departmentID+"/"+date)
	delete(c.store, departmentID+"/"+date)
}

func TestAvailabilityCacheFlow(t *testing.T) {
	cache := newRecordingCache()
	engine := newTestEngine(cardiologyStaff(), newFakeBookingRepo())
	engine.Cache = cache
	engine.Now = func() time.Time { return time.Date(2026, 2, 2, 8, 0, 0, 0, time.Local) }
	ctx := context.Background()

	_, err := engine.GetAvailability(ctx, "cardiology", openMonday, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	_, err = engine.GetAvailability(ctx, "cardiology", openMonday, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	t.Run("create invalidates the date", func(t *testing.T) {
		_, err := engine.CreateBooking(ctx, "owner-a", models.BookingRequest{
			DepartmentID: "cardiology", Date: openMonday, Time: "09:00",
		})
		require.NoError(t, err)
		assert.Contains(t, cache.invalidated, "cardiology/"+openMonday)
	})
}
