package scheduling

import (
	"fmt"
	"time"

	"clinicbook/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// allSlots is the fixed 15-minute slot grid, 09:00 through 16:45.
var allSlots = func() []string {
	slots := make([]string, 0, 32)
	for h := 9; h < 17; h++ {
		for _, m := range []int{0, 15, 30, 45} {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}()

var slotIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(allSlots))
	for _, s := range allSlots {
		idx[s] = struct{}{}
	}
	return idx
}()

// AllSlots returns the ordered bookable slot times for a working day.
// Zero-padded "HH:MM" strings sort lexicographically in chronological order.
func AllSlots() []string {
	out := make([]string, len(allSlots))
	copy(out, allSlots)
	return out
}

// IsValidSlot reports whether t is a member of the slot catalog.
func IsValidSlot(t string) bool {
	_, ok := slotIndex[t]
	return ok
}

// ParseDate parses a "YYYY-MM-DD" date in the clinic's local calendar.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// WeekdayKey maps a date to its schedule map key ("mon".."sun").
func WeekdayKey(date time.Time) string {
	return models.WeekdayKeys[(int(date.Weekday())+6)%7]
}
