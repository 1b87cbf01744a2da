package models

// WeekdayKeys are the schedule map keys in time.Weekday order starting from Monday.
var WeekdayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Practitioner represents a doctor attached to a clinic department.
type Practitioner struct {
	ID           string              `bson:"id" json:"id"`                       // Unique practitioner identifier
	Name         string              `bson:"name" json:"name"`                   // Display name
	DepartmentID string              `bson:"department_id" json:"department_id"` // Owning department
	Schedules    map[string][]string `bson:"schedules" json:"schedules"`         // Weekday key ("mon".."sun") -> working slot times ("HH:MM")
}

// NormalizeSchedules returns a schedule map that contains every weekday key,
// with nil or missing entries replaced by an empty list. A missing key means
// "not working that day", never "unknown".
func NormalizeSchedules(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(WeekdayKeys))
	for _, key := range WeekdayKeys {
		if slots, ok := in[key]; ok && slots != nil {
			out[key] = slots
		} else {
			out[key] = []string{}
		}
	}
	return out
}

// WorksAt reports whether the practitioner is scheduled to work at the given
// weekday key and slot time.
func (p *Practitioner) WorksAt(weekdayKey, slot string) bool {
	for _, s := range p.Schedules[weekdayKey] {
		if s == slot {
			return true
		}
	}
	return false
}
