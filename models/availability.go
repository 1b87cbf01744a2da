package models

// SlotStatus is the per-slot reservability flag surfaced to clients.
type SlotStatus struct {
	Time       string `json:"time"`
	Reservable bool   `json:"reservable"`
}

// DayAvailability is the full availability picture for one department/date.
// Reason is "holiday", "past", "closed" or empty when the day is open.
type DayAvailability struct {
	Date       string       `json:"date"`
	IsHoliday  bool         `json:"is_holiday"`
	Reservable bool         `json:"reservable"`
	Reason     string       `json:"reason,omitempty"`
	Slots      []SlotStatus `json:"slots"`

	// AssignableByTime maps each slot time to the practitioner the engine
	// would auto-assign, or nil when no practitioner qualifies. Not part of
	// the wire response; the commit path re-validates instead of trusting it.
	AssignableByTime map[string]*Practitioner `json:"-"`

	// PractitionerSlots reports, per practitioner id, which slot times are
	// individually available, for UIs that let the caller pick a named doctor.
	PractitionerSlots map[string]map[string]bool `json:"practitioner_slots,omitempty"`
}
