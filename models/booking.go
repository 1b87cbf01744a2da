package models

import "time"

// Booking represents a confirmed appointment record.
type Booking struct {
	ID             string    `bson:"id" json:"id"`                           // Unique booking identifier (UUID)
	OwnerID        string    `bson:"owner_id" json:"owner_id"`               // User who made the booking
	DepartmentID   string    `bson:"department_id" json:"department_id"`     // Department the visit belongs to
	PractitionerID string    `bson:"practitioner_id" json:"practitioner_id"` // Assigned doctor
	Practitioner   string    `bson:"practitioner" json:"practitioner"`       // Doctor display name, denormalized for listings
	Date           string    `bson:"date" json:"date"`                       // "YYYY-MM-DD"
	Time           string    `bson:"time" json:"time"`                       // "HH:MM", member of the slot catalog
	Purpose        string    `bson:"purpose" json:"purpose"`                 // Free-text visit purpose
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// BookingRequest carries the caller-supplied fields for creating or replacing
// a booking. PractitionerID is optional; when empty the engine auto-assigns.
type BookingRequest struct {
	DepartmentID   string `json:"department"`
	PractitionerID string `json:"practitioner_id,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Purpose        string `json:"purpose"`
}
