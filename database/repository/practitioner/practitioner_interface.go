package practitionerRepo

import (
	"context"
	"errors"

	"clinicbook/models"
)

// ErrDepartmentNotFound is returned when the department id itself is unknown.
// A known department with zero practitioners is a valid empty result.
var ErrDepartmentNotFound = errors.New("department not found")

// ErrPractitionerNotFound is returned when a practitioner id does not exist.
var ErrPractitionerNotFound = errors.New("practitioner not found")

// PractitionerRepository defines access to the clinic's practitioner directory.
type PractitionerRepository interface {
	// ListByDepartment returns the department's practitioners sorted
	// ascending by id. The order is load-bearing: auto-assignment breaks
	// ties by picking the first qualifying practitioner in this order.
	ListByDepartment(ctx context.Context, departmentID string) ([]models.Practitioner, error)
	// GetByID retrieves a single practitioner.
	GetByID(ctx context.Context, id string) (*models.Practitioner, error)
	// Create inserts a new practitioner record.
	Create(ctx context.Context, p *models.Practitioner) error
	// Delete removes a practitioner record by id.
	Delete(ctx context.Context, id string) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}
