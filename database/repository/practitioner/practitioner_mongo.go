package practitionerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPractitionerRepo implements PractitionerRepository using MongoDB.
type MongoPractitionerRepo struct {
	coll *mongo.Collection
}

// NewMongoPractitionerRepo creates a PractitionerRepository backed by the
// "practitioners" collection.
func NewMongoPractitionerRepo() PractitionerRepository {
	coll := database.MongoClient.Database(config.AppConfig.MongoDBName).Collection("practitioners")
	return &MongoPractitionerRepo{coll: coll}
}

func (r *MongoPractitionerRepo) ListByDepartment(ctx context.Context, departmentID string) ([]models.Practitioner, error) {
	if _, ok := models.DepartmentByID(departmentID); !ok {
		return nil, ErrDepartmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"department_id": departmentID}
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list practitioners for department %s: %w", departmentID, err)
	}
	defer cursor.Close(ctx)

	var practitioners []models.Practitioner
	if err := cursor.All(ctx, &practitioners); err != nil {
		return nil, fmt.Errorf("failed to decode practitioners: %w", err)
	}
	for i := range practitioners {
		practitioners[i].Schedules = models.NormalizeSchedules(practitioners[i].Schedules)
	}
	return practitioners, nil
}

func (r *MongoPractitionerRepo) GetByID(ctx context.Context, id string) (*models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Practitioner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPractitionerNotFound
		}
		return nil, fmt.Errorf("failed to fetch practitioner %s: %w", id, err)
	}
	p.Schedules = models.NormalizeSchedules(p.Schedules)
	return &p, nil
}

func (r *MongoPractitionerRepo) Create(ctx context.Context, p *models.Practitioner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.Schedules = models.NormalizeSchedules(p.Schedules)
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert practitioner %s: %w", p.ID, err)
	}
	return nil
}

func (r *MongoPractitionerRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete practitioner %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPractitionerNotFound
	}
	return nil
}
