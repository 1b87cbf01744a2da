package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The unique compound slot index is the hard guarantee behind double-booking
// prevention: concurrent creates for the same practitioner slot race to it
// and exactly one wins.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One booking per (department, practitioner, date, time). The partial
		// filter skips documents whose practitioner id is empty so that a
		// half-written record can never block real slots.
		{
			Keys: bson.D{
				{Key: "department_id", Value: 1},
				{Key: "practitioner_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_slot").
				SetPartialFilterExpression(bson.M{"practitioner_id": bson.M{"$gt": ""}}),
		},
		// Owner listing in (date, time) order.
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetName("owner_date_time_idx"),
		},
		// Bulk availability scans by department and date.
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("department_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
