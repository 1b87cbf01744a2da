package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) ExistsByDateTime(ctx context.Context, departmentID, practitionerID, date, slotTime, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"department_id":   departmentID,
		"practitioner_id": practitionerID,
		"date":            date,
		"time":            slotTime,
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot %s/%s %s %s: %w", departmentID, practitionerID, date, slotTime, err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) ListBookedTimes(ctx context.Context, departmentID, practitionerID, date string) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"department_id":   departmentID,
		"practitioner_id": practitionerID,
		"date":            date,
	}
	opts := options.Find().SetProjection(bson.M{"time": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked times for %s/%s on %s: %w", departmentID, practitionerID, date, err)
	}
	defer cursor.Close(ctx)

	taken := make(map[string]struct{})
	var row struct {
		Time string `bson:"time"`
	}
	for cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booked time: %w", err)
		}
		taken[row.Time] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booked times cursor failed: %w", err)
	}
	return taken, nil
}

func (r *MongoBookingRepo) ListBookedTimesBulk(ctx context.Context, departmentID string, practitionerIDs, dates []string) (map[SlotKey]struct{}, error) {
	taken := make(map[SlotKey]struct{})
	if len(practitionerIDs) == 0 || len(dates) == 0 {
		return taken, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"department_id":   departmentID,
		"practitioner_id": bson.M{"$in": practitionerIDs},
		"date":            bson.M{"$in": dates},
	}
	opts := options.Find().SetProjection(bson.M{"practitioner_id": 1, "date": 1, "time": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk-list booked times for %s: %w", departmentID, err)
	}
	defer cursor.Close(ctx)

	var row struct {
		PractitionerID string `bson:"practitioner_id"`
		Date           string `bson:"date"`
		Time           string `bson:"time"`
	}
	for cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booked slot: %w", err)
		}
		taken[SlotKey{PractitionerID: row.PractitionerID, Date: row.Date, Time: row.Time}] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("bulk booked times cursor failed: %w", err)
	}
	return taken, nil
}

func (r *MongoBookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListOwnerSlots(ctx context.Context, ownerID, departmentID string, dates []string) (map[OwnedSlot]struct{}, error) {
	owned := make(map[OwnedSlot]struct{})
	if ownerID == "" || len(dates) == 0 {
		return owned, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"owner_id":      ownerID,
		"department_id": departmentID,
		"date":          bson.M{"$in": dates},
	}
	opts := options.Find().SetProjection(bson.M{"date": 1, "time": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner slots for %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var row struct {
		Date string `bson:"date"`
		Time string `bson:"time"`
	}
	for cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode owner slot: %w", err)
		}
		owned[OwnedSlot{Date: row.Date, Time: row.Time}] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("owner slots cursor failed: %w", err)
	}
	return owned, nil
}

func (r *MongoBookingRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check booking %s: %w", id, err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) ExistsOwnerSlot(ctx context.Context, ownerID, departmentID, date, slotTime, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"owner_id":      ownerID,
		"department_id": departmentID,
		"date":          date,
		"time":          slotTime,
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check owner slot for %s: %w", ownerID, err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) ListFromDate(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": bson.M{"$gte": date}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings from %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
