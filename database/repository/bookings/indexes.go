// FILE: database/repository/bookings/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingIndexModels lists the bookings indexes. The two partial unique
// indexes are what make reservations atomic: cancelled rows drop out of them.
func bookingIndexModels() []mongo.IndexModel {
	confirmedOnly := bson.M{"status": models.BookingStatusConfirmed}

	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One applicant per process, date and slot.
		{
			Keys: bson.D{{Key: "processId", Value: 1}, {Key: "date", Value: 1}, {Key: "slotId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(confirmedOnly).
				SetName("unique_process_date_slot"),
		},
		// One active booking per applicant and process.
		{
			Keys: bson.D{{Key: "processId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(confirmedOnly).
				SetName("unique_process_user"),
		},
	}
}

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIndexModels()); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
