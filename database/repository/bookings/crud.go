// File: database/repository/bookings/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts the booking. Uniqueness is enforced by the partial indexes,
// so two concurrent inserts for the same slot cannot both succeed.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	return database.TranslateWriteError("insert booking", err)
}

func (r *mongoBookingRepo) Cancel(ctx context.Context, processID, bookingID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":        bookingID,
		"processId": processID,
		"status":    models.BookingStatusConfirmed,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      models.BookingStatusCancelled,
			"cancelledAt": at,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return database.TranslateWriteError("cancel booking", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cancel booking %s: %w", bookingID, database.ErrNotFound)
	}
	return nil
}
