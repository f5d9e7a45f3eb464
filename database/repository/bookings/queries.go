// File: database/repository/bookings/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) GetByID(ctx context.Context, processID, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": bookingID, "processId": processID}).Decode(&booking)
	if err != nil {
		return nil, database.TranslateReadError("find booking "+bookingID, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) GetConfirmedByProcessAndDate(ctx context.Context, processID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"processId": processID,
		"date":      date,
		"status":    models.BookingStatusConfirmed,
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) GetConfirmedByUser(ctx context.Context, processID, userID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"processId": processID,
		"userId":    userID,
		"status":    models.BookingStatusConfirmed,
	}
	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		return nil, database.TranslateReadError("find booking of user "+userID, err)
	}
	return &booking, nil
}
