package bookingRepo

import (
	"context"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the slot ledger. Create must fail with
// database.ErrDuplicate when the slot or the applicant already holds a
// confirmed booking for the process.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, processID, bookingID string) (*models.Booking, error)
	GetConfirmedByProcessAndDate(ctx context.Context, processID, date string) ([]models.Booking, error)
	GetConfirmedByUser(ctx context.Context, processID, userID string) (*models.Booking, error)
	Cancel(ctx context.Context, processID, bookingID string, at time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
