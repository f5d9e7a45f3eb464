package processRepo

import (
	"context"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProcessRepository reads the announcement pipeline: processes, the
// announcements they belong to and the producers owning those. Book period
// corrections are its only write.
type ProcessRepository interface {
	GetProcess(ctx context.Context, processID string) (*models.Process, error)
	GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error)
	GetProducer(ctx context.Context, producerID string) (*models.Producer, error)
	UpdatePeriod(ctx context.Context, processID, startDate, endDate string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoProcessRepo struct {
	processColl      *mongo.Collection
	announcementColl *mongo.Collection
	producerColl     *mongo.Collection
}

// NewMongoProcessRepo constructs a new MongoDB ProcessRepository.
func NewMongoProcessRepo() ProcessRepository {
	db := database.DB()
	return &mongoProcessRepo{
		processColl:      db.Collection("processes"),
		announcementColl: db.Collection("announcements"),
		producerColl:     db.Collection("producers"),
	}
}
