package processRepo

import (
	"context"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoProcessRepo) GetProcess(ctx context.Context, processID string) (*models.Process, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var process models.Process
	err := r.processColl.FindOne(ctx, bson.M{"id": processID}).Decode(&process)
	if err != nil {
		return nil, database.TranslateReadError("find process "+processID, err)
	}
	return &process, nil
}

func (r *mongoProcessRepo) GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var announcement models.Announcement
	err := r.announcementColl.FindOne(ctx, bson.M{"id": announcementID}).Decode(&announcement)
	if err != nil {
		return nil, database.TranslateReadError("find announcement "+announcementID, err)
	}
	return &announcement, nil
}

func (r *mongoProcessRepo) GetProducer(ctx context.Context, producerID string) (*models.Producer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var producer models.Producer
	err := r.producerColl.FindOne(ctx, bson.M{"id": producerID}).Decode(&producer)
	if err != nil {
		return nil, database.TranslateReadError("find producer "+producerID, err)
	}
	return &producer, nil
}
