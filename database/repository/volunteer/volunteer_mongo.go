package volunteerRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VolunteerRepository answers pipeline progress questions. The progression
// itself is written by the pipeline management side.
type VolunteerRepository interface {
	GetByAnnouncementAndUser(ctx context.Context, announcementID, userID string) (*models.Volunteer, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoVolunteerRepo implements VolunteerRepository using MongoDB.
type MongoVolunteerRepo struct {
	coll *mongo.Collection
}

// NewMongoVolunteerRepo creates a new instance of VolunteerRepository using MongoDB.
func NewMongoVolunteerRepo() VolunteerRepository {
	return &MongoVolunteerRepo{coll: database.DB().Collection("volunteers")}
}

func (r *MongoVolunteerRepo) GetByAnnouncementAndUser(ctx context.Context, announcementID, userID string) (*models.Volunteer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v models.Volunteer
	filter := bson.M{"announcementId": announcementID, "userId": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, database.TranslateReadError("find volunteer "+userID, err)
	}
	return &v, nil
}

func (r *MongoVolunteerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "announcementId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create volunteer indexes: %w", err)
	}
	return nil
}
