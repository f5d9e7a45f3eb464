package processRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup indexes of the pipeline collections.
func (r *mongoProcessRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}

	_, err := r.processColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueID,
		{
			Keys:    bson.D{{Key: "announcementId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("announcement_order_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create process indexes: %w", err)
	}

	_, err = r.announcementColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueID,
		{
			Keys:    bson.D{{Key: "producerId", Value: 1}},
			Options: options.Index().SetName("producer_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create announcement indexes: %w", err)
	}

	if _, err := r.producerColl.Indexes().CreateOne(ctx, uniqueID); err != nil {
		return fmt.Errorf("failed to create producer indexes: %w", err)
	}
	return nil
}
