package liveSessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// liveSessionIndexModels makes processId unique so concurrent upserts cannot
// create two sessions for one process.
func liveSessionIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "processId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_process"),
		},
	}
}

func (r *mongoLiveSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, liveSessionIndexModels()); err != nil {
		return fmt.Errorf("failed to create live session indexes: %w", err)
	}
	return nil
}
