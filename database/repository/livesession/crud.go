package liveSessionRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoLiveSessionRepo) Upsert(ctx context.Context, processID, sessionID, fileURL string, now time.Time) (*models.LiveSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"processId": processID}
	update := bson.M{
		"$set": bson.M{
			"fileUrl":   fileURL,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"processId": processID,
			"sessionId": sessionID,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var session models.LiveSession
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session); err != nil {
		return nil, database.TranslateWriteError(fmt.Sprintf("upsert live session of process %s", processID), err)
	}
	return &session, nil
}

func (r *mongoLiveSessionRepo) GetByProcessID(ctx context.Context, processID string) (*models.LiveSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.LiveSession
	if err := r.coll.FindOne(ctx, bson.M{"processId": processID}).Decode(&session); err != nil {
		return nil, database.TranslateReadError("find live session of process "+processID, err)
	}
	return &session, nil
}
