package liveSessionRepo

import (
	"context"
	"time"

	"dreamhi/database"
	"dreamhi/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type LiveSessionRepository interface {
	// Upsert creates the session of a process or, when one exists, updates
	// its file URL. sessionID is only used on creation.
	Upsert(ctx context.Context, processID, sessionID, fileURL string, now time.Time) (*models.LiveSession, error)
	GetByProcessID(ctx context.Context, processID string) (*models.LiveSession, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoLiveSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoLiveSessionRepo constructs a new MongoDB LiveSessionRepository.
func NewMongoLiveSessionRepo() LiveSessionRepository {
	return &mongoLiveSessionRepo{
		coll: database.DB().Collection("live_sessions"),
	}
}
