package processRepo

import (
	"context"
	"fmt"
	"time"

	"dreamhi/database"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdatePeriod rewrites the reservation window of a process.
func (r *mongoProcessRepo) UpdatePeriod(ctx context.Context, processID, startDate, endDate string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"startDate": startDate, "endDate": endDate}}
	res, err := r.processColl.UpdateOne(ctx, bson.M{"id": processID}, update)
	if err != nil {
		return database.TranslateWriteError("update process period", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update process period %s: %w", processID, database.ErrNotFound)
	}
	return nil
}
