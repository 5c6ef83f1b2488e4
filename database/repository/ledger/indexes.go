// FILE: database/repository/ledger/indexes.go
package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing ListAll ordering and date filtering.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Insertion order
		{
			Keys:    bson.D{{Key: "sequence", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_sequence"),
		},
		{
			Keys:    bson.D{{Key: "dayToUse", Value: 1}, {Key: "roomId", Value: 1}},
			Options: options.Index().SetName("day_room_idx"),
		},
	}

	_, err := client.Database(dbName).Collection("bookings").Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
