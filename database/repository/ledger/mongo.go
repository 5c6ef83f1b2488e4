package ledgerRepo

import (
	"context"
	"fmt"

	"roombooking/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ledgerCounterID = "bookings"

type mongoLedgerRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoLedgerRepo returns a LedgerRepository backed by the "bookings" collection.
func NewMongoLedgerRepo(client *mongo.Client, dbName string) LedgerRepository {
	db := client.Database(dbName)
	return &mongoLedgerRepo{
		coll:     db.Collection("bookings"),
		counters: db.Collection("counters"),
	}
}

// Append reserves the next sequence number and inserts the booking as a
// single document. A failed insert leaves a gap in the sequence but never
// a partial record.
func (r *mongoLedgerRepo) Append(ctx context.Context, booking models.Booking) (models.Booking, error) {
	seq, err := r.nextSequence(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Sequence = seq

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return models.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking, nil
}

func (r *mongoLedgerRepo) nextSequence(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": ledgerCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve booking sequence: %w", err)
	}
	return counter.Seq, nil
}

func (r *mongoLedgerRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.Booking{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
