package ledgerRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"roombooking/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type redisLedgerRepo struct {
	client *redis.Client
	key    string
}

// NewRedisLedgerRepo stores the ledger as a single Redis list. RPUSH is
// atomic, so a booking is either fully in the list or absent, and the
// list position is the booking's sequence.
func NewRedisLedgerRepo(client *redis.Client, key string) LedgerRepository {
	return &redisLedgerRepo{client: client, key: key}
}

func (r *redisLedgerRepo) Append(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Sequence = 0
	data, err := json.Marshal(booking)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to encode booking: %w", err)
	}

	length, err := r.client.RPush(ctx, r.key, data).Result()
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to append booking: %w", err)
	}
	booking.Sequence = length
	return booking, nil
}

func (r *redisLedgerRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw)
}

func decodeEntries(raw []string) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(raw))
	for i, entry := range raw {
		var b models.Booking
		if err := json.Unmarshal([]byte(entry), &b); err != nil {
			return nil, fmt.Errorf("ledger entry %d is corrupt: %w", i+1, err)
		}
		b.Sequence = int64(i + 1)
		out = append(out, b)
	}
	return out, nil
}
