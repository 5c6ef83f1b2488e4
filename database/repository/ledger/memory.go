package ledgerRepo

import (
	"context"
	"sync"

	"roombooking/models"

	"github.com/google/uuid"
)

type memoryLedgerRepo struct {
	mu      sync.RWMutex
	entries []models.Booking
	limit   int
}

// NewMemoryLedgerRepo returns a process-local ledger. A positive limit
// makes Append fail with ErrUnavailable once that many entries are stored.
func NewMemoryLedgerRepo(limit int) LedgerRepository {
	return &memoryLedgerRepo{limit: limit}
}

func (r *memoryLedgerRepo) Append(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.entries) >= r.limit {
		return models.Booking{}, ErrUnavailable
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Sequence = int64(len(r.entries) + 1)
	r.entries = append(r.entries, booking)
	return booking, nil
}

func (r *memoryLedgerRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, len(r.entries))
	copy(out, r.entries)
	return out, nil
}
