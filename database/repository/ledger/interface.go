package ledgerRepo

import (
	"context"
	"errors"

	"roombooking/models"
)

// ErrUnavailable is returned when the storage medium cannot accept writes.
var ErrUnavailable = errors.New("ledger storage unavailable")

// LedgerRepository is an append-only ordered store of bookings.
// Append either stores the whole record or nothing; it assigns ID and
// Sequence and returns the stored copy. ListAll returns every entry in
// insertion order.
type LedgerRepository interface {
	Append(ctx context.Context, booking models.Booking) (models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
}
