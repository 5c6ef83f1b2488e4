package booking

import (
	"context"
	"sync"
	"time"

	ledgerRepo "roombooking/database/repository/ledger"
	"roombooking/models"

	"go.uber.org/zap"
)

// BookingRecorder validates, records and announces room bookings.
type BookingRecorder interface {
	Validate(req models.BookingRequest) (ValidBooking, error)
	Record(ctx context.Context, valid ValidBooking) (models.Booking, error)
	NotifyExternal(ctx context.Context, b models.Booking) models.Outcome
	AnnounceInChat(ctx context.Context, b models.Booking, env models.Environment) models.Outcome
	Submit(ctx context.Context, req models.BookingRequest, env models.Environment) (*models.SubmissionResult, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	Catalog() models.Catalog
}

// Notifier forwards a recorded booking to an external endpoint.
// Implementations report failure through the outcome, never by panicking or blocking past ctx.
type Notifier interface {
	Notify(ctx context.Context, b models.Booking) models.Outcome
}

// Announcer posts a confirmation message into the host chat on behalf of identity.
type Announcer interface {
	Announce(ctx context.Context, identity models.Identity, b models.Booking) error
}

// DefaultBookingRecorder implements BookingRecorder.
type DefaultBookingRecorder struct {
	Ledger    ledgerRepo.LedgerRepository
	Catalogue *Catalog
	Notifier  Notifier  // nil when no webhook is configured
	Announcer Announcer // nil when the host environment is absent
	Logger    *zap.Logger

	// SideChannelTimeout bounds NotifyExternal and AnnounceInChat during Submit.
	SideChannelTimeout time.Duration
	Location           *time.Location
	Now                func() time.Time

	writeMu   sync.Mutex
	stampMu   sync.Mutex
	lastStamp time.Time
}
