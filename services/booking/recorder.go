package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roombooking/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultSideChannelTimeout = 8 * time.Second

// Record appends a validated booking to the ledger. Appends are serialized
// so each submission is stored whole before the next one starts.
func (r *DefaultBookingRecorder) Record(ctx context.Context, valid ValidBooking) (models.Booking, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	stored, err := r.Ledger.Append(ctx, valid.booking)
	if err != nil {
		r.logger().Error("Record: ledger append failed", zap.Error(err))
		return models.Booking{}, &StorageError{Err: err}
	}
	return stored, nil
}

// NotifyExternal forwards the booking to the configured webhook, if any.
func (r *DefaultBookingRecorder) NotifyExternal(ctx context.Context, b models.Booking) (out models.Outcome) {
	if r.Notifier == nil {
		return models.Skipped("no webhook configured")
	}
	defer func() {
		if p := recover(); p != nil {
			out = models.Failed(fmt.Sprintf("notifier panicked: %v", p))
		}
	}()
	return r.Notifier.Notify(ctx, b)
}

// AnnounceInChat posts the confirmation template into the host chat.
// Outside the host environment this is the normal skipped case.
func (r *DefaultBookingRecorder) AnnounceInChat(ctx context.Context, b models.Booking, env models.Environment) (out models.Outcome) {
	if r.Announcer == nil || !env.Embedded() {
		return models.Skipped("not running inside the host messaging environment")
	}
	defer func() {
		if p := recover(); p != nil {
			out = models.Failed(fmt.Sprintf("announcer panicked: %v", p))
		}
	}()
	if err := r.Announcer.Announce(ctx, *env.Identity, b); err != nil {
		return models.Failed(err.Error())
	}
	return models.Sent()
}

// Submit validates and records the booking, then runs both side channels
// concurrently. Only validation and storage errors are returned; the side
// channels can never undo a successful record.
func (r *DefaultBookingRecorder) Submit(ctx context.Context, req models.BookingRequest, env models.Environment) (*models.SubmissionResult, error) {
	logger := r.logger()

	if env.Identity != nil && strings.TrimSpace(req.Name) == "" {
		req.Name = env.Identity.DisplayName
	}

	valid, err := r.Validate(req)
	if err != nil {
		logger.Info("Submit: booking rejected", zap.Error(err))
		return nil, err
	}
	if env.Identity != nil {
		valid.booking.UserID = env.Identity.UserID
	}

	stored, err := r.Record(ctx, valid)
	if err != nil {
		return nil, err
	}

	result := &models.SubmissionResult{Booking: stored, Recorded: true}

	// Side channels outlive a cancelled request but not the timeout.
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.sideChannelTimeout())
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		result.Notified = r.NotifyExternal(sideCtx, stored)
		return nil
	})
	g.Go(func() error {
		result.Announced = r.AnnounceInChat(sideCtx, stored, env)
		return nil
	})
	_ = g.Wait()

	if result.Notified.Status == models.OutcomeFailed {
		logger.Warn("Submit: webhook notification failed",
			zap.String("bookingId", stored.ID), zap.String("detail", result.Notified.Detail))
	}
	if result.Announced.Status == models.OutcomeFailed {
		logger.Warn("Submit: chat announcement failed",
			zap.String("bookingId", stored.ID), zap.String("detail", result.Announced.Detail))
	}
	logger.Info("Submit: booking recorded",
		zap.String("bookingId", stored.ID),
		zap.Int64("sequence", stored.Sequence),
		zap.String("notified", string(result.Notified.Status)),
		zap.String("announced", string(result.Announced.Status)),
	)
	return result, nil
}

// List returns ledger entries matching filter, in insertion order.
func (r *DefaultBookingRecorder) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	all, err := r.Ledger.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *DefaultBookingRecorder) Catalog() models.Catalog {
	return r.Catalogue.Snapshot()
}

func (r *DefaultBookingRecorder) sideChannelTimeout() time.Duration {
	if r.SideChannelTimeout > 0 {
		return r.SideChannelTimeout
	}
	return defaultSideChannelTimeout
}

func (r *DefaultBookingRecorder) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}
