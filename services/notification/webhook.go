package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"roombooking/models"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// WebhookNotifier posts bookings to an external HTTP endpoint.
type WebhookNotifier struct {
	URL            string
	Client         *http.Client
	MaxAttempts    int
	InitialBackoff time.Duration
	Queue          RetryQueue // optional deferred delivery
	Logger         *zap.Logger
}

// NewWebhookNotifier returns nil when url is empty so callers can treat
// "no webhook" as a skipped side channel.
func NewWebhookNotifier(url string, timeout time.Duration, maxAttempts int, queue RetryQueue, logger *zap.Logger) *WebhookNotifier {
	if url == "" {
		return nil
	}
	return &WebhookNotifier{
		URL:            url,
		Client:         &http.Client{Timeout: timeout},
		MaxAttempts:    maxAttempts,
		InitialBackoff: 500 * time.Millisecond,
		Queue:          queue,
		Logger:         logger,
	}
}

// Notify delivers the booking with bounded retry. It never returns an error;
// failure is reported in the outcome.
func (n *WebhookNotifier) Notify(ctx context.Context, b models.Booking) models.Outcome {
	payload := models.WebhookPayload{Action: ActionCreateBooking, Data: b}

	attempts := n.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.NewExponentialBackOff()
	if n.InitialBackoff > 0 {
		policy.InitialInterval = n.InitialBackoff
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, n.Deliver(ctx, payload)
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(uint(attempts)))
	if err == nil {
		return models.Sent()
	}

	detail := err.Error()
	if n.Queue != nil {
		if qErr := n.Queue.EnqueueWebhook(context.WithoutCancel(ctx), payload); qErr != nil {
			n.logger().Warn("webhook: failed to queue retry", zap.String("bookingId", b.ID), zap.Error(qErr))
		} else {
			detail += "; queued for retry"
		}
	}
	return models.Failed(detail)
}

// Deliver makes a single POST. Client errors (4xx) are permanent.
func (n *WebhookNotifier) Deliver(ctx context.Context, payload models.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("webhook: encoding payload: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("webhook: building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("webhook: endpoint returned %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}
	return nil
}

func (n *WebhookNotifier) logger() *zap.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return zap.NewNop()
}
