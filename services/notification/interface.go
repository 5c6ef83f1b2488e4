package notification

import (
	"context"

	"roombooking/models"

	"firebase.google.com/go/v4/messaging"
)

// ActionCreateBooking tags webhook payloads for new bookings.
const ActionCreateBooking = "createBooking"

// RetryQueue accepts webhook payloads whose inline delivery failed.
type RetryQueue interface {
	EnqueueWebhook(ctx context.Context, payload models.WebhookPayload) error
}

// MessageSender is the slice of the FCM client the announcer needs.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
