package notification

import (
	"context"
	"fmt"
	"regexp"

	"roombooking/models"

	"firebase.google.com/go/v4/messaging"
)

var topicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\-_.~%]`)

// ChatAnnouncer sends the booking confirmation as a push message to the
// user's chat topic in the host environment.
type ChatAnnouncer struct {
	Sender      MessageSender
	TopicPrefix string
}

func NewChatAnnouncer(sender MessageSender) *ChatAnnouncer {
	return &ChatAnnouncer{Sender: sender, TopicPrefix: "booking-"}
}

// Announce sends one plain-text message for b on behalf of identity.
func (a *ChatAnnouncer) Announce(ctx context.Context, identity models.Identity, b models.Booking) error {
	if identity.UserID == "" {
		return fmt.Errorf("announce: identity has no user id")
	}
	msg := &messaging.Message{
		Topic: a.TopicPrefix + topicUnsafe.ReplaceAllString(identity.UserID, "_"),
		Notification: &messaging.Notification{
			Title: "Room booking confirmed",
			Body:  RenderAnnouncement(identity, b),
		},
		Data: map[string]string{
			"type":      "booking_confirmation",
			"bookingId": b.ID,
			"roomId":    b.RoomID,
			"dayToUse":  b.DayToUse,
			"timeSlot":  b.TimeSlot,
		},
	}
	if _, err := a.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("announce: failed to send message: %w", err)
	}
	return nil
}
