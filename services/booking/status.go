package booking

import (
	"errors"
	"fmt"
	"strings"

	"roombooking/models"
)

// StatusMessage renders the single status line shown after a submission.
// Validation and storage errors win; otherwise the line confirms the
// booking and mentions side channels that did not go through.
func StatusMessage(result *models.SubmissionResult, err error) string {
	var vErr *ValidationError
	var sErr *StorageError
	switch {
	case errors.As(err, &vErr):
		return "Please check the form: " + vErr.Message + "."
	case errors.As(err, &sErr):
		return "The booking could not be saved. Please try again."
	case err != nil:
		return "Something went wrong. Please try again."
	case result == nil:
		return ""
	}

	b := result.Booking
	parts := []string{fmt.Sprintf("Booked %s on %s, %s.", b.RoomName, b.DayToUse, b.TimeSlot)}
	if result.Notified.Status == models.OutcomeFailed {
		parts = append(parts, "The booking system could not be notified yet.")
	}
	switch result.Announced.Status {
	case models.OutcomeSent:
		parts = append(parts, "A confirmation was posted to the chat.")
	case models.OutcomeFailed:
		parts = append(parts, "The chat confirmation could not be sent.")
	}
	return strings.Join(parts, " ")
}
