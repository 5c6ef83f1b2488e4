package booking

import (
	"strings"
	"time"

	"roombooking/models"
)

const dateLayout = "2006-01-02"

// ValidBooking is a booking that passed Validate. Only Validate produces one,
// so Record can never be handed an unchecked candidate.
type ValidBooking struct {
	booking models.Booking
}

// Booking returns a copy of the normalized booking.
func (v ValidBooking) Booking() models.Booking {
	return v.booking
}

// Validate checks a raw candidate and returns its normalized form.
// Rules short-circuit on the first failure.
func (r *DefaultBookingRecorder) Validate(req models.BookingRequest) (ValidBooking, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ValidBooking{}, newValidationError(CodeMissingName, "name is required")
	}
	department := strings.TrimSpace(req.Department)
	if department == "" {
		return ValidBooking{}, newValidationError(CodeMissingDepartment, "department is required")
	}

	loc := r.location()
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.DayToUse), loc)
	if err != nil {
		return ValidBooking{}, newValidationError(CodeInvalidDate, "dayToUse must be a date in YYYY-MM-DD format")
	}
	now := r.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return ValidBooking{}, newValidationError(CodeInvalidDate, "dayToUse cannot be in the past")
	}

	if !r.Catalogue.HasSlot(req.TimeSlot) {
		return ValidBooking{}, newValidationError(CodeInvalidSlot, "timeSlot is not one of the offered slots")
	}
	room, ok := r.Catalogue.Room(req.RoomID)
	if !ok {
		return ValidBooking{}, newValidationError(CodeInvalidRoom, "roomId is not a known room")
	}

	return ValidBooking{booking: models.Booking{
		Name:       name,
		Department: department,
		DayToUse:   day.Format(dateLayout),
		TimeSlot:   req.TimeSlot,
		RoomID:     room.ID,
		RoomName:   room.Name,
		CreatedAt:  r.stamp(),
	}}, nil
}

// stamp returns the submission time, never earlier than the previous stamp.
func (r *DefaultBookingRecorder) stamp() time.Time {
	r.stampMu.Lock()
	defer r.stampMu.Unlock()

	t := r.now().UTC()
	if t.Before(r.lastStamp) {
		t = r.lastStamp
	}
	r.lastStamp = t
	return t
}

func (r *DefaultBookingRecorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *DefaultBookingRecorder) location() *time.Location {
	if r.Location != nil {
		return r.Location
	}
	return time.Local
}
