package models

import "time"

// Booking is one validated reservation stored in the ledger.
type Booking struct {
	ID         string    `bson:"id" json:"id"`                             // Ledger-assigned identifier (UUID)
	Sequence   int64     `bson:"sequence" json:"sequence"`                 // 1-based insertion position in the ledger
	Name       string    `bson:"name" json:"name"`                         // Trimmed booker name
	Department string    `bson:"department" json:"department"`             // Trimmed department
	DayToUse   string    `bson:"dayToUse" json:"dayToUse"`                 // "YYYY-MM-DD"
	TimeSlot   string    `bson:"timeSlot" json:"timeSlot"`                 // e.g. "09:00-10:00"
	RoomID     string    `bson:"roomId" json:"roomId"`                     // e.g. "CR-101"
	RoomName   string    `bson:"roomName" json:"roomName"`                 // Display name of RoomID at booking time
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`               // Submission timestamp
	UserID     string    `bson:"userId,omitempty" json:"userId,omitempty"` // Host identity, empty in preview mode
}

// BookingRequest is the raw candidate as typed into the form.
type BookingRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	DayToUse   string `json:"dayToUse"`
	TimeSlot   string `json:"timeSlot"`
	RoomID     string `json:"roomId"`
}

// BookingFilter narrows a ledger listing. Empty fields match everything.
type BookingFilter struct {
	DayToUse string `form:"date"`
	RoomID   string `form:"roomId"`
}

// Matches reports whether b passes the filter.
func (f BookingFilter) Matches(b Booking) bool {
	if f.DayToUse != "" && b.DayToUse != f.DayToUse {
		return false
	}
	if f.RoomID != "" && b.RoomID != f.RoomID {
		return false
	}
	return true
}
