package notification

import (
	"fmt"

	"roombooking/models"
)

// RenderAnnouncement is the fixed chat confirmation text.
func RenderAnnouncement(identity models.Identity, b models.Booking) string {
	who := identity.DisplayName
	if who == "" {
		who = b.Name
	}
	return fmt.Sprintf(
		"📅 Room booking confirmed\nName: %s\nDepartment: %s\nRoom: %s\nDate: %s\nTime: %s",
		who, b.Department, b.RoomName, b.DayToUse, b.TimeSlot,
	)
}
