package booking

import (
	"fmt"
	"strings"

	"roombooking/models"
)

// DefaultTimeSlots are the bookable one-hour ranges.
var DefaultTimeSlots = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

// DefaultRooms are the bookable rooms.
var DefaultRooms = []models.Room{
	{ID: "CR-101", Name: "Conference Room 101", Capacity: 10},
	{ID: "CR-102", Name: "Conference Room 102", Capacity: 8},
	{ID: "MR-201", Name: "Meeting Room 201", Capacity: 6},
	{ID: "BR-301", Name: "Boardroom", Capacity: 20},
}

// Catalog is the single definition of rooms and slots used by validation and display.
type Catalog struct {
	rooms     []models.Room
	slots     []string
	roomByID  map[string]models.Room
	slotIndex map[string]struct{}
}

// NewCatalog builds a catalog, using the defaults for any empty list.
func NewCatalog(rooms []models.Room, slots []string) (*Catalog, error) {
	if len(rooms) == 0 {
		rooms = DefaultRooms
	}
	if len(slots) == 0 {
		slots = DefaultTimeSlots
	}

	c := &Catalog{
		roomByID:  make(map[string]models.Room, len(rooms)),
		slotIndex: make(map[string]struct{}, len(slots)),
	}
	for _, r := range rooms {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("catalog: room with empty id")
		}
		if _, dup := c.roomByID[r.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate room id %q", r.ID)
		}
		if r.Name == "" {
			r.Name = r.ID
		}
		c.roomByID[r.ID] = r
		c.rooms = append(c.rooms, r)
	}
	for _, s := range slots {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("catalog: empty time slot")
		}
		if _, dup := c.slotIndex[s]; dup {
			return nil, fmt.Errorf("catalog: duplicate time slot %q", s)
		}
		c.slotIndex[s] = struct{}{}
		c.slots = append(c.slots, s)
	}
	return c, nil
}

func (c *Catalog) Room(id string) (models.Room, bool) {
	r, ok := c.roomByID[id]
	return r, ok
}

func (c *Catalog) HasSlot(slot string) bool {
	_, ok := c.slotIndex[slot]
	return ok
}

// Snapshot returns copies of the rooms and slots in display order.
func (c *Catalog) Snapshot() models.Catalog {
	rooms := make([]models.Room, len(c.rooms))
	copy(rooms, c.rooms)
	slots := make([]string, len(c.slots))
	copy(slots, c.slots)
	return models.Catalog{Rooms: rooms, TimeSlots: slots}
}
