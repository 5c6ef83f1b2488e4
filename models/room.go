package models

// Room is a bookable room. Capacity is informational and never enforced.
type Room struct {
	ID       string `mapstructure:"id" json:"id"`
	Name     string `mapstructure:"name" json:"name"`
	Capacity int    `mapstructure:"capacity" json:"capacity"`
}

// Catalog is the fixed set of rooms and time slots a booking may reference.
type Catalog struct {
	Rooms     []Room   `json:"rooms"`
	TimeSlots []string `json:"timeSlots"`
}
