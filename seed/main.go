// Command seed fills the configured ledger with sample bookings for the
// coming week, going through the same validation as the HTTP surface.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"roombooking/config"
	"roombooking/database"
	"roombooking/models"
	"roombooking/services/booking"
	"roombooking/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ledger, err := database.OpenLedger(ctx)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer ledger.Close(context.Background())

	catalog, err := booking.NewCatalog(config.AppConfig.Rooms, config.AppConfig.TimeSlots)
	if err != nil {
		log.Fatalf("seed: invalid catalog: %v", err)
	}
	recorder := &booking.DefaultBookingRecorder{
		Ledger:    ledger.Repo,
		Catalogue: catalog,
		Logger:    logger,
		Location:  config.Location(),
	}

	departments := []string{"IT", "HR", "Finance", "Sales", "Operations"}
	snap := catalog.Snapshot()
	loc := config.Location()

	// Generate dates for the next 7 days.
	var weekDates []string
	today := time.Now().In(loc)
	for i := 0; i < 7; i++ {
		weekDates = append(weekDates, today.AddDate(0, 0, i).Format("2006-01-02"))
	}

	created := 0
	for i, day := range weekDates {
		for j := 0; j < 3; j++ {
			req := models.BookingRequest{
				Name:       fmt.Sprintf("Sample User %d", i*3+j+1),
				Department: departments[rand.Intn(len(departments))],
				DayToUse:   day,
				TimeSlot:   snap.TimeSlots[rand.Intn(len(snap.TimeSlots))],
				RoomID:     snap.Rooms[rand.Intn(len(snap.Rooms))].ID,
			}
			if _, err := recorder.Submit(ctx, req, models.Environment{}); err != nil {
				log.Fatalf("seed: %v", err)
			}
			created++
		}
	}

	log.Printf("Seeded %d bookings into the %s ledger", created, ledger.Backend)
}
