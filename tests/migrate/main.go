// Backfills booking records from a legacy export where appointments lived
// under per-user documents without the unique slot index. Idempotent: rows
// that already exist (by id or by occupied slot) are skipped.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	"clinicbook/models"

	"github.com/google/uuid"
)

func main() {
	input := flag.String("input", "bookings.json", "path to the exported bookings JSON array")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read export %s: %v", *input, err)
	}
	var exported []models.Booking
	if err := json.Unmarshal(data, &exported); err != nil {
		log.Fatalf("Failed to parse export: %v", err)
	}

	repo := bookingRepo.NewMongoBookingRepo()
	if err := repo.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, skipped, failed := 0, 0, 0
	for _, b := range exported {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = time.Now()
		}
		if exists, err := repo.ExistsByID(ctx, b.ID); err == nil && exists {
			skipped++
			continue
		}
		if err := repo.Create(ctx, &b); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				skipped++
				continue
			}
			failed++
			log.Printf("Failed to backfill booking %s: %v", b.ID, err)
			continue
		}
		created++
	}

	log.Printf("Backfill done: %d created, %d skipped, %d failed", created, skipped, failed)
}
