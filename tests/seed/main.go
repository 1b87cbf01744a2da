// Seeds demo practitioners with weekday schedules for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
	"clinicbook/services/scheduling"

	"go.mongodb.org/mongo-driver/bson"
)

// weekdays a seeded practitioner can work.
var workdays = []string{"mon", "tue", "wed", "thu", "fri"}

func main() {
	config.LoadConfig()
	database.InitDB()

	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	coll := db.Collection("practitioners")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear practitioners collection: %v", err)
	}

	repo := practitionerRepo.NewMongoPractitionerRepo()
	if err := repo.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	names := []string{"Taro Yamada", "Hanako Sato", "Ichiro Suzuki"}
	slots := scheduling.AllSlots()

	total := 0
	for _, dept := range models.Departments {
		for i, name := range names {
			p := &models.Practitioner{
				ID:           fmt.Sprintf("%s-doc%d", dept.ID, i+1),
				Name:         name,
				DepartmentID: dept.ID,
				Schedules:    map[string][]string{},
			}
			// Stagger coverage: doc1 works mornings all week, doc2 afternoons,
			// doc3 full days Mon/Wed/Fri. Overlap leaves the tie-break visible.
			for d, day := range workdays {
				switch i {
				case 0:
					p.Schedules[day] = morning(slots)
				case 1:
					p.Schedules[day] = afternoon(slots)
				case 2:
					if d%2 == 0 {
						p.Schedules[day] = slots
					}
				}
			}
			if err := repo.Create(ctx, p); err != nil {
				log.Fatalf("Failed to insert practitioner %s: %v", p.ID, err)
			}
			total++
		}
	}

	log.Printf("Seeded %d practitioners across %d departments", total, len(models.Departments))
}

func morning(slots []string) []string {
	var out []string
	for _, s := range slots {
		if s < "12:00" {
			out = append(out, s)
		}
	}
	return out
}

func afternoon(slots []string) []string {
	var out []string
	for _, s := range slots {
		if s >= "13:00" {
			out = append(out, s)
		}
	}
	return out
}
