package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"dreamhi/config"
	"dreamhi/database"
	"dreamhi/models"
	"dreamhi/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Seeds one announcement with a document stage and a live video stage, plus
// applicants at different pipeline positions, and prints dev tokens.
func main() {
	days := flag.Int("days", 5, "length of the live video book period in days")
	reset := flag.Bool("reset", true, "clear the audition collections first")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	collections := []string{"producers", "announcements", "processes", "volunteers", "bookings", "live_sessions"}
	if *reset {
		for _, name := range collections {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("Failed to clear %s: %v", name, err)
			}
		}
	}

	loc := config.Location()
	start := time.Now().In(loc)
	end := start.AddDate(0, 0, *days-1)

	producer := models.Producer{ID: "prod-1", Name: "Dream Pictures", MemberIDs: []string{"producer-1"}}
	announcement := models.Announcement{ID: "ann-1", ProducerID: producer.ID, Title: "Lead role casting", CreatedAt: start}
	processes := []interface{}{
		models.Process{
			ID: "proc-doc", AnnouncementID: announcement.ID, Order: 1, Stage: models.StageDocument,
			StartDate: start.AddDate(0, 0, -14).Format(models.DateLayout), EndDate: start.AddDate(0, 0, -7).Format(models.DateLayout),
		},
		models.Process{
			ID: "proc-live", AnnouncementID: announcement.ID, Order: 2, Stage: models.StageLiveVideo,
			StartDate: start.Format(models.DateLayout), EndDate: end.Format(models.DateLayout),
			DayStart: 10 * 60, DayEnd: 18 * 60, SlotMinutes: 30,
		},
	}
	volunteers := []interface{}{
		models.Volunteer{ID: "vol-1", AnnouncementID: announcement.ID, UserID: "actor-1", ProcessOrder: 2, Status: models.VolunteerInProgress},
		models.Volunteer{ID: "vol-2", AnnouncementID: announcement.ID, UserID: "actor-2", ProcessOrder: 2, Status: models.VolunteerInProgress},
		models.Volunteer{ID: "vol-3", AnnouncementID: announcement.ID, UserID: "actor-3", ProcessOrder: 1, Status: models.VolunteerInProgress},
		models.Volunteer{ID: "vol-4", AnnouncementID: announcement.ID, UserID: "actor-4", ProcessOrder: 2, Status: models.VolunteerFailed},
	}

	if _, err := db.Collection("producers").InsertOne(ctx, producer); err != nil {
		log.Fatalf("Failed to insert producer: %v", err)
	}
	if _, err := db.Collection("announcements").InsertOne(ctx, announcement); err != nil {
		log.Fatalf("Failed to insert announcement: %v", err)
	}
	if _, err := db.Collection("processes").InsertMany(ctx, processes); err != nil {
		log.Fatalf("Failed to insert processes: %v", err)
	}
	if _, err := db.Collection("volunteers").InsertMany(ctx, volunteers); err != nil {
		log.Fatalf("Failed to insert volunteers: %v", err)
	}

	fmt.Printf("Seeded announcement %s, live video process proc-live open %s ~ %s\n",
		announcement.ID, start.Format(models.DateLayout), end.Format(models.DateLayout))

	for _, userID := range []string{"producer-1", "actor-1", "actor-2", "actor-3", "actor-4"} {
		token, err := utils.GenerateToken(userID, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to issue token for %s: %v", userID, err)
		}
		fmt.Printf("%-10s %s\n", userID, token)
	}

	if err := database.Disconnect(context.Background()); err != nil {
		log.Printf("Failed to disconnect: %v", err)
	}
}
