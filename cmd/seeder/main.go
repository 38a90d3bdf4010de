package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/database"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "matchday.db"
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := club.New(db)

	team := club.TeamInfo{
		ID:               "team-lions",
		Name:             "U11 Lions",
		MatchFormat:      "7v7",
		DefaultFormation: "2-3-1",
		DefaultPositions: map[string]string{
			"gk":  "lion-01",
			"lcb": "lion-02",
			"rcb": "lion-03",
			"lm":  "lion-04",
			"cm":  "lion-05",
			"rm":  "lion-06",
			"st":  "lion-07",
		},
	}
	if err := store.UpsertTeam(team); err != nil {
		log.Fatalf("Failed to seed team: %s", err)
	}
	log.Info("Seeded team", "teamID", team.ID)

	names := []string{
		"Alice", "Bobby", "Carla", "Dario", "Erin",
		"Frida", "Gus", "Hana", "Iggy", "Jules",
	}
	players := make([]club.PlayerInfo, 0, len(names))
	for i, name := range names {
		players = append(players, club.PlayerInfo{
			ID:          fmt.Sprintf("lion-%02d", i+1),
			TeamID:      team.ID,
			Name:        name,
			SquadNumber: i + 1,
		})
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players", "count", len(players))

	match := &club.MatchRecord{
		ID:          uuid.NewString(),
		TeamID:      team.ID,
		Opponent:    "Riverside Rovers",
		Kickoff:     time.Now().Add(48 * time.Hour).Unix(),
		MatchFormat: team.MatchFormat,
		Status:      club.StatusNotStarted,
	}
	if err := store.CreateMatch(match); err != nil {
		log.Fatalf("Failed to seed match: %s", err)
	}
	log.Info("Seeded upcoming match", "matchID", match.ID, "opponent", match.Opponent)

	// RSVP most of the squad so a freshly opened match has a realistic bench.
	for i, p := range players {
		status := club.Attending
		if i >= 8 {
			status = club.Maybe
		}
		if err := store.SetAttendance(match.ID, p.ID, status); err != nil {
			log.Fatalf("Failed to seed attendance for %s: %s", p.Name, err)
		}
	}
	log.Info("Seeding complete")
}
