package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the club database and ensures the schema exists. With an empty
// primaryURL the database is a local SQLite file (or ":memory:"); otherwise it
// is a remote Turso database. The returned teardown closes the connection.
func InitDB(dbPath, primaryURL, authToken string) (*sql.DB, func(), error) {
	var dsn string
	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		dsn = "file:" + dbPath
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		dsn = primaryURL + "?authToken=" + authToken
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create tables: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Error("Error enabling foreign keys", "error", err)
		return err
	}

	createTeamsTable := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		match_format TEXT NOT NULL,
		default_formation TEXT NOT NULL,
		default_positions TEXT
	);`

	createPlayersTable := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		team_id TEXT,
		name TEXT,
		squad_number INTEGER NOT NULL DEFAULT 0,
		total_goals INTEGER NOT NULL DEFAULT 0,
		total_assists INTEGER NOT NULL DEFAULT 0,
		total_tackles INTEGER NOT NULL DEFAULT 0,
		total_saves INTEGER NOT NULL DEFAULT 0,
		games_played INTEGER NOT NULL DEFAULT 0,
		total_time_played_minutes INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL
	);`

	createMatchesTable := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		opponent TEXT NOT NULL,
		kickoff INTEGER NOT NULL DEFAULT 0,
		match_format TEXT NOT NULL,
		formation_name TEXT NOT NULL DEFAULT '',
		player_positions TEXT,
		current_match_time INTEGER NOT NULL DEFAULT 0,
		our_score INTEGER NOT NULL DEFAULT 0,
		opponent_score INTEGER NOT NULL DEFAULT 0,
		player_minutes TEXT,
		substitution_history TEXT,
		recorded_goals TEXT,
		final_match_events TEXT,
		player_stats TEXT,
		match_status TEXT NOT NULL DEFAULT 'not_started',
		is_snapshot_created INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (team_id) REFERENCES teams(id)
	);`

	createMatchEventsTable := `
	CREATE TABLE IF NOT EXISTS match_events (
		id TEXT PRIMARY KEY,
		match_id TEXT NOT NULL,
		player_id TEXT,
		event_type TEXT NOT NULL,
		minute INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE
	);`

	createAttendanceTable := `
	CREATE TABLE IF NOT EXISTS attendance (
		match_id TEXT NOT NULL,
		player_id TEXT NOT NULL,
		status TEXT NOT NULL,
		PRIMARY KEY (match_id, player_id),
		FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
		FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
	);`

	for _, stmt := range []string{
		createTeamsTable,
		createPlayersTable,
		createMatchesTable,
		createMatchEventsTable,
		createAttendanceTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Info("Database initialized successfully")
	return nil
}
