package club

import (
	"database/sql"
	"sync"

	"github.com/pitchside/matchday/internal/ledger"
	"github.com/pitchside/matchday/internal/lineup"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchStatus is the lifecycle state of a match record.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "not_started"
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
)

// AttendanceStatus is a player's RSVP for a scheduled match.
type AttendanceStatus string

const (
	Attending AttendanceStatus = "attending"
	Declined  AttendanceStatus = "declined"
	Maybe     AttendanceStatus = "maybe"
)

// PlayerInfo represents a club player together with their career totals.
type PlayerInfo struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id"`
	Name         string `json:"name"`
	SquadNumber  int    `json:"squad_number"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
	TotalTackles int    `json:"total_tackles"`
	TotalSaves   int    `json:"total_saves"`
	GamesPlayed  int    `json:"games_played"`
	TotalMinutes int    `json:"total_time_played_minutes"`
}

// TeamInfo carries the saved defaults a fresh match snapshot is seeded from.
type TeamInfo struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	MatchFormat      string            `json:"match_format"`
	DefaultFormation string            `json:"default_formation"`
	DefaultPositions map[string]string `json:"default_positions"`
}

// MinutesState is the persisted per-player playing time. Both the accrued
// totals and the stint entry timestamps are stored, so a reload resumes
// accrual exactly where the last save left off.
type MinutesState struct {
	Accrued map[string]int64 `json:"accrued_seconds"`
	Entry   map[string]int64 `json:"entry_seconds"`
}

// MatchRecord is a scheduled match together with its live-state columns.
// The live columns are written as a whole on every save.
type MatchRecord struct {
	ID              string `json:"id"`
	TeamID          string `json:"team_id"`
	Opponent        string `json:"opponent"`
	Kickoff         int64  `json:"kickoff"`
	MatchFormat     string `json:"match_format"`
	FormationName   string `json:"formation_name"`
	SnapshotCreated bool   `json:"is_snapshot_created"`

	PlayerPositions     map[string]string             `json:"player_positions"`
	CurrentMatchTime    int64                         `json:"current_match_time"`
	OurScore            int                           `json:"our_score"`
	OpponentScore       int                           `json:"opponent_score"`
	PlayerMinutes       MinutesState                  `json:"player_minutes"`
	SubstitutionHistory []lineup.SubstitutionEntry    `json:"substitution_history"`
	RecordedGoals       []ledger.RecordedGoal         `json:"recorded_goals"`
	FinalMatchEvents    []ledger.Event                `json:"final_match_events"`
	PlayerStats         map[string]ledger.PlayerStats `json:"player_stats"`
	Status              MatchStatus                   `json:"match_status"`
}

// CareerDelta is the per-player increment folded into career totals when a
// match is finalized.
type CareerDelta struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	Tackles     int `json:"tackles"`
	Saves       int `json:"saves"`
	GamesPlayed int `json:"games_played"`
	Minutes     int `json:"minutes"`
}

// LeaderboardEntry is one row of the career leaderboard.
type LeaderboardEntry struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
	TotalTackles int    `json:"total_tackles"`
	TotalSaves   int    `json:"total_saves"`
	GamesPlayed  int    `json:"games_played"`
	TotalMinutes int    `json:"total_time_played_minutes"`
}
