package club

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("club: not found")

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	// Teams & players
	UpsertTeam(team TeamInfo) error
	GetTeam(teamID string) (TeamInfo, error)
	UpsertPlayers(players []PlayerInfo) error
	GetPlayer(playerID string) (PlayerInfo, error)
	GetTeamPlayers(teamID string) ([]PlayerInfo, error)

	// Matches
	CreateMatch(m *MatchRecord) error
	GetMatch(matchID string) (*MatchRecord, error)
	SaveMatchState(m *MatchRecord) error

	// Per-event audit trail
	InsertMatchEvent(matchID, eventID, playerID, eventType string, minute int, notes string) error
	DeleteMatchEvent(eventID string) error

	// Attendance
	SetAttendance(matchID, playerID string, status AttendanceStatus) error
	GetAttending(matchID string) (map[string]AttendanceStatus, error)

	// FinalizeMatch persists the completed match state and folds the career
	// deltas into player totals in a single transaction.
	FinalizeMatch(m *MatchRecord, totals map[string]CareerDelta) error

	GetCareerLeaderboard(teamID string) ([]LeaderboardEntry, error)

	Clear()
}
