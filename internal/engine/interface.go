package engine

import "github.com/pitchside/matchday/internal/club"

// Store is the slice of the club store the live engine needs. club.ClubStore
// satisfies it.
type Store interface {
	GetTeam(teamID string) (club.TeamInfo, error)
	GetTeamPlayers(teamID string) ([]club.PlayerInfo, error)
	GetMatch(matchID string) (*club.MatchRecord, error)
	SaveMatchState(m *club.MatchRecord) error
	GetAttending(matchID string) (map[string]club.AttendanceStatus, error)
	InsertMatchEvent(matchID, eventID, playerID, eventType string, minute int, notes string) error
	DeleteMatchEvent(eventID string) error
	FinalizeMatch(m *club.MatchRecord, totals map[string]club.CareerDelta) error
}
