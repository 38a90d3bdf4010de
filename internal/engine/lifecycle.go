package engine

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/formation"
	"github.com/pitchside/matchday/internal/lineup"
)

// Manager owns the live engines, one per open match.
type Manager struct {
	mu      sync.Mutex
	deps    Deps
	engines map[string]*Engine
}

// NewManager creates an empty manager.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:    deps,
		engines: make(map[string]*Engine),
	}
}

// Open returns the live engine for a match, creating it on first access. A
// fresh match is seeded from the team's saved defaults; a match with a saved
// snapshot resumes exactly where it left off. Completed matches cannot be
// reopened.
func (m *Manager) Open(matchID string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.engines[matchID]; ok {
		return e, nil
	}

	rec, err := m.deps.Store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if rec.Status == club.StatusCompleted {
		return nil, ErrMatchCompleted
	}

	team, err := m.deps.Store.GetTeam(rec.TeamID)
	if err != nil {
		return nil, fmt.Errorf("loading team %s: %w", rec.TeamID, err)
	}
	squad, err := m.matchSquad(matchID, rec.TeamID)
	if err != nil {
		return nil, err
	}

	if rec.MatchFormat == "" {
		rec.MatchFormat = team.MatchFormat
	}

	if !rec.SnapshotCreated {
		m.seedSnapshot(rec, team, squad)
	}

	e := newEngine(m.deps, rec, team, squad)
	if !rec.SnapshotCreated || rec.Status == club.StatusNotStarted {
		e.mu.Lock()
		e.status = club.StatusInProgress
		e.mu.Unlock()
		if err := e.Persist(); err != nil {
			return nil, fmt.Errorf("saving initial snapshot: %w", err)
		}
	}

	m.engines[matchID] = e
	m.deps.Metrics.IncMatchesOpened()
	log.Info("Opened live match", "matchID", matchID, "opponent", rec.Opponent, "resumed", rec.SnapshotCreated)
	return e, nil
}

// matchSquad builds the match-day squad: the team roster, narrowed to players
// who RSVPed attending when any RSVPs exist.
func (m *Manager) matchSquad(matchID, teamID string) ([]lineup.Player, error) {
	players, err := m.deps.Store.GetTeamPlayers(teamID)
	if err != nil {
		return nil, fmt.Errorf("loading players for team %s: %w", teamID, err)
	}
	attendance, err := m.deps.Store.GetAttending(matchID)
	if err != nil {
		return nil, fmt.Errorf("loading attendance: %w", err)
	}

	var squad []lineup.Player
	for _, p := range players {
		if len(attendance) > 0 && attendance[p.ID] != club.Attending {
			continue
		}
		squad = append(squad, lineup.Player{ID: p.ID, Name: p.Name})
	}
	return squad, nil
}

// seedSnapshot fills a never-opened match record from the team defaults. Saved
// default positions only carry over for players in the squad and slots that
// exist in the formation.
func (m *Manager) seedSnapshot(rec *club.MatchRecord, team club.TeamInfo, squad []lineup.Player) {
	format := formation.Format(rec.MatchFormat)
	if rec.FormationName == "" {
		rec.FormationName = team.DefaultFormation
	}
	slots := formation.Slots(format, rec.FormationName)
	if len(slots) == 0 {
		rec.FormationName = formation.Default(format)
		slots = formation.Slots(format, rec.FormationName)
	}

	valid := make(map[string]bool, len(slots))
	for _, s := range slots {
		valid[s.ID] = true
	}
	inSquad := make(map[string]bool, len(squad))
	for _, p := range squad {
		inSquad[p.ID] = true
	}

	assignment := make(map[string]string)
	claimed := make(map[string]bool)
	for slotID, playerID := range team.DefaultPositions {
		if !valid[slotID] || !inSquad[playerID] || claimed[playerID] {
			continue
		}
		assignment[slotID] = playerID
		claimed[playerID] = true
	}
	rec.PlayerPositions = assignment
}

// Get returns an already-open engine.
func (m *Manager) Get(matchID string) (*Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[matchID]
	return e, ok
}

// Finalize ends the match and retires its engine. The engine stays retired
// even if notifications fail; only a storage error keeps it open.
func (m *Manager) Finalize(matchID string) error {
	m.mu.Lock()
	e, ok := m.engines[matchID]
	m.mu.Unlock()
	if !ok {
		return club.ErrNotFound
	}

	if err := e.Finalize(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.engines, matchID)
	m.mu.Unlock()
	return nil
}
