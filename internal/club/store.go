package club

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertTeam inserts a team or updates its saved defaults.
func (s *store) UpsertTeam(team TeamInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positionsJSON, err := json.Marshal(team.DefaultPositions)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, match_format, default_formation, default_positions)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			match_format = excluded.match_format,
			default_formation = excluded.default_formation,
			default_positions = excluded.default_positions;
	`, team.ID, team.Name, team.MatchFormat, team.DefaultFormation, positionsJSON)
	return err
}

func (s *store) GetTeam(teamID string) (TeamInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var team TeamInfo
	var positionsJSON sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, match_format, default_formation, default_positions
		FROM teams WHERE id = ?
	`, teamID).Scan(&team.ID, &team.Name, &team.MatchFormat, &team.DefaultFormation, &positionsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return TeamInfo{}, ErrNotFound
		}
		return TeamInfo{}, err
	}

	team.DefaultPositions = map[string]string{}
	if positionsJSON.Valid && positionsJSON.String != "" {
		if err := json.Unmarshal([]byte(positionsJSON.String), &team.DefaultPositions); err != nil {
			log.Error("Failed to unmarshal default_positions", "error", err, "teamID", teamID)
		}
	}
	return team, nil
}

// UpsertPlayers inserts or updates players. It is "dumb" about career totals:
// ON CONFLICT only the roster fields change, so re-seeding a squad never
// resets anyone's career numbers.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, team_id, name, squad_number, total_goals, total_assists, total_tackles, total_saves, games_played, total_time_played_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_id = excluded.team_id,
			name = excluded.name,
			squad_number = excluded.squad_number;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(p.ID, p.TeamID, p.Name, p.SquadNumber, p.TotalGoals, p.TotalAssists, p.TotalTackles, p.TotalSaves, p.GamesPlayed, p.TotalMinutes)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *store) GetPlayer(playerID string) (PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PlayerInfo
	err := s.db.QueryRow(`
		SELECT id, team_id, name, squad_number, total_goals, total_assists, total_tackles, total_saves, games_played, total_time_played_minutes
		FROM players WHERE id = ?
	`, playerID).Scan(&p.ID, &p.TeamID, &p.Name, &p.SquadNumber, &p.TotalGoals, &p.TotalAssists, &p.TotalTackles, &p.TotalSaves, &p.GamesPlayed, &p.TotalMinutes)
	if err != nil {
		if err == sql.ErrNoRows {
			return PlayerInfo{}, ErrNotFound
		}
		return PlayerInfo{}, err
	}
	return p, nil
}

func (s *store) GetTeamPlayers(teamID string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, team_id, name, squad_number, total_goals, total_assists, total_tackles, total_saves, games_played, total_time_played_minutes
		FROM players WHERE team_id = ? ORDER BY squad_number, name
	`, teamID)
	if err != nil {
		log.Error("Failed to query team players", "error", err, "teamID", teamID)
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.SquadNumber, &p.TotalGoals, &p.TotalAssists, &p.TotalTackles, &p.TotalSaves, &p.GamesPlayed, &p.TotalMinutes); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

// CreateMatch inserts a new match. The live-state columns start at their
// zero values; the snapshot is seeded on first open.
func (s *store) CreateMatch(m *MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols, args, err := liveColumns(m)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO matches (id, team_id, opponent, kickoff, match_format, formation_name, is_snapshot_created, match_status, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cols)

	status := m.Status
	if status == "" {
		status = StatusNotStarted
	}
	all := append([]any{m.ID, m.TeamID, m.Opponent, m.Kickoff, m.MatchFormat, m.FormationName, m.SnapshotCreated, status}, args...)
	_, err = s.db.Exec(query, all...)
	return err
}

// liveColumns marshals the live-state portion of a match record. Column order
// matches the placeholder order used by CreateMatch and SaveMatchState.
func liveColumns(m *MatchRecord) (string, []any, error) {
	minutesJSON, err := json.Marshal(m.PlayerMinutes)
	if err != nil {
		return "", nil, err
	}
	positionsJSON, err := json.Marshal(m.PlayerPositions)
	if err != nil {
		return "", nil, err
	}
	subsJSON, err := json.Marshal(m.SubstitutionHistory)
	if err != nil {
		return "", nil, err
	}
	goalsJSON, err := json.Marshal(m.RecordedGoals)
	if err != nil {
		return "", nil, err
	}
	eventsJSON, err := json.Marshal(m.FinalMatchEvents)
	if err != nil {
		return "", nil, err
	}
	statsJSON, err := json.Marshal(m.PlayerStats)
	if err != nil {
		return "", nil, err
	}

	cols := "player_positions, current_match_time, our_score, opponent_score, player_minutes, substitution_history, recorded_goals, final_match_events, player_stats"
	args := []any{positionsJSON, m.CurrentMatchTime, m.OurScore, m.OpponentScore, minutesJSON, subsJSON, goalsJSON, eventsJSON, statsJSON}
	return cols, args, nil
}

// SaveMatchState writes the whole live state of an in-progress match. It never
// touches career totals; those only move on FinalizeMatch.
func (s *store) SaveMatchState(m *MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMatchStateLocked(s.db, m)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) saveMatchStateLocked(ex execer, m *MatchRecord) error {
	_, args, err := liveColumns(m)
	if err != nil {
		return err
	}

	all := append(args, m.FormationName, m.SnapshotCreated, m.Status, m.ID)
	res, err := ex.Exec(`
		UPDATE matches SET
			player_positions = ?,
			current_match_time = ?,
			our_score = ?,
			opponent_score = ?,
			player_minutes = ?,
			substitution_history = ?,
			recorded_goals = ?,
			final_match_events = ?,
			player_stats = ?,
			formation_name = ?,
			is_snapshot_created = ?,
			match_status = ?
		WHERE id = ?
	`, all...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *store) GetMatch(matchID string) (*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, team_id, opponent, kickoff, match_format, formation_name, player_positions,
			current_match_time, our_score, opponent_score, player_minutes, substitution_history,
			recorded_goals, final_match_events, player_stats, match_status, is_snapshot_created
		FROM matches WHERE id = ?
	`, matchID)

	m, err := s.scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// scanMatch is a helper function to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*MatchRecord, error) {
	var m MatchRecord
	var positionsJSON, minutesJSON, subsJSON, goalsJSON, eventsJSON, statsJSON sql.NullString

	err := scanner.Scan(
		&m.ID, &m.TeamID, &m.Opponent, &m.Kickoff, &m.MatchFormat, &m.FormationName, &positionsJSON,
		&m.CurrentMatchTime, &m.OurScore, &m.OpponentScore, &minutesJSON, &subsJSON,
		&goalsJSON, &eventsJSON, &statsJSON, &m.Status, &m.SnapshotCreated,
	)
	if err != nil {
		return nil, err
	}

	unmarshalColumn(positionsJSON, &m.PlayerPositions, "player_positions", m.ID)
	unmarshalColumn(minutesJSON, &m.PlayerMinutes, "player_minutes", m.ID)
	unmarshalColumn(subsJSON, &m.SubstitutionHistory, "substitution_history", m.ID)
	unmarshalColumn(goalsJSON, &m.RecordedGoals, "recorded_goals", m.ID)
	unmarshalColumn(eventsJSON, &m.FinalMatchEvents, "final_match_events", m.ID)
	unmarshalColumn(statsJSON, &m.PlayerStats, "player_stats", m.ID)

	if m.PlayerPositions == nil {
		m.PlayerPositions = map[string]string{}
	}
	return &m, nil
}

func unmarshalColumn[T any](col sql.NullString, dst *T, name, matchID string) {
	if !col.Valid || col.String == "" {
		return
	}
	if err := json.Unmarshal([]byte(col.String), dst); err != nil {
		log.Error("Failed to unmarshal match column", "column", name, "error", err, "matchID", matchID)
	}
}

// InsertMatchEvent appends one row to the per-event audit trail.
func (s *store) InsertMatchEvent(matchID, eventID, playerID, eventType string, minute int, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO match_events (id, match_id, player_id, event_type, minute, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, eventID, matchID, playerID, eventType, minute, notes)
	return err
}

func (s *store) DeleteMatchEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM match_events WHERE id = ?", eventID)
	return err
}

func (s *store) SetAttendance(matchID, playerID string, status AttendanceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO attendance (match_id, player_id, status)
		VALUES (?, ?, ?)
		ON CONFLICT(match_id, player_id) DO UPDATE SET status = excluded.status;
	`, matchID, playerID, status)
	return err
}

func (s *store) GetAttending(matchID string) (map[string]AttendanceStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT player_id, status FROM attendance WHERE match_id = ?", matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendance := make(map[string]AttendanceStatus)
	for rows.Next() {
		var playerID string
		var status AttendanceStatus
		if err := rows.Scan(&playerID, &status); err != nil {
			log.Error("Failed to scan attendance row", "error", err, "matchID", matchID)
			continue
		}
		attendance[playerID] = status
	}
	return attendance, nil
}

// FinalizeMatch writes the completed match state and folds the career deltas
// into player totals in one transaction. The status flip is guarded, so a
// retried finalize never double-counts anyone's career.
func (s *store) FinalizeMatch(m *MatchRecord, totals map[string]CareerDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec("UPDATE matches SET match_status = ? WHERE id = ? AND match_status != ?", StatusCompleted, m.ID, StatusCompleted)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		// Already completed (or missing). Retry of a finalize that already
		// committed; career totals stay untouched.
		tx.Rollback()
		if _, err := s.getMatchStatus(m.ID); err != nil {
			return err
		}
		log.Info("Match already finalized, skipping career update", "matchID", m.ID)
		return nil
	}

	m.Status = StatusCompleted
	if err := s.saveMatchStateLocked(tx, m); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, total_goals, total_assists, total_tackles, total_saves, games_played, total_time_played_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_goals = total_goals + excluded.total_goals,
			total_assists = total_assists + excluded.total_assists,
			total_tackles = total_tackles + excluded.total_tackles,
			total_saves = total_saves + excluded.total_saves,
			games_played = games_played + excluded.games_played,
			total_time_played_minutes = total_time_played_minutes + excluded.total_time_played_minutes;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for playerID, delta := range totals {
		_, err = stmt.Exec(playerID, delta.Goals, delta.Assists, delta.Tackles, delta.Saves, delta.GamesPlayed, delta.Minutes)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Finalized match", "matchID", m.ID, "players", len(totals))
	return nil
}

func (s *store) getMatchStatus(matchID string) (MatchStatus, error) {
	var status MatchStatus
	err := s.db.QueryRow("SELECT match_status FROM matches WHERE id = ?", matchID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return status, nil
}

// GetCareerLeaderboard returns the team's players ordered by career goals.
func (s *store) GetCareerLeaderboard(teamID string) ([]LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, total_goals, total_assists, total_tackles, total_saves, games_played, total_time_played_minutes
		FROM players
		WHERE team_id = ?
		ORDER BY total_goals DESC, total_assists DESC, games_played DESC, name;
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.TotalGoals, &e.TotalAssists, &e.TotalTackles, &e.TotalSaves, &e.GamesPlayed, &e.TotalMinutes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"attendance", "match_events", "matches", "players", "teams"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
