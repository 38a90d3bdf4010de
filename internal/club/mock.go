package club

import "sync"

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertTeamFunc           func(team TeamInfo) error
	GetTeamFunc              func(teamID string) (TeamInfo, error)
	UpsertPlayersFunc        func(players []PlayerInfo) error
	GetPlayerFunc            func(playerID string) (PlayerInfo, error)
	GetTeamPlayersFunc       func(teamID string) ([]PlayerInfo, error)
	CreateMatchFunc          func(m *MatchRecord) error
	GetMatchFunc             func(matchID string) (*MatchRecord, error)
	SaveMatchStateFunc       func(m *MatchRecord) error
	InsertMatchEventFunc     func(matchID, eventID, playerID, eventType string, minute int, notes string) error
	DeleteMatchEventFunc     func(eventID string) error
	SetAttendanceFunc        func(matchID, playerID string, status AttendanceStatus) error
	GetAttendingFunc         func(matchID string) (map[string]AttendanceStatus, error)
	FinalizeMatchFunc        func(m *MatchRecord, totals map[string]CareerDelta) error
	GetCareerLeaderboardFunc func(teamID string) ([]LeaderboardEntry, error)
	ClearFunc                func()

	// Call records
	SaveMatchStateCalls []*MatchRecord
	FinalizeMatchCalls  []struct {
		Match  *MatchRecord
		Totals map[string]CareerDelta
	}
	InsertMatchEventCalls []struct {
		MatchID   string
		EventID   string
		PlayerID  string
		EventType string
		Minute    int
		Notes     string
	}
	DeleteMatchEventCalls []string
	SetAttendanceCalls    []struct {
		MatchID  string
		PlayerID string
		Status   AttendanceStatus
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMatchStateCalls = nil
	m.FinalizeMatchCalls = nil
	m.InsertMatchEventCalls = nil
	m.DeleteMatchEventCalls = nil
	m.SetAttendanceCalls = nil
}

func (m *MockStore) UpsertTeam(team TeamInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertTeamFunc != nil {
		return m.UpsertTeamFunc(team)
	}
	return nil
}

func (m *MockStore) GetTeam(teamID string) (TeamInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return TeamInfo{}, ErrNotFound
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return PlayerInfo{}, ErrNotFound
}

func (m *MockStore) GetTeamPlayers(teamID string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamPlayersFunc != nil {
		return m.GetTeamPlayersFunc(teamID)
	}
	return nil, nil
}

func (m *MockStore) CreateMatch(rec *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(rec)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) SaveMatchState(rec *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMatchStateCalls = append(m.SaveMatchStateCalls, rec)
	if m.SaveMatchStateFunc != nil {
		return m.SaveMatchStateFunc(rec)
	}
	return nil
}

func (m *MockStore) InsertMatchEvent(matchID, eventID, playerID, eventType string, minute int, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchEventCalls = append(m.InsertMatchEventCalls, struct {
		MatchID   string
		EventID   string
		PlayerID  string
		EventType string
		Minute    int
		Notes     string
	}{matchID, eventID, playerID, eventType, minute, notes})
	if m.InsertMatchEventFunc != nil {
		return m.InsertMatchEventFunc(matchID, eventID, playerID, eventType, minute, notes)
	}
	return nil
}

func (m *MockStore) DeleteMatchEvent(eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchEventCalls = append(m.DeleteMatchEventCalls, eventID)
	if m.DeleteMatchEventFunc != nil {
		return m.DeleteMatchEventFunc(eventID)
	}
	return nil
}

func (m *MockStore) SetAttendance(matchID, playerID string, status AttendanceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetAttendanceCalls = append(m.SetAttendanceCalls, struct {
		MatchID  string
		PlayerID string
		Status   AttendanceStatus
	}{matchID, playerID, status})
	if m.SetAttendanceFunc != nil {
		return m.SetAttendanceFunc(matchID, playerID, status)
	}
	return nil
}

func (m *MockStore) GetAttending(matchID string) (map[string]AttendanceStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAttendingFunc != nil {
		return m.GetAttendingFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) FinalizeMatch(rec *MatchRecord, totals map[string]CareerDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeMatchCalls = append(m.FinalizeMatchCalls, struct {
		Match  *MatchRecord
		Totals map[string]CareerDelta
	}{rec, totals})
	if m.FinalizeMatchFunc != nil {
		return m.FinalizeMatchFunc(rec, totals)
	}
	return nil
}

func (m *MockStore) GetCareerLeaderboard(teamID string) ([]LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCareerLeaderboardFunc != nil {
		return m.GetCareerLeaderboardFunc(teamID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
