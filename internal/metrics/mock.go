package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	matchesOpened     int
	matchesFinalized  int
	statsLogged       int
	substitutions     int
	autosaves         int
	autosaveFailures  int
	finalizeDurations []float64
	notifSent         int
	notifFailed       int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		finalizeDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesOpened() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesOpened++
}

func (m *Mock) IncMatchesFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFinalized++
}

func (m *Mock) IncStatsLogged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsLogged++
}

func (m *Mock) IncSubstitutions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substitutions++
}

func (m *Mock) IncAutosaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autosaves++
}

func (m *Mock) IncAutosaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autosaveFailures++
}

func (m *Mock) ObserveFinalizeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeDurations = append(m.finalizeDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesOpened returns the number of times IncMatchesOpened was called.
func (m *Mock) MatchesOpened() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesOpened
}

// MatchesFinalized returns the number of times IncMatchesFinalized was called.
func (m *Mock) MatchesFinalized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFinalized
}

// StatsLogged returns the number of times IncStatsLogged was called.
func (m *Mock) StatsLogged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsLogged
}

// Substitutions returns the number of times IncSubstitutions was called.
func (m *Mock) Substitutions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.substitutions
}

// Autosaves returns the number of times IncAutosaves was called.
func (m *Mock) Autosaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autosaves
}

// AutosaveFailures returns the number of times IncAutosaveFailures was called.
func (m *Mock) AutosaveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autosaveFailures
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
