package notifier

import (
	"sync"

	"github.com/pitchside/matchday/internal/club"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendGoalAlertFunc      func(alert GoalAlert, dryRun bool) error
	SendFullTimeReportFunc func(report FullTimeReport, dryRun bool) error
	SendLeaderboardFunc    func(entries []club.LeaderboardEntry, dryRun bool) error

	// Call records
	SendGoalAlertCalls      []GoalAlert
	SendFullTimeReportCalls []FullTimeReport
	SendLeaderboardCalls    [][]club.LeaderboardEntry
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGoalAlertCalls = nil
	m.SendFullTimeReportCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendGoalAlert(alert GoalAlert, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGoalAlertCalls = append(m.SendGoalAlertCalls, alert)
	if m.SendGoalAlertFunc != nil {
		return m.SendGoalAlertFunc(alert, dryRun)
	}
	return nil
}

func (m *Mock) SendFullTimeReport(report FullTimeReport, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFullTimeReportCalls = append(m.SendFullTimeReportCalls, report)
	if m.SendFullTimeReportFunc != nil {
		return m.SendFullTimeReportFunc(report, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(entries []club.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, entries)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(entries, dryRun)
	}
	return nil
}
