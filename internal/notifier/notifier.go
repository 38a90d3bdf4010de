package notifier

import "github.com/pitchside/matchday/internal/club"

// GoalAlert is everything needed to announce a goal moments after it is logged.
type GoalAlert struct {
	TeamName      string
	Opponent      string
	ScorerName    string
	AssistName    string
	Minute        int
	OurScore      int
	OpponentScore int
	OwnGoal       bool
	OpponentGoal  bool
}

// FullTimeReport summarises a finished match.
type FullTimeReport struct {
	TeamName      string
	Opponent      string
	OurScore      int
	OpponentScore int
	FinalMinute   int
	Scorers       []string
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendGoalAlert(alert GoalAlert, dryRun bool) error
	SendFullTimeReport(report FullTimeReport, dryRun bool) error
	SendLeaderboard(entries []club.LeaderboardEntry, dryRun bool) error
}
