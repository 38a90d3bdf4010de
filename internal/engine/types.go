package engine

import (
	"errors"

	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/formation"
	"github.com/pitchside/matchday/internal/ledger"
	"github.com/pitchside/matchday/internal/lineup"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
	"github.com/pitchside/matchday/internal/pubsub"
)

var (
	// ErrMatchCompleted is returned for operations on a finalized match.
	ErrMatchCompleted = errors.New("engine: match already completed")
	// ErrUnknownFormation is returned when a formation change names a layout
	// the registry does not have for the match format.
	ErrUnknownFormation = errors.New("engine: unknown formation")
	// ErrScoreNeedsGoal is returned when a manual adjustment tries to raise
	// our score. Our goals carry attribution, so they go through LogStat.
	ErrScoreNeedsGoal = errors.New("engine: our score only increases through logged goals")
	// ErrGoalsStillRecorded is returned when a manual decrement would strand
	// recorded goal events above the score they account for.
	ErrGoalsStillRecorded = errors.New("engine: remove a recorded goal instead of adjusting the score")
)

// Deps bundles the collaborators a live match engine talks to.
type Deps struct {
	Store    Store
	Metrics  metrics.Metrics
	Notifier notifier.Notifier
	PubSub   pubsub.PubSubClient
	// DryRun suppresses outbound Slack traffic; messages are logged instead.
	DryRun bool
}

// State is a full point-in-time view of a live match, shaped for the HTTP
// layer. Everything in it is a copy; mutating it does not touch the engine.
type State struct {
	MatchID       string                        `json:"match_id"`
	TeamName      string                        `json:"team_name"`
	Opponent      string                        `json:"opponent"`
	Status        club.MatchStatus              `json:"match_status"`
	Format        formation.Format              `json:"match_format"`
	Formation     string                        `json:"formation_name"`
	Formations    []string                      `json:"available_formations"`
	Assignment    map[string]string             `json:"player_positions"`
	Squad         []lineup.Player               `json:"squad"`
	Bench         []lineup.Player               `json:"bench"`
	Selection     lineup.Selection              `json:"selection"`
	ClockSeconds  int64                         `json:"clock_seconds"`
	Minute        int                           `json:"minute"`
	Running       bool                          `json:"clock_running"`
	OurScore      int                           `json:"our_score"`
	OpponentScore int                           `json:"opponent_score"`
	Goals         []ledger.RecordedGoal         `json:"recorded_goals"`
	Events        []ledger.Event                `json:"match_events"`
	SubLog        []lineup.SubstitutionEntry    `json:"substitution_history"`
	PlayedSeconds map[string]int64              `json:"played_seconds"`
	Stats         map[string]ledger.PlayerStats `json:"player_stats"`
}
