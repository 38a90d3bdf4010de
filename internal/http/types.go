package http

import (
	"net/http"

	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/config"
	"github.com/pitchside/matchday/internal/engine"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
)

type Server struct {
	Store          club.ClubStore
	Manager        *engine.Manager
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
}

// Request payloads. Everything the live UI posts is small JSON.

type createMatchRequest struct {
	TeamID        string `json:"team_id"`
	Opponent      string `json:"opponent"`
	Kickoff       int64  `json:"kickoff"`
	MatchFormat   string `json:"match_format"`
	FormationName string `json:"formation_name"`
}

type attendanceRequest struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}

type adjustClockRequest struct {
	DeltaMinutes int `json:"delta_minutes"`
}

type logStatRequest struct {
	StatType string `json:"stat_type"`
	PlayerID string `json:"player_id"`
	AssistID string `json:"assist_id"`
	OwnGoal  bool   `json:"own_goal"`
}

type adjustScoreRequest struct {
	Ours  bool `json:"ours"`
	Delta int  `json:"delta"`
}

type removeGoalRequest struct {
	Timestamp string `json:"timestamp"`
}

type substituteRequest struct {
	PlayerOut string `json:"player_out"`
	PlayerIn  string `json:"player_in"`
}

type clickRequest struct {
	PlayerID string `json:"player_id"`
	SlotID   string `json:"slot_id"`
}

type formationRequest struct {
	FormationName string `json:"formation_name"`
}
