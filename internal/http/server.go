package http

import (
	"net/http"

	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/config"
	"github.com/pitchside/matchday/internal/engine"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
)

func NewServer(store club.ClubStore, manager *engine.Manager, metricsSvc metrics.Metrics, metricsHandler http.Handler, notif notifier.Notifier, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Manager:        manager,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notif,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/announce", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/attendance", Chain(s.AttendanceHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/open", Chain(s.OpenMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/state", Chain(s.MatchStateHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/report", Chain(s.MatchReportHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/clock/start", Chain(s.StartClockHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/clock/pause", Chain(s.PauseClockHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/clock/reset", Chain(s.ResetClockHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/clock/adjust", Chain(s.AdjustClockHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/stat", Chain(s.LogStatHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/score/opponent", Chain(s.OpponentGoalHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/score/adjust", Chain(s.AdjustScoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/goal/remove", Chain(s.RemoveGoalHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/substitute", Chain(s.SubstituteHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/click/player", Chain(s.ClickPlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/click/slot", Chain(s.ClickSlotHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/bench", Chain(s.BenchPlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/remove-player", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/formation", Chain(s.ChangeFormationHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/end", Chain(s.EndMatchHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
