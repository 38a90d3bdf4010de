package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/engine"
	"github.com/pitchside/matchday/internal/ledger"
	"github.com/pitchside/matchday/internal/lineup"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// openEngine resolves the live engine for the match in the URL, opening the
// match if this is the first touch. Completed matches are rejected with a
// pointer to the report endpoint.
func (s *Server) openEngine(w http.ResponseWriter, r *http.Request) (*engine.Engine, bool) {
	matchID := r.PathValue("id")
	e, err := s.Manager.Open(matchID)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrMatchCompleted):
			http.Error(w, "Match is completed; use the report endpoint", http.StatusConflict)
		case errors.Is(err, club.ErrNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		default:
			log.Error("Failed to open match", "error", err, "matchID", matchID)
			http.Error(w, "Failed to open match", http.StatusInternalServerError)
		}
		return nil, false
	}
	return e, true
}

// engineError translates engine/board/ledger errors into HTTP responses.
func engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrMatchCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrGoalNotFound), errors.Is(err, club.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrNoScorer),
		errors.Is(err, ledger.ErrSelfAssist),
		errors.Is(err, ledger.ErrUnknownStat),
		errors.Is(err, engine.ErrUnknownFormation),
		errors.Is(err, engine.ErrScoreNeedsGoal),
		errors.Is(err, engine.ErrGoalsStillRecorded),
		errors.Is(err, lineup.ErrUnknownPlayer),
		errors.Is(err, lineup.ErrNotOnPitch),
		errors.Is(err, lineup.ErrNotOnBench):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("Match operation failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}
		players, err := s.Store.GetTeamPlayers(teamID)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// LeaderboardHandler serves the career leaderboard for a team.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetCareerLeaderboard(teamID)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// AnnounceLeaderboardHandler posts the current leaderboard to the club's Slack
// channel. Without a Slack token configured this is a dry run.
func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetCareerLeaderboard(teamID)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		dryRun := s.Cfg.Slack.Token == ""
		if err := s.Notifier.SendLeaderboard(entries, dryRun); err != nil {
			log.Error("Failed to send leaderboard", "error", err)
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.TeamID == "" || req.Opponent == "" {
			http.Error(w, "team_id and opponent are required", http.StatusBadRequest)
			return
		}

		rec := &club.MatchRecord{
			ID:            uuid.NewString(),
			TeamID:        req.TeamID,
			Opponent:      req.Opponent,
			Kickoff:       req.Kickoff,
			MatchFormat:   req.MatchFormat,
			FormationName: req.FormationName,
			Status:        club.StatusNotStarted,
		}
		if err := s.Store.CreateMatch(rec); err != nil {
			log.Error("Failed to create match", "error", err)
			http.Error(w, "Failed to create match", http.StatusInternalServerError)
			return
		}
		log.Info("Created match", "matchID", rec.ID, "opponent", rec.Opponent)
		writeJSON(w, http.StatusCreated, rec)
	}
}

func (s *Server) AttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attendanceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		status := club.AttendanceStatus(req.Status)
		switch status {
		case club.Attending, club.Declined, club.Maybe:
		default:
			http.Error(w, "status must be attending, declined or maybe", http.StatusBadRequest)
			return
		}
		if err := s.Store.SetAttendance(r.PathValue("id"), req.PlayerID, status); err != nil {
			log.Error("Failed to set attendance", "error", err)
			http.Error(w, "Failed to set attendance", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) OpenMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) MatchStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

// MatchReportHandler serves the persisted record of a match, the read-only
// view used once a match is completed.
func (s *Server) MatchReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.Store.GetMatch(r.PathValue("id"))
		if err != nil {
			if errors.Is(err, club.ErrNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to load match", "error", err)
			http.Error(w, "Failed to load match", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// clockHandler wraps the shared open-act-respond shape of the clock endpoints.
func (s *Server) clockHandler(act func(e *engine.Engine) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := act(e); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) StartClockHandler() http.HandlerFunc {
	return s.clockHandler(func(e *engine.Engine) error { return e.StartClock() })
}

func (s *Server) PauseClockHandler() http.HandlerFunc {
	return s.clockHandler(func(e *engine.Engine) error { return e.PauseClock() })
}

func (s *Server) ResetClockHandler() http.HandlerFunc {
	return s.clockHandler(func(e *engine.Engine) error { return e.ResetClock() })
}

func (s *Server) AdjustClockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustClockRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.AdjustClock(req.DeltaMinutes); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) LogStatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logStatRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.LogStat(ledger.EventType(req.StatType), req.PlayerID, req.AssistID, req.OwnGoal); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) OpponentGoalHandler() http.HandlerFunc {
	return s.clockHandler(func(e *engine.Engine) error { return e.OpponentGoal() })
}

func (s *Server) AdjustScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustScoreRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.AdjustScore(req.Ours, req.Delta); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) RemoveGoalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeGoalRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.RemoveGoal(req.Timestamp); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) SubstituteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req substituteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.Substitute(req.PlayerOut, req.PlayerIn); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) ClickPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if _, err := e.ClickPlayer(req.PlayerID); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) ClickSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if _, err := e.ClickSlot(req.SlotID); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) BenchPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if _, err := e.MoveToBench(req.PlayerID); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.RemovePlayer(req.PlayerID); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) ChangeFormationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req formationRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, ok := s.openEngine(w, r)
		if !ok {
			return
		}
		if err := e.ChangeFormation(req.FormationName); err != nil {
			engineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e.State())
	}
}

func (s *Server) EndMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.openEngine(w, r); !ok {
			return
		}
		matchID := r.PathValue("id")
		if err := s.Manager.Finalize(matchID); err != nil {
			engineError(w, err)
			return
		}
		rec, err := s.Store.GetMatch(matchID)
		if err != nil {
			log.Error("Failed to load finalized match", "error", err, "matchID", matchID)
			http.Error(w, "Match finalized but report unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
