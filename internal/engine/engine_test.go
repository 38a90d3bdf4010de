package engine_test

import (
	"testing"

	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/engine"
	"github.com/pitchside/matchday/internal/ledger"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
	"github.com/pitchside/matchday/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store    *club.MockStore
	metrics  *metrics.Mock
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	manager  *engine.Manager
}

func newHarness(t *testing.T, rec *club.MatchRecord) *harness {
	t.Helper()
	h := &harness{
		store:    club.NewMock(),
		metrics:  metrics.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(""),
	}
	h.store.GetMatchFunc = func(matchID string) (*club.MatchRecord, error) {
		if matchID == rec.ID {
			return rec, nil
		}
		return nil, club.ErrNotFound
	}
	h.store.GetTeamFunc = func(teamID string) (club.TeamInfo, error) {
		return club.TeamInfo{
			ID:               "team-1",
			Name:             "U11 Lions",
			MatchFormat:      "7v7",
			DefaultFormation: "2-3-1",
			DefaultPositions: map[string]string{"gk": "p1", "st": "p3"},
		}, nil
	}
	h.store.GetTeamPlayersFunc = func(teamID string) ([]club.PlayerInfo, error) {
		return []club.PlayerInfo{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bobby"},
			{ID: "p3", Name: "Carla"},
			{ID: "p4", Name: "Dario"},
		}, nil
	}
	h.manager = engine.NewManager(engine.Deps{
		Store:    h.store,
		Metrics:  h.metrics,
		Notifier: h.notifier,
		PubSub:   h.pubsub,
		DryRun:   true,
	})
	return h
}

func freshMatch() *club.MatchRecord {
	return &club.MatchRecord{
		ID:       "m1",
		TeamID:   "team-1",
		Opponent: "Rovers",
		Status:   club.StatusNotStarted,
	}
}

func tick(e *engine.Engine, n int) {
	for range n {
		e.Tick()
	}
}

func TestOpen(t *testing.T) {
	t.Run("fresh match is seeded from team defaults", func(t *testing.T) {
		h := newHarness(t, freshMatch())
		e, err := h.manager.Open("m1")
		require.NoError(t, err)

		state := e.State()
		assert.Equal(t, "2-3-1", state.Formation)
		assert.Equal(t, map[string]string{"gk": "p1", "st": "p3"}, state.Assignment)
		assert.Equal(t, club.StatusInProgress, state.Status)
		assert.Len(t, state.Squad, 4)
		require.NotEmpty(t, h.store.SaveMatchStateCalls, "initial snapshot is saved eagerly")
		assert.True(t, h.store.SaveMatchStateCalls[0].SnapshotCreated)
		assert.Equal(t, 1, h.metrics.MatchesOpened())
	})

	t.Run("second open returns the same engine", func(t *testing.T) {
		h := newHarness(t, freshMatch())
		e1, err := h.manager.Open("m1")
		require.NoError(t, err)
		e2, err := h.manager.Open("m1")
		require.NoError(t, err)
		assert.Same(t, e1, e2)
	})

	t.Run("RSVPs narrow the squad", func(t *testing.T) {
		h := newHarness(t, freshMatch())
		h.store.GetAttendingFunc = func(matchID string) (map[string]club.AttendanceStatus, error) {
			return map[string]club.AttendanceStatus{
				"p1": club.Attending,
				"p2": club.Attending,
				"p3": club.Declined,
			}, nil
		}
		e, err := h.manager.Open("m1")
		require.NoError(t, err)

		state := e.State()
		assert.Len(t, state.Squad, 2)
		_, hasStriker := state.Assignment["st"]
		assert.False(t, hasStriker, "declined player is not seeded into a slot")
	})

	t.Run("completed match cannot be reopened", func(t *testing.T) {
		rec := freshMatch()
		rec.Status = club.StatusCompleted
		h := newHarness(t, rec)
		_, err := h.manager.Open("m1")
		assert.ErrorIs(t, err, engine.ErrMatchCompleted)
	})

	t.Run("saved snapshot resumes where it left off", func(t *testing.T) {
		rec := freshMatch()
		rec.Status = club.StatusInProgress
		rec.SnapshotCreated = true
		rec.MatchFormat = "7v7"
		rec.FormationName = "2-3-1"
		rec.CurrentMatchTime = 900
		rec.OurScore = 2
		rec.OpponentScore = 1
		rec.PlayerPositions = map[string]string{"gk": "p1", "st": "p3"}
		rec.PlayerMinutes = club.MinutesState{
			Accrued: map[string]int64{"p1": 900, "p3": 300},
			Entry:   map[string]int64{"p1": 0, "p3": 600},
		}
		rec.FinalMatchEvents = []ledger.Event{{ID: "ev1", PlayerID: "p3", Type: ledger.EventGoal, Minute: 5}}
		rec.RecordedGoals = []ledger.RecordedGoal{{ScorerID: "p3", Minute: 5, Timestamp: "t1", GoalEventID: "ev1"}}

		h := newHarness(t, rec)
		e, err := h.manager.Open("m1")
		require.NoError(t, err)

		state := e.State()
		assert.Equal(t, int64(900), state.ClockSeconds)
		assert.Equal(t, 2, state.OurScore)
		assert.Equal(t, int64(900), state.PlayedSeconds["p1"])
		require.Len(t, state.Goals, 1)

		// Accrual resumes from the restored offsets.
		tick(e, 60)
		state = e.State()
		assert.Equal(t, int64(960), state.PlayedSeconds["p1"])
		assert.Equal(t, int64(360), state.PlayedSeconds["p3"])
	})
}

func TestClockAndMinutes(t *testing.T) {
	h := newHarness(t, freshMatch())
	e, err := h.manager.Open("m1")
	require.NoError(t, err)

	tick(e, 600)
	state := e.State()
	assert.Equal(t, int64(600), state.ClockSeconds)
	assert.Equal(t, 10, state.Minute)
	assert.Equal(t, int64(600), state.PlayedSeconds["p1"])

	t.Run("substitution freezes out, starts in", func(t *testing.T) {
		require.NoError(t, e.Substitute("p3", "p4"))
		tick(e, 300)

		state := e.State()
		assert.Equal(t, int64(600), state.PlayedSeconds["p3"])
		assert.Equal(t, int64(300), state.PlayedSeconds["p4"])
		require.Len(t, state.SubLog, 1)
		assert.Equal(t, 10, state.SubLog[0].Minute)
		assert.Equal(t, "Dario", state.SubLog[0].PlayerIn)
		assert.Equal(t, "Carla", state.SubLog[0].PlayerOut)
		assert.Equal(t, 1, h.metrics.Substitutions())
	})

	t.Run("adjust shifts on-pitch minutes with the clock", func(t *testing.T) {
		require.NoError(t, e.AdjustClock(2))
		state := e.State()
		assert.Equal(t, int64(1020), state.ClockSeconds)
		assert.Equal(t, int64(1020), state.PlayedSeconds["p1"])
		assert.Equal(t, int64(600), state.PlayedSeconds["p3"], "frozen players do not move")
	})

	t.Run("reset zeroes the clock and all minutes", func(t *testing.T) {
		require.NoError(t, e.ResetClock())
		state := e.State()
		assert.Equal(t, int64(0), state.ClockSeconds)
		assert.Equal(t, int64(0), state.PlayedSeconds["p1"])
	})
}

func TestScoring(t *testing.T) {
	h := newHarness(t, freshMatch())
	e, err := h.manager.Open("m1")
	require.NoError(t, err)
	tick(e, 720)

	t.Run("goal with assist", func(t *testing.T) {
		require.NoError(t, e.LogStat(ledger.EventGoal, "p3", "p1", false))

		state := e.State()
		assert.Equal(t, 1, state.OurScore)
		require.Len(t, state.Goals, 1)
		assert.Equal(t, 12, state.Goals[0].Minute)
		assert.Equal(t, 1, state.Stats["p3"].Goals)
		assert.Equal(t, 1, state.Stats["p1"].Assists)

		require.Len(t, h.store.InsertMatchEventCalls, 2, "goal and assist rows persisted")
		require.Len(t, h.notifier.SendGoalAlertCalls, 1)
		alert := h.notifier.SendGoalAlertCalls[0]
		assert.Equal(t, "Carla", alert.ScorerName)
		assert.Equal(t, "Alice", alert.AssistName)
		assert.Equal(t, 1, alert.OurScore)
	})

	t.Run("self assist is rejected", func(t *testing.T) {
		assert.ErrorIs(t, e.LogStat(ledger.EventGoal, "p3", "p3", false), ledger.ErrSelfAssist)
	})

	t.Run("opponent own goal counts for us without attribution", func(t *testing.T) {
		require.NoError(t, e.LogStat(ledger.EventGoal, "", "", true))
		state := e.State()
		assert.Equal(t, 2, state.OurScore)
		require.Len(t, state.Goals, 2)
		assert.True(t, state.Goals[1].OwnGoal)
	})

	t.Run("opponent goal only moves their score", func(t *testing.T) {
		require.NoError(t, e.OpponentGoal())
		state := e.State()
		assert.Equal(t, 1, state.OpponentScore)
		assert.Len(t, state.Goals, 2, "no recorded goal for the opposition")
	})

	t.Run("removing a goal reverses score and events", func(t *testing.T) {
		state := e.State()
		target := state.Goals[0]
		require.NoError(t, e.RemoveGoal(target.Timestamp))

		state = e.State()
		assert.Equal(t, 1, state.OurScore)
		assert.Len(t, state.Goals, 1)
		assert.Equal(t, 0, state.Stats["p3"].Goals)
		assert.Len(t, h.store.DeleteMatchEventCalls, 2, "goal and linked assist rows deleted")
	})

	t.Run("our score cannot be raised without a logged goal", func(t *testing.T) {
		assert.ErrorIs(t, e.AdjustScore(true, 1), engine.ErrScoreNeedsGoal)
		state := e.State()
		assert.Equal(t, 1, state.OurScore)
		assert.Len(t, state.Goals, 1, "rejection leaves the goal list alone")
	})

	t.Run("our score cannot be lowered past recorded goals", func(t *testing.T) {
		assert.ErrorIs(t, e.AdjustScore(true, -1), engine.ErrGoalsStillRecorded)
		assert.Equal(t, 1, e.State().OurScore)
	})

	t.Run("bare decrement works once no goals remain", func(t *testing.T) {
		state := e.State()
		require.Len(t, state.Goals, 1)
		require.NoError(t, e.RemoveGoal(state.Goals[0].Timestamp))
		require.Equal(t, 0, e.State().OurScore)

		require.NoError(t, e.AdjustScore(true, -1))
		assert.Equal(t, 0, e.State().OurScore, "scores clamp at zero")
	})

	t.Run("opponent score adjusts freely", func(t *testing.T) {
		require.NoError(t, e.AdjustScore(false, 1))
		assert.Equal(t, 2, e.State().OpponentScore)

		require.NoError(t, e.AdjustScore(false, -5))
		assert.Equal(t, 0, e.State().OpponentScore, "scores clamp at zero")
	})
}

func TestChangeFormation(t *testing.T) {
	h := newHarness(t, freshMatch())
	e, err := h.manager.Open("m1")
	require.NoError(t, err)

	require.NoError(t, e.ChangeFormation("3-2-1"))
	state := e.State()
	assert.Equal(t, "3-2-1", state.Formation)
	assert.Len(t, state.Assignment, 2, "both seeded players keep a slot")
	assert.Empty(t, state.SubLog, "a remap is not a substitution")

	// 4-4-2 only exists for 11v11, not this 7v7 match. The rejection must
	// leave the current formation and lineup untouched.
	assert.ErrorIs(t, e.ChangeFormation("4-4-2"), engine.ErrUnknownFormation)
	state = e.State()
	assert.Equal(t, "3-2-1", state.Formation)
	assert.Len(t, state.Assignment, 2)
}

func TestFinalize(t *testing.T) {
	h := newHarness(t, freshMatch())
	e, err := h.manager.Open("m1")
	require.NoError(t, err)

	tick(e, 2700)
	require.NoError(t, e.LogStat(ledger.EventGoal, "p3", "", false))
	require.NoError(t, e.LogStat(ledger.EventTackle, "p1", "", false))

	require.NoError(t, h.manager.Finalize("m1"))

	require.Len(t, h.store.FinalizeMatchCalls, 1)
	call := h.store.FinalizeMatchCalls[0]
	assert.Equal(t, club.StatusCompleted, call.Match.Status)
	assert.Equal(t, 1, call.Match.OurScore)

	// 2700s on the pitch is 45 minutes and a game played.
	assert.Equal(t, club.CareerDelta{Goals: 1, GamesPlayed: 1, Minutes: 45}, call.Totals["p3"])
	assert.Equal(t, club.CareerDelta{Tackles: 1, GamesPlayed: 1, Minutes: 45}, call.Totals["p1"])
	_, benched := call.Totals["p2"]
	assert.False(t, benched, "unused players get no career delta")

	require.Len(t, h.notifier.SendFullTimeReportCalls, 1)
	report := h.notifier.SendFullTimeReportCalls[0]
	assert.Equal(t, []string{"Carla"}, report.Scorers)
	assert.Equal(t, 45, report.FinalMinute)

	require.Len(t, h.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventMatchFinalized), h.pubsub.SendMessageCalls[0].Topic)

	assert.Equal(t, 1, h.metrics.MatchesFinalized())

	t.Run("engine is retired", func(t *testing.T) {
		_, ok := h.manager.Get("m1")
		assert.False(t, ok)
		assert.ErrorIs(t, e.StartClock(), engine.ErrMatchCompleted)
		assert.ErrorIs(t, e.LogStat(ledger.EventGoal, "p3", "", false), engine.ErrMatchCompleted)
	})

	t.Run("finalizing an unopened match errors", func(t *testing.T) {
		assert.ErrorIs(t, h.manager.Finalize("m1"), club.ErrNotFound)
	})
}

func TestFinalizeStorageFailureKeepsMatchOpen(t *testing.T) {
	h := newHarness(t, freshMatch())
	e, err := h.manager.Open("m1")
	require.NoError(t, err)

	h.store.FinalizeMatchFunc = func(m *club.MatchRecord, totals map[string]club.CareerDelta) error {
		return assert.AnError
	}
	assert.ErrorIs(t, h.manager.Finalize("m1"), assert.AnError)

	// Still open and editable.
	_, ok := h.manager.Get("m1")
	assert.True(t, ok)
	assert.NoError(t, e.StartClock())
	assert.NoError(t, e.PauseClock())
}
