package ledger_test

import (
	"testing"

	"github.com/pitchside/matchday/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStat(t *testing.T) {
	t.Run("goal with assist appends two events and one recorded goal", func(t *testing.T) {
		l := ledger.New()

		created, goal, err := l.LogStat(ledger.EventGoal, "playerA", "playerB", false, 23)
		require.NoError(t, err)
		require.NotNil(t, goal)
		require.Len(t, created, 2)

		assert.Equal(t, ledger.EventGoal, created[0].Type)
		assert.Equal(t, "playerA", created[0].PlayerID)
		assert.Equal(t, 23, created[0].Minute)
		assert.Equal(t, ledger.EventAssist, created[1].Type)
		assert.Equal(t, "playerB", created[1].PlayerID)
		assert.Equal(t, 23, created[1].Minute)

		assert.Equal(t, "playerA", goal.ScorerID)
		assert.Equal(t, "playerB", goal.AssistID)
		assert.NotEmpty(t, goal.Timestamp)
		assert.Equal(t, created[0].ID, goal.GoalEventID)
		assert.Equal(t, created[1].ID, goal.AssistEventID)

		assert.Len(t, l.Events(), 2)
		assert.Equal(t, 1, l.GoalCount())
	})

	t.Run("goal without assist appends one event", func(t *testing.T) {
		l := ledger.New()
		created, goal, err := l.LogStat(ledger.EventGoal, "playerA", "", false, 5)
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Empty(t, goal.AssistEventID)
		assert.Equal(t, 1, l.GoalCount())
	})

	t.Run("opponent own goal carries no attribution", func(t *testing.T) {
		l := ledger.New()
		created, goal, err := l.LogStat(ledger.EventGoal, "", "", true, 40)
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Empty(t, created[0].PlayerID)
		assert.Equal(t, "Own Goal by Opponent", created[0].Notes)
		assert.True(t, goal.OwnGoal)
		assert.Equal(t, 1, l.GoalCount())
	})

	t.Run("non-goal stats never touch the recorded goals log", func(t *testing.T) {
		l := ledger.New()
		for _, typ := range []ledger.EventType{ledger.EventTackle, ledger.EventSave, ledger.EventYellowCard, ledger.EventRedCard} {
			_, goal, err := l.LogStat(typ, "playerA", "", false, 10)
			require.NoError(t, err)
			assert.Nil(t, goal)
		}
		assert.Equal(t, 0, l.GoalCount())
		assert.Len(t, l.Events(), 4)
	})

	t.Run("rejects stat with no player", func(t *testing.T) {
		l := ledger.New()
		_, _, err := l.LogStat(ledger.EventTackle, "", "", false, 10)
		assert.ErrorIs(t, err, ledger.ErrNoScorer)
		assert.Empty(t, l.Events())
	})

	t.Run("rejects self assist", func(t *testing.T) {
		l := ledger.New()
		_, _, err := l.LogStat(ledger.EventGoal, "playerA", "playerA", false, 10)
		assert.ErrorIs(t, err, ledger.ErrSelfAssist)
		assert.Empty(t, l.Events())
	})

	t.Run("rejects assist on non-goal stat", func(t *testing.T) {
		l := ledger.New()
		_, _, err := l.LogStat(ledger.EventTackle, "playerA", "playerB", false, 10)
		assert.ErrorIs(t, err, ledger.ErrUnknownStat)
	})

	t.Run("rejects unknown stat type", func(t *testing.T) {
		l := ledger.New()
		_, _, err := l.LogStat(ledger.EventType("nutmeg"), "playerA", "", false, 10)
		assert.ErrorIs(t, err, ledger.ErrUnknownStat)
	})
}

func TestRemoveGoal(t *testing.T) {
	t.Run("removes goal and linked assist, leaves unrelated events", func(t *testing.T) {
		l := ledger.New()
		_, _, err := l.LogStat(ledger.EventTackle, "playerC", "", false, 12)
		require.NoError(t, err)
		_, goal, err := l.LogStat(ledger.EventGoal, "playerA", "playerB", false, 23)
		require.NoError(t, err)

		removed, err := l.RemoveGoal(goal.Timestamp)
		require.NoError(t, err)
		assert.Len(t, removed, 2)

		assert.Equal(t, 0, l.GoalCount())
		events := l.Events()
		require.Len(t, events, 1)
		assert.Equal(t, ledger.EventTackle, events[0].Type)
		assert.Equal(t, "playerC", events[0].PlayerID)
	})

	t.Run("removes own goal by event id even with same-minute twin", func(t *testing.T) {
		l := ledger.New()
		_, first, err := l.LogStat(ledger.EventGoal, "", "", true, 30)
		require.NoError(t, err)
		_, _, err = l.LogStat(ledger.EventGoal, "", "", true, 30)
		require.NoError(t, err)

		removed, err := l.RemoveGoal(first.Timestamp)
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Equal(t, first.GoalEventID, removed[0].ID)
		assert.Equal(t, 1, l.GoalCount())
		assert.Len(t, l.Events(), 1)
	})

	t.Run("falls back to content matching for pre-id snapshots", func(t *testing.T) {
		l := ledger.New()
		l.Restore(
			[]ledger.Event{
				{ID: "e1", PlayerID: "playerA", Type: ledger.EventGoal, Minute: 9},
				{ID: "e2", PlayerID: "playerB", Type: ledger.EventAssist, Minute: 9},
			},
			[]ledger.RecordedGoal{
				{ScorerID: "playerA", AssistID: "playerB", Minute: 9, Timestamp: "legacy-ts"},
			},
		)

		removed, err := l.RemoveGoal("legacy-ts")
		require.NoError(t, err)
		assert.Len(t, removed, 2)
		assert.Empty(t, l.Events())
	})

	t.Run("unknown timestamp is an error", func(t *testing.T) {
		l := ledger.New()
		_, err := l.RemoveGoal("nope")
		assert.ErrorIs(t, err, ledger.ErrGoalNotFound)
	})
}

func TestDeriveStats(t *testing.T) {
	events := []ledger.Event{
		{ID: "1", PlayerID: "p1", Type: ledger.EventGoal, Minute: 3},
		{ID: "2", PlayerID: "p2", Type: ledger.EventAssist, Minute: 3},
		{ID: "3", PlayerID: "p1", Type: ledger.EventGoal, Minute: 60},
		{ID: "4", PlayerID: "p3", Type: ledger.EventTackle, Minute: 10},
		{ID: "5", PlayerID: "p4", Type: ledger.EventSave, Minute: 44},
		{ID: "6", PlayerID: "p3", Type: ledger.EventYellowCard, Minute: 70},
		{ID: "7", Type: ledger.EventGoal, Minute: 80, Notes: "Own Goal by Opponent"},
	}

	t.Run("replays the full ledger", func(t *testing.T) {
		stats := ledger.DeriveStats(events, nil)
		assert.Equal(t, 2, stats["p1"].Goals)
		assert.Equal(t, 1, stats["p2"].Assists)
		assert.Equal(t, 1, stats["p3"].Tackles)
		assert.Equal(t, 1, stats["p3"].YellowCards)
		assert.Equal(t, 1, stats["p4"].Saves)
		// The unattributed own goal counts for no one.
		assert.Len(t, stats, 4)
	})

	t.Run("is idempotent", func(t *testing.T) {
		first := ledger.DeriveStats(events, nil)
		second := ledger.DeriveStats(events, nil)
		assert.Equal(t, first, second)
	})

	t.Run("restricts and zero-fills requested players", func(t *testing.T) {
		stats := ledger.DeriveStats(events, []string{"p1", "p9"})
		require.Len(t, stats, 2)
		assert.Equal(t, 2, stats["p1"].Goals)
		assert.Equal(t, ledger.PlayerStats{}, stats["p9"])
	})
}

func TestActivePlayers(t *testing.T) {
	events := []ledger.Event{
		{ID: "1", PlayerID: "zed", Type: ledger.EventGoal},
		{ID: "2", PlayerID: "abe", Type: ledger.EventSave},
		{ID: "3", Type: ledger.EventGoal, Notes: "Own Goal by Opponent"},
	}
	assert.Equal(t, []string{"abe", "zed"}, ledger.ActivePlayers(events))
}
