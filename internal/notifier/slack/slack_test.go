package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := n.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := n.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := n.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendGoalAlert_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	err := n.SendGoalAlert(notifier.GoalAlert{
		TeamName:   "U11 Lions",
		Opponent:   "Rovers",
		ScorerName: "Carla",
		Minute:     12,
		OurScore:   1,
	}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendGoalAlert")
}

func TestFormatGoalAlert(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	t.Run("our goal with assist", func(t *testing.T) {
		msg := n.formatGoalAlert(notifier.GoalAlert{
			TeamName:      "U11 Lions",
			Opponent:      "Rovers",
			ScorerName:    "Carla",
			AssistName:    "Bobby",
			Minute:        12,
			OurScore:      2,
			OpponentScore: 1,
		})
		require.Len(t, msg.Blocks.BlockSet, 3, "Expected header, score and assist context blocks")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Contains(t, header.Text.Text, "Carla")
		assert.Contains(t, header.Text.Text, "12'")

		score, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "U11 Lions 2 - 1 Rovers", score.Text.Text)
	})

	t.Run("opponent goal has no assist block", func(t *testing.T) {
		msg := n.formatGoalAlert(notifier.GoalAlert{
			TeamName:      "U11 Lions",
			Opponent:      "Rovers",
			Minute:        30,
			OurScore:      2,
			OpponentScore: 2,
			OpponentGoal:  true,
		})
		require.Len(t, msg.Blocks.BlockSet, 2)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Contains(t, header.Text.Text, "Rovers")
	})
}

func TestFormatFullTimeReport(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatFullTimeReport(notifier.FullTimeReport{
		TeamName:      "U11 Lions",
		Opponent:      "Rovers",
		OurScore:      3,
		OpponentScore: 1,
		FinalMinute:   50,
		Scorers:       []string{"Carla (2)", "Alice"},
	})
	require.Len(t, msg.Blocks.BlockSet, 3)

	score, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "U11 Lions 3 - 1 Rovers (50')", score.Text.Text)

	scorers, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, scorers.Text.Text, "Carla (2)")
}

func TestFormatLeaderboard(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatLeaderboard([]club.LeaderboardEntry{
		{PlayerName: "Carla", TotalGoals: 12, TotalAssists: 3, GamesPlayed: 20},
	})
	require.Len(t, msg.Blocks.BlockSet, 2)

	body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, body.Text.Text, "1. Carla: 12 goals")
}
