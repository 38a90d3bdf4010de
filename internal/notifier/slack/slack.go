package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/metrics"
	"github.com/pitchside/matchday/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendGoalAlert(alert notifier.GoalAlert, dryRun bool) error {
	msg := s.formatGoalAlert(alert)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendFullTimeReport(report notifier.FullTimeReport, dryRun bool) error {
	msg := s.formatFullTimeReport(report)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(entries []club.LeaderboardEntry, dryRun bool) error {
	msg := s.formatLeaderboard(entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatGoalAlert creates the Slack message for a freshly logged goal using Block Kit.
func (s *Notifier) formatGoalAlert(alert notifier.GoalAlert) slack.Message {
	blocks := make([]slack.Block, 0)

	var headline string
	switch {
	case alert.OpponentGoal:
		headline = fmt.Sprintf("😬 %s score in the %d'", alert.Opponent, alert.Minute)
	case alert.OwnGoal:
		headline = fmt.Sprintf("⚽ Own goal by %s in the %d'!", alert.Opponent, alert.Minute)
	default:
		headline = fmt.Sprintf("⚽ GOAL! %s scores in the %d'!", alert.ScorerName, alert.Minute)
	}
	headerText := slack.NewTextBlockObject("plain_text", headline, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("%s %d - %d %s", alert.TeamName, alert.OurScore, alert.OpponentScore, alert.Opponent)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	if alert.AssistName != "" {
		contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🅰️ Assist: %s", alert.AssistName), true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatFullTimeReport creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatFullTimeReport(report notifier.FullTimeReport) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Full time! 🏁", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("%s %d - %d %s (%d')", report.TeamName, report.OurScore, report.OpponentScore, report.Opponent, report.FinalMinute)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	if len(report.Scorers) > 0 {
		var lines []string
		for _, scorer := range report.Scorers {
			lines = append(lines, fmt.Sprintf("• %s", scorer))
		}
		scorersText := "Scorers:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scorersText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the career leaderboard.
func (s *Notifier) formatLeaderboard(entries []club.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Career leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s: %d goals, %d assists in %d games", i+1, e.PlayerName, e.TotalGoals, e.TotalAssists, e.GamesPlayed))
	}
	if len(lines) == 0 {
		lines = append(lines, "No players yet.")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
