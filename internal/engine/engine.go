package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/pitchside/matchday/internal/club"
	"github.com/pitchside/matchday/internal/clock"
	"github.com/pitchside/matchday/internal/formation"
	"github.com/pitchside/matchday/internal/ledger"
	"github.com/pitchside/matchday/internal/lineup"
	"github.com/pitchside/matchday/internal/notifier"
	"github.com/pitchside/matchday/internal/pubsub"
)

// autosaveDelay batches rapid-fire edits into one write.
const autosaveDelay = 2 * time.Second

// Engine runs one live match: clock, lineup board, event ledger and score.
// All methods are safe for concurrent use.
type Engine struct {
	mu   sync.Mutex
	deps Deps

	matchID       string
	teamID        string
	teamName      string
	opponent      string
	format        formation.Format
	formationName string
	status        club.MatchStatus

	clock  *clock.Clock
	board  *lineup.Board
	ledger *ledger.Ledger

	ourScore      int
	opponentScore int

	debounced func(func())
}

func newEngine(deps Deps, rec *club.MatchRecord, team club.TeamInfo, squad []lineup.Player) *Engine {
	e := &Engine{
		deps:          deps,
		matchID:       rec.ID,
		teamID:        rec.TeamID,
		teamName:      team.Name,
		opponent:      rec.Opponent,
		format:        formation.Format(rec.MatchFormat),
		formationName: rec.FormationName,
		status:        rec.Status,
		ledger:        ledger.New(),
		ourScore:      rec.OurScore,
		opponentScore: rec.OpponentScore,
		debounced:     debounce.New(autosaveDelay),
	}
	e.clock = clock.New(e.onTick)

	if rec.SnapshotCreated {
		e.board = lineup.Restore(squad, rec.PlayerPositions, rec.PlayerMinutes.Entry, rec.PlayerMinutes.Accrued, rec.SubstitutionHistory, rec.CurrentMatchTime)
		e.ledger.Restore(rec.FinalMatchEvents, rec.RecordedGoals)
		e.clock.SetSeconds(rec.CurrentMatchTime)
	} else {
		e.board = lineup.NewBoard(squad, rec.PlayerPositions, 0)
	}
	return e
}

// onTick runs once per clock second.
func (e *Engine) onTick(seconds int64) {
	e.mu.Lock()
	e.board.OnTick(seconds)
	e.mu.Unlock()
	e.scheduleSave()
}

// scheduleSave queues a debounced write of the full live state.
func (e *Engine) scheduleSave() {
	e.debounced(func() {
		if err := e.Persist(); err != nil {
			log.Error("Autosave failed", "error", err, "matchID", e.matchID)
			e.deps.Metrics.IncAutosaveFailures()
			return
		}
		e.deps.Metrics.IncAutosaves()
	})
}

// Persist writes the current live state to the store immediately.
func (e *Engine) Persist() error {
	e.mu.Lock()
	if e.status == club.StatusCompleted {
		e.mu.Unlock()
		return nil
	}
	rec := e.buildRecordLocked()
	e.mu.Unlock()
	return e.deps.Store.SaveMatchState(rec)
}

// buildRecordLocked snapshots the engine into a match record. Caller holds mu.
func (e *Engine) buildRecordLocked() *club.MatchRecord {
	events := e.ledger.Events()
	return &club.MatchRecord{
		ID:               e.matchID,
		TeamID:           e.teamID,
		Opponent:         e.opponent,
		MatchFormat:      string(e.format),
		FormationName:    e.formationName,
		SnapshotCreated:  true,
		PlayerPositions:  e.board.Assignment(),
		CurrentMatchTime: e.clock.Seconds(),
		OurScore:         e.ourScore,
		OpponentScore:    e.opponentScore,
		PlayerMinutes: club.MinutesState{
			Accrued: e.board.AccruedSeconds(),
			Entry:   e.board.EntrySeconds(),
		},
		SubstitutionHistory: e.board.SubLog(),
		RecordedGoals:       e.ledger.Goals(),
		FinalMatchEvents:    events,
		PlayerStats:         ledger.DeriveStats(events, nil),
		Status:              e.status,
	}
}

// StartClock starts (or resumes) the match clock.
func (e *Engine) StartClock() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	e.clock.Start()
	return nil
}

// PauseClock stops the clock without losing elapsed time.
func (e *Engine) PauseClock() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	e.clock.Pause()
	e.scheduleSave()
	return nil
}

// ResetClock returns the clock to zero and wipes accrued playing time, as when
// restarting a warm-up run before the real kickoff.
func (e *Engine) ResetClock() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	e.clock.Reset()
	e.board.ResetMinutes()
	e.scheduleSave()
	return nil
}

// AdjustClock shifts the clock by whole minutes, clamped at zero. On-pitch
// players' minutes follow the clock.
func (e *Engine) AdjustClock(deltaMinutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	e.clock.AdjustMinutes(deltaMinutes)
	e.board.OnTick(e.clock.Seconds())
	e.scheduleSave()
	return nil
}

// LogStat records one stat event at the current match minute. A goal bumps our
// score and announces itself; an opponent own goal is logged with ownGoal set
// and no player attribution.
func (e *Engine) LogStat(statType ledger.EventType, playerID, assistID string, ownGoal bool) error {
	e.mu.Lock()
	if e.status == club.StatusCompleted {
		e.mu.Unlock()
		return ErrMatchCompleted
	}

	minute := e.clock.Minute()
	events, goal, err := e.ledger.LogStat(statType, playerID, assistID, ownGoal, minute)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if goal != nil {
		e.ourScore++
	}

	for _, ev := range events {
		if err := e.deps.Store.InsertMatchEvent(e.matchID, ev.ID, ev.PlayerID, string(ev.Type), ev.Minute, ev.Notes); err != nil {
			log.Error("Failed to persist match event", "error", err, "matchID", e.matchID, "eventID", ev.ID)
		}
	}

	var alert *notifier.GoalAlert
	if goal != nil {
		alert = &notifier.GoalAlert{
			TeamName:      e.teamName,
			Opponent:      e.opponent,
			ScorerName:    e.playerNameLocked(goal.ScorerID),
			AssistName:    e.playerNameLocked(goal.AssistID),
			Minute:        minute,
			OurScore:      e.ourScore,
			OpponentScore: e.opponentScore,
			OwnGoal:       goal.OwnGoal,
		}
	}
	e.mu.Unlock()

	e.deps.Metrics.IncStatsLogged()
	if alert != nil {
		if err := e.deps.Notifier.SendGoalAlert(*alert, e.deps.DryRun); err != nil {
			log.Error("Failed to send goal alert", "error", err, "matchID", e.matchID)
		}
	}
	e.scheduleSave()
	return nil
}

// OpponentGoal bumps the opponent score. Opponent goals carry no events.
func (e *Engine) OpponentGoal() error {
	e.mu.Lock()
	if e.status == club.StatusCompleted {
		e.mu.Unlock()
		return ErrMatchCompleted
	}
	e.opponentScore++
	alert := notifier.GoalAlert{
		TeamName:      e.teamName,
		Opponent:      e.opponent,
		Minute:        e.clock.Minute(),
		OurScore:      e.ourScore,
		OpponentScore: e.opponentScore,
		OpponentGoal:  true,
	}
	e.mu.Unlock()

	if err := e.deps.Notifier.SendGoalAlert(alert, e.deps.DryRun); err != nil {
		log.Error("Failed to send goal alert", "error", err, "matchID", e.matchID)
	}
	e.scheduleSave()
	return nil
}

// AdjustScore nudges the opponent score freely, but our side is guarded: our
// goals carry attribution, so increments must go through LogStat and
// decrements through RemoveGoal. A bare decrement of our score is only
// allowed once no recorded goals remain to account for it. Scores never go
// below zero.
func (e *Engine) AdjustScore(ours bool, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	if ours {
		if delta > 0 {
			return ErrScoreNeedsGoal
		}
		if delta < 0 && len(e.ledger.Goals()) > 0 {
			return ErrGoalsStillRecorded
		}
		e.ourScore += delta
		if e.ourScore < 0 {
			e.ourScore = 0
		}
	} else {
		e.opponentScore += delta
		if e.opponentScore < 0 {
			e.opponentScore = 0
		}
	}
	e.scheduleSave()
	return nil
}

// RemoveGoal reverses one recorded goal: the score decrement, the goal event
// and any linked assist event.
func (e *Engine) RemoveGoal(timestamp string) error {
	e.mu.Lock()
	if e.status == club.StatusCompleted {
		e.mu.Unlock()
		return ErrMatchCompleted
	}
	removed, err := e.ledger.RemoveGoal(timestamp)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if e.ourScore > 0 {
		e.ourScore--
	}
	e.mu.Unlock()

	for _, ev := range removed {
		if err := e.deps.Store.DeleteMatchEvent(ev.ID); err != nil {
			log.Error("Failed to delete match event", "error", err, "eventID", ev.ID)
		}
	}
	e.scheduleSave()
	return nil
}

// ClickPlayer handles a tap on a player chip.
func (e *Engine) ClickPlayer(playerID string) (lineup.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return lineup.ActionNone, ErrMatchCompleted
	}
	action, err := e.board.ClickPlayer(playerID, e.clock.Seconds())
	if err != nil {
		return action, err
	}
	e.noteBoardActionLocked(action)
	return action, nil
}

// ClickSlot handles a tap on a formation slot.
func (e *Engine) ClickSlot(slotID string) (lineup.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return lineup.ActionNone, ErrMatchCompleted
	}
	action, err := e.board.ClickSlot(slotID, e.clock.Seconds())
	if err != nil {
		return action, err
	}
	e.noteBoardActionLocked(action)
	return action, nil
}

// MoveToBench sends a player off the pitch.
func (e *Engine) MoveToBench(playerID string) (lineup.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return lineup.ActionNone, ErrMatchCompleted
	}
	action, err := e.board.MoveToBench(playerID, e.clock.Seconds())
	if err != nil {
		return action, err
	}
	e.noteBoardActionLocked(action)
	return action, nil
}

func (e *Engine) noteBoardActionLocked(action lineup.Action) {
	switch action {
	case lineup.ActionMoved, lineup.ActionSwapped, lineup.ActionBenched:
		e.deps.Metrics.IncSubstitutions()
	}
	e.scheduleSave()
}

// Substitute swaps a bench player in for an on-pitch player.
func (e *Engine) Substitute(playerOut, playerIn string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	if err := e.board.Substitute(playerOut, playerIn, e.clock.Seconds()); err != nil {
		return err
	}
	e.deps.Metrics.IncSubstitutions()
	e.scheduleSave()
	return nil
}

// RemovePlayer drops a player from the match-day squad entirely.
func (e *Engine) RemovePlayer(playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	if err := e.board.Remove(playerID, e.clock.Seconds()); err != nil {
		return err
	}
	e.scheduleSave()
	return nil
}

// ChangeFormation switches layouts, remapping every assigned player to the
// geometrically nearest slot of the new formation. Players left over go to the
// bench without a substitution log entry.
func (e *Engine) ChangeFormation(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == club.StatusCompleted {
		return ErrMatchCompleted
	}
	newSlots := formation.Slots(e.format, name)
	if len(newSlots) == 0 {
		return fmt.Errorf("%w: %q for %s", ErrUnknownFormation, name, e.format)
	}

	next, benched := formation.Remap(e.format, e.formationName, e.board.Assignment(), newSlots)
	e.board.ApplyAssignment(next, e.clock.Seconds())
	e.formationName = name
	if len(benched) > 0 {
		log.Info("Formation change benched players", "matchID", e.matchID, "players", benched)
	}
	e.scheduleSave()
	return nil
}

// State returns a full copy of the live match state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	events := e.ledger.Events()
	return State{
		MatchID:       e.matchID,
		TeamName:      e.teamName,
		Opponent:      e.opponent,
		Status:        e.status,
		Format:        e.format,
		Formation:     e.formationName,
		Formations:    formation.Names(e.format),
		Assignment:    e.board.Assignment(),
		Squad:         e.board.Squad(),
		Bench:         e.board.Bench(),
		Selection:     e.board.Selection(),
		ClockSeconds:  e.clock.Seconds(),
		Minute:        e.clock.Minute(),
		Running:       e.clock.Running(),
		OurScore:      e.ourScore,
		OpponentScore: e.opponentScore,
		Goals:         e.ledger.Goals(),
		Events:        events,
		SubLog:        e.board.SubLog(),
		PlayedSeconds: e.board.AccruedSeconds(),
		Stats:         ledger.DeriveStats(events, nil),
	}
}

// Finalize blows the final whistle: freezes the clock and minutes, persists
// the completed match and folds stats into career totals, then announces the
// result.
func (e *Engine) Finalize() error {
	start := time.Now()

	e.mu.Lock()
	if e.status == club.StatusCompleted {
		e.mu.Unlock()
		return ErrMatchCompleted
	}
	e.clock.Pause()
	now := e.clock.Seconds()
	e.board.OnTick(now)
	e.board.FreezeAll(now)
	e.status = club.StatusCompleted

	rec := e.buildRecordLocked()
	totals := e.careerTotalsLocked()
	report := e.fullTimeReportLocked()
	e.mu.Unlock()

	if err := e.deps.Store.FinalizeMatch(rec, totals); err != nil {
		e.mu.Lock()
		e.status = club.StatusInProgress
		e.mu.Unlock()
		return err
	}
	e.deps.Metrics.IncMatchesFinalized()
	e.deps.Metrics.ObserveFinalizeDuration(time.Since(start).Seconds())

	if err := e.deps.Notifier.SendFullTimeReport(report, e.deps.DryRun); err != nil {
		log.Error("Failed to send full-time report", "error", err, "matchID", e.matchID)
	}
	if e.deps.PubSub != nil {
		event := pubsub.MatchFinalizedEvent{
			MatchID:       rec.ID,
			TeamID:        rec.TeamID,
			Opponent:      rec.Opponent,
			OurScore:      rec.OurScore,
			OpponentScore: rec.OpponentScore,
			FinalMinute:   int(rec.CurrentMatchTime / 60),
		}
		if err := e.deps.PubSub.SendMessage(pubsub.EventMatchFinalized, event); err != nil {
			log.Error("Failed to publish match-finalized event", "error", err, "matchID", e.matchID)
		}
	}
	return nil
}

// careerTotalsLocked computes the per-player increments a finalize applies.
// Anyone with pitch time or a recorded stat gets a game played.
func (e *Engine) careerTotalsLocked() map[string]club.CareerDelta {
	stats := ledger.DeriveStats(e.ledger.Events(), nil)
	accrued := e.board.AccruedSeconds()

	totals := make(map[string]club.CareerDelta)
	for _, p := range e.board.Squad() {
		s := stats[p.ID]
		minutes := int(accrued[p.ID] / 60)
		if minutes == 0 && !s.Active() {
			continue
		}
		totals[p.ID] = club.CareerDelta{
			Goals:       s.Goals,
			Assists:     s.Assists,
			Tackles:     s.Tackles,
			Saves:       s.Saves,
			GamesPlayed: 1,
			Minutes:     minutes,
		}
	}
	return totals
}

func (e *Engine) fullTimeReportLocked() notifier.FullTimeReport {
	counts := make(map[string]int)
	var order []string
	ownGoals := 0
	for _, g := range e.ledger.Goals() {
		if g.OwnGoal {
			ownGoals++
			continue
		}
		name := e.playerNameLocked(g.ScorerID)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	var scorers []string
	for _, name := range order {
		if n := counts[name]; n > 1 {
			scorers = append(scorers, fmt.Sprintf("%s (%d)", name, n))
		} else {
			scorers = append(scorers, name)
		}
	}
	if ownGoals == 1 {
		scorers = append(scorers, "Own goal")
	} else if ownGoals > 1 {
		scorers = append(scorers, fmt.Sprintf("Own goals (%d)", ownGoals))
	}

	return notifier.FullTimeReport{
		TeamName:      e.teamName,
		Opponent:      e.opponent,
		OurScore:      e.ourScore,
		OpponentScore: e.opponentScore,
		FinalMinute:   e.clock.Minute(),
		Scorers:       scorers,
	}
}

func (e *Engine) playerNameLocked(playerID string) string {
	if playerID == "" {
		return ""
	}
	for _, p := range e.board.Squad() {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}

// Tick advances the clock by one second without waiting for the ticker.
// Exposed for tests.
func (e *Engine) Tick() {
	e.clock.Tick()
}
