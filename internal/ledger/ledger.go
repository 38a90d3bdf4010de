// Package ledger keeps the append-only list of match events and the parallel
// recorded-goals log that backs score attribution and goal undo. All score and
// stat totals are derived by replaying the ledger, never maintained on the
// side.
package ledger

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrNoScorer is returned when a stat needs a player and none was chosen.
	ErrNoScorer = errors.New("ledger: no player selected for stat")
	// ErrSelfAssist is returned when the assist and the scorer are the same player.
	ErrSelfAssist = errors.New("ledger: assist must come from a different player")
	// ErrUnknownStat is returned for an event type outside the logged set.
	ErrUnknownStat = errors.New("ledger: unknown stat type")
	// ErrGoalNotFound is returned when no recorded goal matches the removal request.
	ErrGoalNotFound = errors.New("ledger: recorded goal not found")
)

// Ledger is not safe for concurrent use; the engine serializes access.
type Ledger struct {
	events []Event
	goals  []RecordedGoal
}

func New() *Ledger {
	return &Ledger{}
}

// Restore replaces the ledger contents from a persisted snapshot.
func (l *Ledger) Restore(events []Event, goals []RecordedGoal) {
	l.events = append([]Event(nil), events...)
	l.goals = append([]RecordedGoal(nil), goals...)
}

// Events returns a copy of the event list in append order.
func (l *Ledger) Events() []Event {
	return append([]Event(nil), l.events...)
}

// Goals returns a copy of the recorded-goals log in append order.
func (l *Ledger) Goals() []RecordedGoal {
	return append([]RecordedGoal(nil), l.goals...)
}

// GoalCount is the number of attributed "our score" increments.
func (l *Ledger) GoalCount() int {
	return len(l.goals)
}

func validStat(t EventType) bool {
	switch t {
	case EventGoal, EventAssist, EventTackle, EventSave, EventYellowCard, EventRedCard:
		return true
	}
	return false
}

// LogStat appends the events for one logged stat at the given elapsed minute
// and returns them so the caller can persist each one. A goal additionally
// appends a RecordedGoal (and an assist event when assistID is set); an
// opponent own goal is recorded with no player attribution. The returned
// RecordedGoal is nil for non-goal stats.
func (l *Ledger) LogStat(statType EventType, playerID, assistID string, ownGoal bool, minute int) ([]Event, *RecordedGoal, error) {
	if !validStat(statType) {
		return nil, nil, ErrUnknownStat
	}

	if ownGoal && statType == EventGoal {
		ev := Event{
			ID:     uuid.NewString(),
			Type:   EventGoal,
			Minute: minute,
			Notes:  ownGoalNote,
		}
		goal := RecordedGoal{
			Minute:      minute,
			OwnGoal:     true,
			Timestamp:   uuid.NewString(),
			GoalEventID: ev.ID,
		}
		l.events = append(l.events, ev)
		l.goals = append(l.goals, goal)
		return []Event{ev}, &goal, nil
	}

	if playerID == "" {
		return nil, nil, ErrNoScorer
	}
	if assistID != "" && statType != EventGoal {
		return nil, nil, ErrUnknownStat
	}
	if assistID != "" && assistID == playerID {
		return nil, nil, ErrSelfAssist
	}

	ev := Event{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Type:     statType,
		Minute:   minute,
	}
	created := []Event{ev}
	l.events = append(l.events, ev)

	if statType != EventGoal {
		return created, nil, nil
	}

	goal := RecordedGoal{
		ScorerID:    playerID,
		AssistID:    assistID,
		Minute:      minute,
		Timestamp:   uuid.NewString(),
		GoalEventID: ev.ID,
	}
	if assistID != "" {
		assistEv := Event{
			ID:       uuid.NewString(),
			PlayerID: assistID,
			Type:     EventAssist,
			Minute:   minute,
		}
		l.events = append(l.events, assistEv)
		created = append(created, assistEv)
		goal.AssistEventID = assistEv.ID
	}
	l.goals = append(l.goals, goal)
	return created, &goal, nil
}

// RemoveGoal deletes the recorded goal identified by timestamp together with
// its goal event and linked assist event, and returns the removed events so
// the caller can delete their persisted copies. Event-id links are preferred;
// content matching only covers states saved before events carried ids.
func (l *Ledger) RemoveGoal(timestamp string) ([]Event, error) {
	idx := -1
	for i, g := range l.goals {
		if g.Timestamp == timestamp {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrGoalNotFound
	}
	goal := l.goals[idx]
	l.goals = append(l.goals[:idx], l.goals[idx+1:]...)

	var removed []Event
	removeEvent := func(match func(Event) bool) {
		for i, ev := range l.events {
			if match(ev) {
				removed = append(removed, ev)
				l.events = append(l.events[:i], l.events[i+1:]...)
				return
			}
		}
	}

	if goal.GoalEventID != "" {
		removeEvent(func(ev Event) bool { return ev.ID == goal.GoalEventID })
	} else if goal.OwnGoal {
		removeEvent(func(ev Event) bool {
			return ev.Type == EventGoal && ev.Notes == ownGoalNote && ev.Minute == goal.Minute
		})
	} else {
		removeEvent(func(ev Event) bool {
			return ev.Type == EventGoal && ev.PlayerID == goal.ScorerID && ev.Minute == goal.Minute
		})
	}

	if goal.AssistEventID != "" {
		removeEvent(func(ev Event) bool { return ev.ID == goal.AssistEventID })
	} else if goal.AssistID != "" {
		removeEvent(func(ev Event) bool {
			return ev.Type == EventAssist && ev.PlayerID == goal.AssistID && ev.Minute == goal.Minute
		})
	}

	return removed, nil
}

// DeriveStats replays an event list into per-player aggregate counts. It is a
// pure function of its input: replaying the same ledger always yields the same
// totals. When playerIDs is empty, every player present in the events gets an
// entry; otherwise the result is restricted (and zero-filled) to the given ids.
func DeriveStats(events []Event, playerIDs []string) map[string]PlayerStats {
	stats := make(map[string]PlayerStats)
	for _, id := range playerIDs {
		stats[id] = PlayerStats{}
	}
	restrict := len(playerIDs) > 0

	for _, ev := range events {
		if ev.PlayerID == "" {
			continue // opponent own goals carry no attribution
		}
		if restrict {
			if _, ok := stats[ev.PlayerID]; !ok {
				continue
			}
		}
		s := stats[ev.PlayerID]
		switch ev.Type {
		case EventGoal:
			s.Goals++
		case EventAssist:
			s.Assists++
		case EventTackle:
			s.Tackles++
		case EventSave:
			s.Saves++
		case EventYellowCard:
			s.YellowCards++
		case EventRedCard:
			s.RedCards++
		}
		stats[ev.PlayerID] = s
	}
	return stats
}

// ActivePlayers returns the ids of players with any recorded activity, sorted
// for deterministic iteration.
func ActivePlayers(events []Event) []string {
	stats := DeriveStats(events, nil)
	ids := make([]string, 0, len(stats))
	for id, s := range stats {
		if s.Active() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
