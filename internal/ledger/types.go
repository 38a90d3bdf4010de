package ledger

// EventType enumerates the stats a coach can log during a live match.
type EventType string

const (
	EventGoal       EventType = "goal"
	EventAssist     EventType = "assist"
	EventTackle     EventType = "tackle"
	EventSave       EventType = "save"
	EventYellowCard EventType = "yellow_card"
	EventRedCard    EventType = "red_card"
)

// ownGoalNote marks the opponent-own-goal event. Kept stable because states
// persisted before events carried ids are matched on it during removal.
const ownGoalNote = "Own Goal by Opponent"

// Event is a single append-only ledger entry. Every event gets a stable id at
// creation so a goal (and its linked assist) can be removed without content
// matching.
type Event struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id,omitempty"`
	Type     EventType `json:"event_type"`
	Minute   int       `json:"minute"`
	Notes    string    `json:"notes,omitempty"`
}

// RecordedGoal tracks attribution for one "our score" increment, separately
// from the generic event list, so that a specific goal can be reversed later.
type RecordedGoal struct {
	ScorerID      string `json:"player_id,omitempty"`
	AssistID      string `json:"assist_id,omitempty"`
	Minute        int    `json:"minute"`
	OwnGoal       bool   `json:"is_own_goal_by_opponent"`
	Timestamp     string `json:"timestamp"`
	GoalEventID   string `json:"goal_event_id,omitempty"`
	AssistEventID string `json:"assist_event_id,omitempty"`
}

// PlayerStats are per-player aggregate counts derived by replaying the ledger.
type PlayerStats struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	Tackles     int `json:"tackles"`
	Saves       int `json:"saves"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// Active reports whether the player recorded anything that counts toward
// career totals.
func (s PlayerStats) Active() bool {
	return s.Goals > 0 || s.Assists > 0 || s.Tackles > 0 || s.Saves > 0 || s.YellowCards > 0 || s.RedCards > 0
}
