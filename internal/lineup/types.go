package lineup

// Player is a match-day squad member.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BenchLabel is recorded in the substitution log when one side of a move is
// the bench rather than a player.
const BenchLabel = "Bench"

// SubstitutionEntry is one line of the append-only substitution audit trail.
type SubstitutionEntry struct {
	Minute    int    `json:"minute"`
	PlayerIn  string `json:"player_in"`
	PlayerOut string `json:"player_out"`
	Timestamp string `json:"timestamp"`
}

// SelectionKind says what the pending tap selected.
type SelectionKind string

const (
	SelectionNone   SelectionKind = ""
	SelectionPlayer SelectionKind = "player"
	SelectionSlot   SelectionKind = "position"
)

// Selection is the explicit select-then-target state: the first tap selects a
// player or an empty slot, the second resolves it into a move.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	ID   string        `json:"id"`
}

// Action reports what a tap resolved to, so the UI can animate accordingly.
type Action string

const (
	ActionNone     Action = "none"
	ActionSelected Action = "selected"
	ActionCleared  Action = "cleared"
	ActionMoved    Action = "moved"
	ActionSwapped  Action = "swapped"
	ActionBenched  Action = "benched"
)
