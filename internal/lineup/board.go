// Package lineup owns the slot->player assignment, the bench, the pending
// tap selection, and per-player on-pitch time for one live match. The board
// is not safe for concurrent use; the engine serializes access to it.
package lineup

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrUnknownPlayer is returned for a player outside the match-day squad.
	ErrUnknownPlayer = errors.New("lineup: player not in match-day squad")
	// ErrNotOnPitch is returned when the outgoing side of a substitution is benched.
	ErrNotOnPitch = errors.New("lineup: player is not on the pitch")
	// ErrNotOnBench is returned when the incoming side of a substitution is already playing.
	ErrNotOnBench = errors.New("lineup: player is not on the bench")
)

// Board tracks who occupies which slot, who sits on the bench, and how long
// each player has been on the pitch.
//
// Minutes bookkeeping: entrySeconds[p] holds the clock value the player's
// cumulative stint started at, offset so that accrued = now - entry always
// holds. A player re-entering the pitch with 300 accrued seconds at clock 600
// gets entry 300, so ticking keeps counting from where they left off.
type Board struct {
	players        map[string]Player
	assignment     map[string]string // slot id -> player id
	entrySeconds   map[string]int64
	accruedSeconds map[string]int64
	subLog         []SubstitutionEntry
	selection      Selection
}

// NewBoard builds a board from the match-day squad and the opening
// assignment. Players assigned a slot start accruing time from nowSeconds;
// everyone else is on the bench.
func NewBoard(squad []Player, assignment map[string]string, nowSeconds int64) *Board {
	b := &Board{
		players:        make(map[string]Player, len(squad)),
		assignment:     make(map[string]string),
		entrySeconds:   make(map[string]int64),
		accruedSeconds: make(map[string]int64),
	}
	for _, p := range squad {
		b.players[p.ID] = p
	}
	for slotID, playerID := range assignment {
		if _, ok := b.players[playerID]; !ok {
			continue
		}
		if _, taken := b.slotOf(playerID); taken {
			continue // a player occupies at most one slot
		}
		b.assignment[slotID] = playerID
		b.entrySeconds[playerID] = nowSeconds - b.accruedSeconds[playerID]
	}
	return b
}

// Restore rebuilds a board from persisted state. Players on the pitch without
// an entry timestamp have it reverse-derived from their accrued seconds.
func Restore(squad []Player, assignment map[string]string, entry, accrued map[string]int64, subLog []SubstitutionEntry, nowSeconds int64) *Board {
	b := &Board{
		players:        make(map[string]Player, len(squad)),
		assignment:     make(map[string]string, len(assignment)),
		entrySeconds:   make(map[string]int64, len(entry)),
		accruedSeconds: make(map[string]int64, len(accrued)),
		subLog:         append([]SubstitutionEntry(nil), subLog...),
	}
	for _, p := range squad {
		b.players[p.ID] = p
	}
	for id, s := range accrued {
		b.accruedSeconds[id] = s
	}
	for slotID, playerID := range assignment {
		if _, ok := b.players[playerID]; !ok {
			continue
		}
		b.assignment[slotID] = playerID
		if e, ok := entry[playerID]; ok {
			b.entrySeconds[playerID] = e
		} else {
			b.entrySeconds[playerID] = nowSeconds - b.accruedSeconds[playerID]
		}
	}
	return b
}

// Assignment returns a copy of the slot -> player mapping.
func (b *Board) Assignment() map[string]string {
	out := make(map[string]string, len(b.assignment))
	for k, v := range b.assignment {
		out[k] = v
	}
	return out
}

// Squad returns the match-day squad sorted by name.
func (b *Board) Squad() []Player {
	out := make([]Player, 0, len(b.players))
	for _, p := range b.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Bench returns squad players without a slot, sorted by name.
func (b *Board) Bench() []Player {
	onPitch := make(map[string]bool, len(b.assignment))
	for _, playerID := range b.assignment {
		onPitch[playerID] = true
	}
	var out []Player
	for _, p := range b.players {
		if !onPitch[p.ID] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SlotOf returns the slot a player occupies, if any.
func (b *Board) SlotOf(playerID string) (string, bool) {
	return b.slotOf(playerID)
}

func (b *Board) slotOf(playerID string) (string, bool) {
	for slotID, id := range b.assignment {
		if id == playerID {
			return slotID, true
		}
	}
	return "", false
}

// Selection returns the pending tap selection.
func (b *Board) Selection() Selection {
	return b.selection
}

// ClearSelection drops any pending selection.
func (b *Board) ClearSelection() {
	b.selection = Selection{}
}

// ClickPlayer resolves a tap on a player through the selection state machine.
// With a player already selected, tapping a second player moves the selected
// one to wherever the target stands: a pitch target resolves through
// moveToSlot (swap or displacement), while a bench target sends the selected
// player to the bench and leaves the target where they are.
func (b *Board) ClickPlayer(playerID string, nowSeconds int64) (Action, error) {
	if _, ok := b.players[playerID]; !ok {
		return ActionNone, ErrUnknownPlayer
	}
	switch b.selection.Kind {
	case SelectionNone:
		b.selection = Selection{Kind: SelectionPlayer, ID: playerID}
		return ActionSelected, nil
	case SelectionPlayer:
		selected := b.selection.ID
		b.selection = Selection{}
		if selected == playerID {
			return ActionCleared, nil
		}
		if slotID, ok := b.slotOf(playerID); ok {
			return b.moveToSlot(selected, slotID, nowSeconds)
		}
		// Target player is on the bench: send the selected player there.
		return b.MoveToBench(selected, nowSeconds)
	case SelectionSlot:
		slotID := b.selection.ID
		b.selection = Selection{}
		return b.moveToSlot(playerID, slotID, nowSeconds)
	}
	return ActionNone, nil
}

// ClickSlot resolves a tap on a pitch slot. A tap on an occupied slot behaves
// like a tap on its occupant; a tap on an empty slot selects it (or completes
// a pending player selection).
func (b *Board) ClickSlot(slotID string, nowSeconds int64) (Action, error) {
	if occupant, ok := b.assignment[slotID]; ok {
		return b.ClickPlayer(occupant, nowSeconds)
	}
	switch b.selection.Kind {
	case SelectionNone:
		b.selection = Selection{Kind: SelectionSlot, ID: slotID}
		return ActionSelected, nil
	case SelectionSlot:
		selected := b.selection.ID
		b.selection = Selection{}
		if selected == slotID {
			return ActionCleared, nil
		}
		b.selection = Selection{Kind: SelectionSlot, ID: slotID}
		return ActionSelected, nil
	case SelectionPlayer:
		playerID := b.selection.ID
		b.selection = Selection{}
		return b.moveToSlot(playerID, slotID, nowSeconds)
	}
	return ActionNone, nil
}

// moveToSlot places a player into a slot, handling the three cases: empty
// target, swap between two on-pitch players, and a bench player displacing an
// occupant to the bench.
func (b *Board) moveToSlot(playerID, targetSlot string, nowSeconds int64) (Action, error) {
	if _, ok := b.players[playerID]; !ok {
		return ActionNone, ErrUnknownPlayer
	}
	sourceSlot, fromPitch := b.slotOf(playerID)
	if fromPitch && sourceSlot == targetSlot {
		return ActionNone, nil
	}

	occupant, occupied := b.assignment[targetSlot]
	switch {
	case !occupied:
		if fromPitch {
			delete(b.assignment, sourceSlot)
			b.assignment[targetSlot] = playerID
			return ActionMoved, nil
		}
		b.assignment[targetSlot] = playerID
		b.enterPitch(playerID, nowSeconds)
		b.logSub(b.nameOf(playerID), BenchLabel, nowSeconds)
		return ActionMoved, nil

	case fromPitch:
		// True swap: the occupant takes the mover's old slot.
		b.assignment[sourceSlot] = occupant
		b.assignment[targetSlot] = playerID
		b.logSub(b.nameOf(playerID), b.nameOf(occupant), nowSeconds)
		return ActionSwapped, nil

	default:
		// Mover comes from the bench: the occupant has no slot to swap into,
		// so they are pushed to the bench instead.
		b.assignment[targetSlot] = playerID
		b.leavePitch(occupant, nowSeconds)
		b.enterPitch(playerID, nowSeconds)
		b.logSub(b.nameOf(playerID), b.nameOf(occupant), nowSeconds)
		return ActionMoved, nil
	}
}

// MoveToBench takes a player off the pitch, freezing their minutes.
func (b *Board) MoveToBench(playerID string, nowSeconds int64) (Action, error) {
	if _, ok := b.players[playerID]; !ok {
		return ActionNone, ErrUnknownPlayer
	}
	slotID, ok := b.slotOf(playerID)
	if !ok {
		return ActionNone, nil // bench to bench, nothing to do
	}
	delete(b.assignment, slotID)
	b.leavePitch(playerID, nowSeconds)
	b.logSub(BenchLabel, b.nameOf(playerID), nowSeconds)
	return ActionBenched, nil
}

// Substitute is the explicit dialog flow: playerIn takes playerOut's slot.
func (b *Board) Substitute(playerOut, playerIn string, nowSeconds int64) error {
	if _, ok := b.players[playerOut]; !ok {
		return ErrUnknownPlayer
	}
	if _, ok := b.players[playerIn]; !ok {
		return ErrUnknownPlayer
	}
	slotID, onPitch := b.slotOf(playerOut)
	if !onPitch {
		return ErrNotOnPitch
	}
	if _, alreadyOn := b.slotOf(playerIn); alreadyOn {
		return ErrNotOnBench
	}
	b.assignment[slotID] = playerIn
	b.leavePitch(playerOut, nowSeconds)
	b.enterPitch(playerIn, nowSeconds)
	b.logSub(b.nameOf(playerIn), b.nameOf(playerOut), nowSeconds)
	return nil
}

// Remove drops a player from the match-day squad entirely: slot vacated,
// pending selection cleared, minutes frozen at their current value.
func (b *Board) Remove(playerID string, nowSeconds int64) error {
	if _, ok := b.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if slotID, ok := b.slotOf(playerID); ok {
		delete(b.assignment, slotID)
		b.leavePitch(playerID, nowSeconds)
	}
	if b.selection.Kind == SelectionPlayer && b.selection.ID == playerID {
		b.selection = Selection{}
	}
	delete(b.players, playerID)
	return nil
}

// ApplyAssignment replaces the whole assignment, as after a formation remap.
// Players losing their slot have minutes frozen; players gaining one start
// accruing. No substitution log entries are written: a remap is a tactical
// shuffle, not a substitution.
func (b *Board) ApplyAssignment(next map[string]string, nowSeconds int64) {
	wasOn := make(map[string]bool, len(b.assignment))
	for _, playerID := range b.assignment {
		wasOn[playerID] = true
	}
	isOn := make(map[string]bool, len(next))

	b.assignment = make(map[string]string, len(next))
	for slotID, playerID := range next {
		if _, ok := b.players[playerID]; !ok {
			continue
		}
		if isOn[playerID] {
			continue
		}
		b.assignment[slotID] = playerID
		isOn[playerID] = true
	}

	for playerID := range wasOn {
		if !isOn[playerID] {
			b.leavePitch(playerID, nowSeconds)
		}
	}
	for playerID := range isOn {
		if !wasOn[playerID] {
			b.enterPitch(playerID, nowSeconds)
		}
	}
	b.selection = Selection{}
}

// OnTick recomputes accrued seconds for every on-pitch player.
func (b *Board) OnTick(nowSeconds int64) {
	for _, playerID := range b.assignment {
		entry, ok := b.entrySeconds[playerID]
		if !ok {
			continue
		}
		accrued := nowSeconds - entry
		if accrued < 0 {
			accrued = 0
		}
		b.accruedSeconds[playerID] = accrued
	}
}

// FreezeAll stops time accrual for everyone still on the pitch, as at the
// final whistle.
func (b *Board) FreezeAll(nowSeconds int64) {
	for _, playerID := range b.assignment {
		b.leavePitchKeepSlot(playerID, nowSeconds)
	}
}

// ResetMinutes clears all accrued time and restarts the current stints from
// zero, as when the match clock is reset before kickoff.
func (b *Board) ResetMinutes() {
	b.accruedSeconds = make(map[string]int64)
	b.entrySeconds = make(map[string]int64)
	for _, playerID := range b.assignment {
		b.entrySeconds[playerID] = 0
	}
}

// AccruedSeconds returns a copy of the per-player accrued time map.
func (b *Board) AccruedSeconds() map[string]int64 {
	out := make(map[string]int64, len(b.accruedSeconds))
	for k, v := range b.accruedSeconds {
		out[k] = v
	}
	return out
}

// EntrySeconds returns a copy of the per-player stint entry map.
func (b *Board) EntrySeconds() map[string]int64 {
	out := make(map[string]int64, len(b.entrySeconds))
	for k, v := range b.entrySeconds {
		out[k] = v
	}
	return out
}

// SubLog returns a copy of the substitution audit trail in append order.
func (b *Board) SubLog() []SubstitutionEntry {
	return append([]SubstitutionEntry(nil), b.subLog...)
}

func (b *Board) enterPitch(playerID string, nowSeconds int64) {
	b.entrySeconds[playerID] = nowSeconds - b.accruedSeconds[playerID]
}

func (b *Board) leavePitch(playerID string, nowSeconds int64) {
	b.leavePitchKeepSlot(playerID, nowSeconds)
}

func (b *Board) leavePitchKeepSlot(playerID string, nowSeconds int64) {
	if entry, ok := b.entrySeconds[playerID]; ok {
		accrued := nowSeconds - entry
		if accrued < 0 {
			accrued = 0
		}
		b.accruedSeconds[playerID] = accrued
		delete(b.entrySeconds, playerID)
	}
}

func (b *Board) logSub(playerIn, playerOut string, nowSeconds int64) {
	b.subLog = append(b.subLog, SubstitutionEntry{
		Minute:    int(nowSeconds / 60),
		PlayerIn:  playerIn,
		PlayerOut: playerOut,
		Timestamp: uuid.NewString(),
	})
}

func (b *Board) nameOf(playerID string) string {
	if p, ok := b.players[playerID]; ok && p.Name != "" {
		return p.Name
	}
	return playerID
}
