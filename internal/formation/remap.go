package formation

import (
	"math"
	"sort"
)

// placedPlayer is a player pulled off the old lineup together with the
// coordinates of the slot they occupied.
type placedPlayer struct {
	playerID string
	slotID   string
	col, row int
}

// Remap computes a best-effort slot assignment for newSlots from an existing
// slot-id -> player-id assignment. Players are matched greedily to the nearest
// unclaimed slot by Euclidean distance, defenders and keeper first, since the
// back line moves least between formations. Players left without a slot are
// returned as benched, in the order they were considered.
//
// oldFormation is the formation the assignment was saved under; slot ids that
// no longer resolve there are looked up across every formation of the format.
func Remap(format Format, oldFormation string, old map[string]string, newSlots []Slot) (map[string]string, []string) {
	placed := make([]placedPlayer, 0, len(old))
	for slotID, playerID := range old {
		if playerID == "" {
			continue
		}
		s, ok := findSlot(format, oldFormation, slotID)
		if !ok {
			// Unknown slot id: treat as midfield-centre so the player still
			// competes for a spot instead of silently dropping.
			s = Slot{ID: slotID, Col: 5, Row: 2}
		}
		placed = append(placed, placedPlayer{playerID: playerID, slotID: slotID, col: s.Col, row: s.Row})
	}

	// Descending row, then ascending col, then slot id for a stable order.
	sort.Slice(placed, func(i, j int) bool {
		if placed[i].row != placed[j].row {
			return placed[i].row > placed[j].row
		}
		if placed[i].col != placed[j].col {
			return placed[i].col < placed[j].col
		}
		return placed[i].slotID < placed[j].slotID
	})

	next := make(map[string]string, len(newSlots))
	claimed := make(map[string]bool, len(newSlots))
	var benched []string

	for _, p := range placed {
		bestIdx := -1
		bestDist := math.MaxFloat64
		for i, s := range newSlots {
			if claimed[s.ID] {
				continue
			}
			d := math.Hypot(float64(s.Col-p.col), float64(s.Row-p.row))
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			benched = append(benched, p.playerID)
			continue
		}
		next[newSlots[bestIdx].ID] = p.playerID
		claimed[newSlots[bestIdx].ID] = true
	}

	return next, benched
}
