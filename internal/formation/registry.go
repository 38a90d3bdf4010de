package formation

// The registry is static configuration: every format maps to an ordered list
// of named formations, each an ordered list of slots. Order matters twice:
// Names returns formations in registration order, and remapping breaks
// distance ties by slot iteration order.

type namedFormation struct {
	name  string
	slots []Slot
}

var registry = map[Format][]namedFormation{
	Format5v5: {
		{"1-2-1", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"cb", "Defender", 5, 4},
			{"lm", "Left Mid", 2, 2},
			{"rm", "Right Mid", 8, 2},
			{"st", "Striker", 5, 0},
		}},
		{"2-1-1", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 3, 4},
			{"rcb", "Right Back", 7, 4},
			{"cm", "Centre Mid", 5, 2},
			{"st", "Striker", 5, 0},
		}},
		{"2-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 3, 4},
			{"rcb", "Right Back", 7, 4},
			{"ls", "Left Striker", 3, 0},
			{"rs", "Right Striker", 7, 0},
		}},
	},
	Format7v7: {
		{"2-3-1", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 3, 4},
			{"rcb", "Right Back", 7, 4},
			{"lm", "Left Mid", 2, 2},
			{"cm", "Centre Mid", 5, 2},
			{"rm", "Right Mid", 8, 2},
			{"st", "Striker", 5, 0},
		}},
		{"3-2-1", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 2, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Back", 8, 4},
			{"lcm", "Left Mid", 3, 2},
			{"rcm", "Right Mid", 7, 2},
			{"st", "Striker", 5, 0},
		}},
		{"3-1-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 2, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Back", 8, 4},
			{"cm", "Centre Mid", 5, 2},
			{"ls", "Left Striker", 3, 0},
			{"rs", "Right Striker", 7, 0},
		}},
	},
	Format9v9: {
		{"3-3-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 2, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Back", 8, 4},
			{"lm", "Left Mid", 2, 2},
			{"cm", "Centre Mid", 5, 2},
			{"rm", "Right Mid", 8, 2},
			{"ls", "Left Striker", 3, 0},
			{"rs", "Right Striker", 7, 0},
		}},
		{"3-2-3", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 2, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Back", 8, 4},
			{"lcm", "Left Mid", 3, 2},
			{"rcm", "Right Mid", 7, 2},
			{"lw", "Left Wing", 2, 0},
			{"st", "Striker", 5, 0},
			{"rw", "Right Wing", 8, 0},
		}},
		{"2-4-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Back", 3, 4},
			{"rcb", "Right Back", 7, 4},
			{"lm", "Left Mid", 0, 2},
			{"lcm", "Left Centre Mid", 3, 2},
			{"rcm", "Right Centre Mid", 7, 2},
			{"rm", "Right Mid", 10, 2},
			{"ls", "Left Striker", 3, 0},
			{"rs", "Right Striker", 7, 0},
		}},
	},
	Format11v11: {
		{"4-4-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lb", "Left Back", 1, 4},
			{"lcb", "Left Centre Back", 4, 4},
			{"rcb", "Right Centre Back", 6, 4},
			{"rb", "Right Back", 9, 4},
			{"lm", "Left Mid", 1, 2},
			{"lcm", "Left Centre Mid", 4, 2},
			{"rcm", "Right Centre Mid", 6, 2},
			{"rm", "Right Mid", 9, 2},
			{"ls", "Left Striker", 4, 0},
			{"rs", "Right Striker", 6, 0},
		}},
		{"4-3-3", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lb", "Left Back", 1, 4},
			{"lcb", "Left Centre Back", 4, 4},
			{"rcb", "Right Centre Back", 6, 4},
			{"rb", "Right Back", 9, 4},
			{"lcm", "Left Centre Mid", 3, 2},
			{"cm", "Centre Mid", 5, 2},
			{"rcm", "Right Centre Mid", 7, 2},
			{"lw", "Left Wing", 1, 0},
			{"st", "Striker", 5, 0},
			{"rw", "Right Wing", 9, 0},
		}},
		{"3-5-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lcb", "Left Centre Back", 3, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Centre Back", 7, 4},
			{"lwb", "Left Wing Back", 0, 2},
			{"lcm", "Left Centre Mid", 3, 2},
			{"cm", "Centre Mid", 5, 2},
			{"rcm", "Right Centre Mid", 7, 2},
			{"rwb", "Right Wing Back", 10, 2},
			{"ls", "Left Striker", 4, 0},
			{"rs", "Right Striker", 6, 0},
		}},
		{"4-2-3-1", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lb", "Left Back", 1, 4},
			{"lcb", "Left Centre Back", 4, 4},
			{"rcb", "Right Centre Back", 6, 4},
			{"rb", "Right Back", 9, 4},
			{"ldm", "Left Holding Mid", 4, 3},
			{"rdm", "Right Holding Mid", 6, 3},
			{"lam", "Left Attacking Mid", 2, 1},
			{"cam", "Centre Attacking Mid", 5, 1},
			{"ram", "Right Attacking Mid", 8, 1},
			{"st", "Striker", 5, 0},
		}},
		{"5-3-2", []Slot{
			{"gk", "Goalkeeper", 5, 6},
			{"lwb", "Left Wing Back", 0, 4},
			{"lcb", "Left Centre Back", 2, 4},
			{"cb", "Centre Back", 5, 4},
			{"rcb", "Right Centre Back", 8, 4},
			{"rwb", "Right Wing Back", 10, 4},
			{"lcm", "Left Centre Mid", 3, 2},
			{"cm", "Centre Mid", 5, 2},
			{"rcm", "Right Centre Mid", 7, 2},
			{"ls", "Left Striker", 4, 0},
			{"rs", "Right Striker", 6, 0},
		}},
	},
}

// Slots returns the ordered slot list for a formation, or nil when the format
// or name is unknown. The returned slice is a copy.
func Slots(format Format, name string) []Slot {
	for _, f := range registry[format] {
		if f.name == name {
			out := make([]Slot, len(f.slots))
			copy(out, f.slots)
			return out
		}
	}
	return nil
}

// Names returns the formation names available for a format in registration
// order, or an empty slice when the format is unknown.
func Names(format Format) []string {
	formations := registry[format]
	names := make([]string, 0, len(formations))
	for _, f := range formations {
		names = append(names, f.name)
	}
	return names
}

// Default returns the first registered formation name for a format.
func Default(format Format) string {
	if formations := registry[format]; len(formations) > 0 {
		return formations[0].name
	}
	return ""
}

// findSlot resolves a slot id to its coordinates by scanning every formation
// registered for the format, preferring the named formation. Scanning all of
// them keeps remapping robust to a stale formation tag on the saved lineup.
func findSlot(format Format, preferred string, slotID string) (Slot, bool) {
	for _, f := range registry[format] {
		if f.name != preferred {
			continue
		}
		for _, s := range f.slots {
			if s.ID == slotID {
				return s, true
			}
		}
	}
	for _, f := range registry[format] {
		for _, s := range f.slots {
			if s.ID == slotID {
				return s, true
			}
		}
	}
	return Slot{}, false
}
