package formation

// Slot is a named position within a formation. Col runs left to right across
// the pitch (0-10), Row counts down from the attacking line, so the keeper
// always sits on the highest row. Coordinates exist only for nearest-slot
// remapping when the formation changes; rendering is the UI's problem.
type Slot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
}

// Format identifies a squad-size format, e.g. "7v7".
type Format string

const (
	Format5v5   Format = "5v5"
	Format7v7   Format = "7v7"
	Format9v9   Format = "9v9"
	Format11v11 Format = "11v11"
)
