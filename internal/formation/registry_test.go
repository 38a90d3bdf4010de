package formation_test

import (
	"testing"

	"github.com/pitchside/matchday/internal/formation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	t.Run("returns ordered slots for a known formation", func(t *testing.T) {
		slots := formation.Slots(formation.Format7v7, "2-3-1")
		require.Len(t, slots, 7)
		assert.Equal(t, "gk", slots[0].ID)
		assert.Equal(t, "st", slots[6].ID)
	})

	t.Run("slot ids are unique within every formation", func(t *testing.T) {
		for _, format := range []formation.Format{formation.Format5v5, formation.Format7v7, formation.Format9v9, formation.Format11v11} {
			for _, name := range formation.Names(format) {
				seen := make(map[string]bool)
				for _, s := range formation.Slots(format, name) {
					assert.False(t, seen[s.ID], "duplicate slot %s in %s %s", s.ID, format, name)
					seen[s.ID] = true
				}
			}
		}
	})

	t.Run("keeper sits on the highest row in every formation", func(t *testing.T) {
		for _, format := range []formation.Format{formation.Format5v5, formation.Format7v7, formation.Format9v9, formation.Format11v11} {
			for _, name := range formation.Names(format) {
				slots := formation.Slots(format, name)
				var gkRow, maxRow int
				for _, s := range slots {
					if s.ID == "gk" {
						gkRow = s.Row
					}
					if s.Row > maxRow {
						maxRow = s.Row
					}
				}
				assert.Equal(t, maxRow, gkRow, "%s %s", format, name)
			}
		}
	})

	t.Run("unknown formation returns nil", func(t *testing.T) {
		assert.Nil(t, formation.Slots(formation.Format7v7, "9-9-9"))
		assert.Nil(t, formation.Slots(formation.Format7v7, "4-4-2"))
		assert.Nil(t, formation.Slots(formation.Format("3v3"), "2-1"))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		slots := formation.Slots(formation.Format5v5, "1-2-1")
		slots[0].ID = "mutated"
		assert.Equal(t, "gk", formation.Slots(formation.Format5v5, "1-2-1")[0].ID)
	})
}

func TestNames(t *testing.T) {
	names := formation.Names(formation.Format11v11)
	require.NotEmpty(t, names)
	assert.Equal(t, "4-4-2", names[0])
	assert.Contains(t, names, "4-2-3-1")

	assert.Empty(t, formation.Names(formation.Format("12v12")))
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "4-4-2", formation.Default(formation.Format11v11))
	assert.Equal(t, "2-3-1", formation.Default(formation.Format7v7))
	assert.Equal(t, "", formation.Default(formation.Format("unknown")))
}
