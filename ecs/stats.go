package ecs

import (
	"cmp"
	"slices"
)

// ManagerStats is a snapshot of a Manager's entity pool and component sets.
type ManagerStats struct {
	LiveEntities int
	FreeSlots    int
	SlotCount    int
	Sets         []SetStats
}

// SetStats describes a single component set.
type SetStats struct {
	TypeID   TypeID
	TypeName string
	Len      int
}

// CollectStats gathers a snapshot of m. Sets are ordered by TypeID.
func (m *Manager) CollectStats() ManagerStats {
	stats := ManagerStats{
		LiveEntities: len(m.reserved),
		FreeSlots:    len(m.destroyed),
		SlotCount:    len(m.slots),
		Sets:         make([]SetStats, 0, len(m.setOrder)),
	}

	for _, set := range m.setOrder {
		stats.Sets = append(stats.Sets, SetStats{
			TypeID:   set.TypeID(),
			TypeName: TypeName(set.TypeID()),
			Len:      set.Len(),
		})
	}
	slices.SortFunc(stats.Sets, func(a, b SetStats) int {
		return cmp.Compare(a.TypeID, b.TypeID)
	})

	return stats
}
