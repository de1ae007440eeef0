package ecs_test

import (
	"testing"

	"github.com/plus3/entstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStats(t *testing.T) {
	m := ecs.NewManager()

	stats := m.CollectStats()
	assert.Equal(t, 0, stats.LiveEntities)
	assert.Equal(t, 0, stats.FreeSlots)
	assert.Equal(t, 0, stats.SlotCount)
	assert.Empty(t, stats.Sets)

	a := m.CreateEntity()
	b := m.CreateEntity()
	c := m.CreateEntity()
	ecs.Emplace(m, a, Tag("a"))
	ecs.Emplace(m, b, Tag("b"))
	ecs.Emplace(m, b, Inventory{Items: []string{"sword"}})
	ecs.Emplace(m, c, PlayerController{})
	m.DestroyEntity(a)

	stats = m.CollectStats()
	assert.Equal(t, 2, stats.LiveEntities)
	assert.Equal(t, 1, stats.FreeSlots)
	assert.Equal(t, 3, stats.SlotCount)
	require.Len(t, stats.Sets, 3)

	byName := map[string]int{}
	for i, set := range stats.Sets {
		byName[set.TypeName] = set.Len
		if i > 0 {
			assert.Less(t, stats.Sets[i-1].TypeID, set.TypeID)
		}
	}
	assert.Equal(t, map[string]int{
		"ecs_test.Tag":              1,
		"ecs_test.Inventory":        1,
		"ecs_test.PlayerController": 1,
	}, byName)
}
