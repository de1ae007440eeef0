package ecs_test

import (
	"sync"
	"testing"

	"github.com/plus3/entstore/ecs"
	"github.com/stretchr/testify/assert"
)

func TestTypeIDStable(t *testing.T) {
	first := ecs.TypeIDOf[Position]()
	second := ecs.TypeIDOf[Position]()

	assert.Equal(t, first, second)
	assert.NotZero(t, first)
}

func TestTypeIDDistinct(t *testing.T) {
	ids := map[ecs.TypeID]string{}
	ids[ecs.TypeIDOf[Position]()] = "Position"
	ids[ecs.TypeIDOf[Velocity]()] = "Velocity"
	ids[ecs.TypeIDOf[Score]()] = "Score"
	ids[ecs.TypeIDOf[int32]()] = "int32"
	ids[ecs.TypeIDOf[Tag]()] = "Tag"
	ids[ecs.TypeIDOf[string]()] = "string"

	assert.Len(t, ids, 6)
}

func TestTypeIDMonotonic(t *testing.T) {
	type registryFirst struct{}
	type registrySecond struct{}

	first := ecs.TypeIDOf[registryFirst]()
	second := ecs.TypeIDOf[registrySecond]()

	assert.Greater(t, second, first)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "ecs_test.Position", ecs.TypeName(ecs.TypeIDOf[Position]()))
	assert.Equal(t, "ecs_test.Score", ecs.TypeName(ecs.TypeIDOf[Score]()))
	assert.Equal(t, "", ecs.TypeName(0))
	assert.Equal(t, "", ecs.TypeName(ecs.TypeID(1<<31)))
}

func TestTypeIDConcurrentFirstUse(t *testing.T) {
	type concurrentComponent struct{ N int }

	var wg sync.WaitGroup
	ids := make([]ecs.TypeID, 16)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = ecs.TypeIDOf[concurrentComponent]()
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}
