package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/entstore/ecs"
	"github.com/stretchr/testify/assert"
)

func TestEntityEncoding(t *testing.T) {
	e := ecs.NewEntity(7, 12345)

	assert.Equal(t, uint8(7), e.Generation())
	assert.Equal(t, uint32(12345), e.Slot())
}

func TestEntityEdgeCases(t *testing.T) {
	tests := []struct {
		generation uint8
		slot       uint32
	}{
		{0, 0},
		{0xFF, 0xFFFFFF},
		{1, 0},
		{0, 1},
		{0x12, 0x345678},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,slot=%d", tt.generation, tt.slot), func(t *testing.T) {
			e := ecs.NewEntity(tt.generation, tt.slot)
			assert.Equal(t, tt.generation, e.Generation())
			assert.Equal(t, tt.slot, e.Slot())
		})
	}
}

func TestEntitySlotMasked(t *testing.T) {
	e := ecs.NewEntity(3, 0x1000002)

	assert.Equal(t, uint32(2), e.Slot())
	assert.Equal(t, uint8(3), e.Generation())
}

func TestEntityEqualityUsesGeneration(t *testing.T) {
	a := ecs.NewEntity(0, 42)
	b := ecs.NewEntity(1, 42)

	assert.Equal(t, a.Slot(), b.Slot())
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ecs.NewEntity(0, 42))
}

func TestEntityNextGeneration(t *testing.T) {
	e := ecs.NewEntity(4, 99)
	next := e.NextGeneration()

	assert.Equal(t, uint8(5), next.Generation())
	assert.Equal(t, uint32(99), next.Slot())

	wrapped := ecs.NewEntity(255, 99).NextGeneration()
	assert.Equal(t, uint8(0), wrapped.Generation())
	assert.Equal(t, uint32(99), wrapped.Slot())
}

func TestEntityString(t *testing.T) {
	assert.Equal(t, "17(gen:2)", ecs.NewEntity(2, 17).String())
}
