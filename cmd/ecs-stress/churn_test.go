package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/entstore/ecs"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChurnKeepsInvariants(t *testing.T) {
	log, hook := test.NewNullLogger()
	manager := ecs.NewManager(ecs.WithLogger(log))
	churn := NewChurn(manager, 1, log)

	churn.Populate(200)
	require.NoError(t, churn.Verify())

	for i := 0; i < 50; i++ {
		churn.Frame(200)
		require.NoError(t, churn.Verify(), "frame %d", i)
	}

	assert.Positive(t, churn.Ops.Creates)
	assert.Positive(t, churn.Ops.Destroys)
	assert.Positive(t, churn.Ops.Emplaces)
	assert.Positive(t, churn.Ops.Removes)
	assert.Empty(t, hook.AllEntries(), "no live entity should be rejected on destroy")
}

func TestChurnDetectsCorruption(t *testing.T) {
	log, _ := test.NewNullLogger()
	manager := ecs.NewManager()
	churn := NewChurn(manager, 2, log)
	churn.Populate(20)
	require.NoError(t, churn.Verify())

	// change state behind the model's back
	e := manager.CreateEntity()
	assert.Error(t, churn.Verify())
	manager.DestroyEntity(e)
	require.NoError(t, churn.Verify())

	tracked := churn.create()
	require.True(t, ecs.Emplace(manager, tracked, Health{Current: 5, Max: 10}))
	churn.live[tracked].health = &Health{Current: 5, Max: 10}
	require.NoError(t, churn.Verify())

	ecs.Get[Health](manager, tracked).Current = -1
	assert.Error(t, churn.Verify())
}

func TestReportGenerate(t *testing.T) {
	manager := ecs.NewManager()
	e := manager.CreateEntity()
	ecs.Emplace(manager, e, Position{X: 1})

	report := &Report{
		Duration:    time.Second,
		Entities:    1,
		OpsPerFrame: 10,
		Seed:        3,
		TotalFrames: 2,
		UpdateTime:  Stats{Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond}},
		Ops:         OpCounts{Creates: 1},
		Final:       manager.CollectStats(),
	}
	report.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# ECS Stress Test Report")
	assert.Contains(t, out, "**Avg:** 2ms")
	assert.Contains(t, out, "- main.Position (id ")
	assert.Contains(t, out, "Live Entities: 1")
}
