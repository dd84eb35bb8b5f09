package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage()
	keep := storage.Spawn(ecs.Components{}.WithPosition(0, 0))
	doomed := storage.Spawn(ecs.Components{}.WithPosition(1, 1))

	var log []string
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() { log = append(log, "defer") })
		frame.Commands.Spawn(ecs.Components{}.WithPosition(2, 2))
		frame.Commands.Update(doomed, func(c *ecs.Components) {
			log = append(log, "update doomed")
		})
		frame.Commands.Update(keep, func(c *ecs.Components) {
			log = append(log, "update keep")
			c.Velocity = &ecs.Velocity{X: 1}
		})
		frame.Commands.Delete(doomed)
		assert.Equal(t, 5, frame.Commands.Len())
	}))

	frame := scheduler.Once(time.Second)
	assert.Zero(t, frame.Commands.Len())
	assert.Equal(t, []string{"update keep", "defer"}, log)

	_, ok := storage.Get(doomed)
	assert.False(t, ok)

	e, ok := storage.Get(keep)
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Components.Velocity.X)

	spawned, ok := storage.Get(2)
	require.True(t, ok)
	assert.Equal(t, ecs.Position{X: 2, Y: 2}, *spawned.Components.Position)
}

func TestCommandsDeferredDuringIteration(t *testing.T) {
	storage := ecs.NewStorage()
	for i := range 5 {
		storage.Spawn(ecs.Components{}.WithPosition(float64(i), 0))
	}

	scheduler := ecs.NewScheduler(storage)
	visited := 0
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		for e := range frame.Storage.Query(ecs.PositionType) {
			visited++
			frame.Commands.Delete(e.Id)
			frame.Commands.Spawn(ecs.Components{})
		}
	}))

	scheduler.Once(time.Second)
	assert.Equal(t, 5, visited, "spawns are not visible mid-iteration")
	assert.Equal(t, 5, storage.Len())
	assert.Zero(t, storage.Count(ecs.PositionType))
	assert.Equal(t, ecs.EntityId(10), storage.NextId())
}
