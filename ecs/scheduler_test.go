package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingSystem struct {
	ExecuteCount int
	LastDelta    time.Duration
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.LastDelta = frame.DeltaTime
}

// crashSystem deletes every entity that collided with the tracked one.
type crashSystem struct {
	Tracked ecs.EntityId
	Hits    []ecs.EntityId
}

func (s *crashSystem) Execute(frame *ecs.UpdateFrame) {
	for _, pair := range frame.Collisions {
		if other, ok := pair.Other(s.Tracked); ok {
			s.Hits = append(s.Hits, other)
			frame.Commands.Delete(other)
		}
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		storage := ecs.NewStorage()
		scheduler := ecs.NewScheduler(storage)

		var order []string
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))

		scheduler.Once(time.Second)
		scheduler.Once(time.Second)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("step then collide then react", func(t *testing.T) {
		storage := ecs.NewStorage()
		player := storage.Spawn(body(0, 0, 0, 1, 1, 1).WithCameraFollow())
		wall := storage.Spawn(body(0, 3, 0, 0, 1, 1))
		storage.Spawn(body(10, 10, 0, 0, 1, 1))

		crash := &crashSystem{Tracked: player}
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(ecs.StepSystem{})
		scheduler.Register(&ecs.CollisionSystem{})
		scheduler.Register(crash)

		frame := scheduler.Once(time.Second)
		assert.Empty(t, frame.Collisions)

		frame = scheduler.Once(time.Second)
		assert.Equal(t, []ecs.Pair{{A: player, B: wall}}, frame.Collisions)
		assert.Equal(t, []ecs.EntityId{wall}, crash.Hits)

		_, ok := storage.Get(wall)
		assert.False(t, ok, "wall deleted at end of frame")
		assert.Equal(t, 2, storage.Len())
	})

	t.Run("parallel collision system", func(t *testing.T) {
		storage := randomField(100, 5)
		want := storage.CollisionPass(time.Second)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&ecs.CollisionSystem{Workers: 4})

		frame := scheduler.Once(time.Second)
		assert.Equal(t, want, frame.Collisions)
	})

	t.Run("delta time", func(t *testing.T) {
		storage := ecs.NewStorage()
		id := storage.Spawn(ecs.Components{}.WithPosition(0, 0).WithVelocity(10, 20))

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(ecs.StepSystem{})
		scheduler.Once(500 * time.Millisecond)

		e, _ := storage.Get(id)
		assert.Equal(t, ecs.Position{X: 5, Y: 10}, *e.Components.Position)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage()
		scheduler := ecs.NewScheduler(storage)

		counter := &countingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, counter.ExecuteCount)
		assert.Positive(t, counter.LastDelta)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage()
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&countingSystem{})
		scheduler.Register(ecs.StepSystem{})

		for range 3 {
			scheduler.Once(time.Millisecond)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		require.Len(t, stats.Systems, 2)
		assert.Equal(t, "countingSystem", stats.Systems[0].Name)
		assert.Equal(t, "StepSystem", stats.Systems[1].Name)
		assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("debug logging", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		storage := ecs.NewStorage()
		storage.Spawn(body(0, 0, 0, 0, 1, 1))
		storage.Spawn(body(0, 0, 0, 0, 1, 1))

		scheduler := ecs.NewScheduler(storage, ecs.WithLogger(zap.New(core)))
		scheduler.Register(&ecs.CollisionSystem{})
		scheduler.Once(time.Second)

		entries := logs.FilterMessage("frame").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(1), fields["frame"])
		assert.Equal(t, int64(2), fields["entities"])
		assert.Equal(t, int64(1), fields["collisions"])
	})
}
