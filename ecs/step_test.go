package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	storage := ecs.NewStorage()
	still := storage.Spawn(ecs.Components{}.WithPosition(0, 0).WithVelocity(0, 0))
	moving := storage.Spawn(ecs.Components{}.WithPosition(1, 1).WithVelocity(1, 1))

	storage.Step(time.Second)

	e, _ := storage.Get(still)
	assert.Equal(t, ecs.Position{X: 0, Y: 0}, *e.Components.Position)

	e, _ = storage.Get(moving)
	assert.Equal(t, ecs.Position{X: 2, Y: 2}, *e.Components.Position)
	assert.Equal(t, ecs.Velocity{X: 1, Y: 1}, *e.Components.Velocity, "velocity is not changed by a step")
}

func TestStepIntegration(t *testing.T) {
	tests := []struct {
		name     string
		position ecs.Position
		velocity ecs.Velocity
		dt       time.Duration
	}{
		{"unit", ecs.Position{X: 0.1, Y: 0.2}, ecs.Velocity{X: 0.3, Y: 0.4}, time.Second},
		{"fractional", ecs.Position{X: 0.5, Y: -2}, ecs.Velocity{X: 3, Y: -0.25}, 1500 * time.Millisecond},
		{"frame", ecs.Position{X: 10, Y: 10}, ecs.Velocity{X: -60, Y: 30}, 16 * time.Millisecond},
		{"zero dt", ecs.Position{X: 4, Y: 5}, ecs.Velocity{X: 9, Y: 9}, 0},
		{"single axis", ecs.Position{X: 4, Y: 5}, ecs.Velocity{X: 0, Y: 2}, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := ecs.NewStorage()
			id := storage.Spawn(ecs.Components{
				Position: &ecs.Position{X: tt.position.X, Y: tt.position.Y},
				Velocity: &ecs.Velocity{X: tt.velocity.X, Y: tt.velocity.Y},
			})

			storage.Step(tt.dt)

			e, ok := storage.Get(id)
			require.True(t, ok)
			seconds := tt.dt.Seconds()
			assert.InDelta(t, tt.position.X+tt.velocity.X*seconds, e.Components.Position.X, 1e-9)
			assert.InDelta(t, tt.position.Y+tt.velocity.Y*seconds, e.Components.Position.Y, 1e-9)
		})
	}
}

func TestStepNegativeDeltaReverses(t *testing.T) {
	storage := ecs.NewStorage()
	id := storage.Spawn(ecs.Components{}.WithPosition(0, 0).WithVelocity(2, -1))

	storage.Step(-time.Second)

	e, _ := storage.Get(id)
	assert.Equal(t, ecs.Position{X: -2, Y: 1}, *e.Components.Position)
}

func TestStepSkipsIncompleteEntities(t *testing.T) {
	storage := ecs.NewStorage()
	noVelocity := storage.Spawn(ecs.Components{}.WithPosition(3, 3))
	noPosition := storage.Spawn(ecs.Components{}.WithVelocity(5, 5))

	storage.Step(time.Second)

	e, _ := storage.Get(noVelocity)
	assert.Equal(t, ecs.Position{X: 3, Y: 3}, *e.Components.Position)

	e, _ = storage.Get(noPosition)
	assert.Nil(t, e.Components.Position)
	assert.Equal(t, ecs.Velocity{X: 5, Y: 5}, *e.Components.Velocity)
}

func TestStepSkipsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage()
	id := storage.Spawn(ecs.Components{}.WithPosition(0, 0).WithVelocity(1, 1))
	e, _ := storage.Get(id)
	storage.Delete(id)

	storage.Step(time.Second)
	assert.Equal(t, ecs.Position{X: 0, Y: 0}, *e.Components.Position)
}
