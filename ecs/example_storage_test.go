package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/hewn/ecs"
)

// ExampleStorage shows a single tick: spawn, step, then react to collisions.
func ExampleStorage() {
	storage := ecs.NewStorage()

	player := storage.Spawn(ecs.Components{}.
		WithPosition(0, 0).
		WithVelocity(0, 1).
		WithSize(1, 1).
		WithRender('@', ecs.Color{R: 1}).
		WithCameraFollow())
	storage.Spawn(ecs.Components{}.
		WithPosition(0, 2).
		WithSize(1, 1).
		WithRender('#', ecs.Color{R: 0.5, G: 0.5, B: 0.5}))

	for tick := range 2 {
		storage.Step(time.Second)
		for _, pair := range storage.CollisionPass(time.Second) {
			if other, ok := pair.Other(player); ok {
				fmt.Printf("tick %d: player hit entity %d\n", tick, other)
			}
		}
	}

	for e := range storage.Query(ecs.RenderType) {
		p := e.Components.Position
		fmt.Printf("%c at (%.0f, %.0f)\n", e.Components.Render.Glyph, p.X, p.Y)
	}

	// Output:
	// tick 0: player hit entity 1
	// tick 1: player hit entity 1
	// @ at (0, 2)
	// # at (0, 2)
}
