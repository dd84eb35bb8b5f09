package ecs

import (
	"context"
	"time"
)

// UpdateFrame is the state shared by all systems during one scheduler tick.
type UpdateFrame struct {
	Context   context.Context
	DeltaTime time.Duration
	Commands  *Commands
	Storage   *Storage

	// Collisions holds the pairs found by a CollisionSystem earlier in the
	// same frame. Nil until one has run.
	Collisions []Pair

	// Err is set by a system that could not finish its work this frame.
	Err error
}

func newUpdateFrame(ctx context.Context, dt time.Duration, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Context:   ctx,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
