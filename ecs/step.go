package ecs

import "time"

// Step advances every entity that has both Position and Velocity by
// velocity * dt. An axis with zero velocity is left untouched. A negative
// dt runs motion backwards; callers that don't want that must not pass one.
func (s *Storage) Step(dt time.Duration) {
	seconds := dt.Seconds()
	for e := range s.Query(VelocityType) {
		position := e.Components.Position
		if position == nil {
			continue
		}
		velocity := e.Components.Velocity

		if velocity.X != 0 {
			position.X += velocity.X * seconds
		}
		if velocity.Y != 0 {
			position.Y += velocity.Y * seconds
		}
	}
}

// StepSystem integrates positions once per frame.
type StepSystem struct{}

func (StepSystem) Execute(frame *UpdateFrame) {
	frame.Storage.Step(frame.DeltaTime)
}
