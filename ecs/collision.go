package ecs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Span is a half-open interval [Start, End).
type Span struct {
	Start, End float64
}

// Overlaps reports whether the spans share interior. Spans that only
// touch at an edge do not overlap.
func (a Span) Overlaps(b Span) bool {
	return a.End > b.Start && b.End > a.Start
}

// CollisionBox is the per-axis area an entity occupies over one frame.
type CollisionBox struct {
	X, Y Span
}

// Overlaps reports whether the boxes overlap on both axes.
func (a CollisionBox) Overlaps(b CollisionBox) bool {
	return a.X.Overlaps(b.X) && a.Y.Overlaps(b.Y)
}

// BoxFor builds the swept collision box of e for a frame of length dt.
// Each axis covers the resting footprint extended by the distance travelled
// this frame, on the side the entity is moving towards. Entities without
// Position or Size have no box. A missing Velocity counts as zero.
func BoxFor(e *Entity, dt time.Duration) (CollisionBox, bool) {
	position := e.Components.Position
	size := e.Components.Size
	if position == nil || size == nil {
		return CollisionBox{}, false
	}

	var vx, vy float64
	if v := e.Components.Velocity; v != nil {
		vx, vy = v.X, v.Y
	}

	seconds := dt.Seconds()
	return CollisionBox{
		X: sweptSpan(position.X, size.X, vx*seconds),
		Y: sweptSpan(position.Y, size.Y, vy*seconds),
	}, true
}

func sweptSpan(position, size, travel float64) Span {
	if travel >= 0 {
		return Span{Start: position, End: position + size + travel}
	}
	return Span{Start: position + travel, End: position + size}
}

type boxed struct {
	id  EntityId
	box CollisionBox
}

// boxes collects the collision boxes of all eligible entities in creation order.
func (s *Storage) boxes(dt time.Duration) []boxed {
	out := make([]boxed, 0, len(s.entities))
	for e := range s.All() {
		if box, ok := BoxFor(e, dt); ok {
			out = append(out, boxed{id: e.Id, box: box})
		}
	}
	return out
}

// collideRow tests boxes[i] against every later box.
func collideRow(boxes []boxed, i int, out []Pair) []Pair {
	a := boxes[i]
	for _, b := range boxes[i+1:] {
		if a.box.Overlaps(b.box) {
			out = append(out, Pair{A: a.id, B: b.id})
		}
	}
	return out
}

// CollisionPass tests every unordered pair of entities with Position and
// Size exactly once and returns the overlapping ones. Pairs come out in
// creation order of A, then of B. The pass is O(n²) and never mutates the
// store.
func (s *Storage) CollisionPass(dt time.Duration) []Pair {
	boxes := s.boxes(dt)

	var pairs []Pair
	for i := range boxes {
		pairs = collideRow(boxes, i, pairs)
	}
	return pairs
}

// ParallelCollisionPass is CollisionPass with rows spread over workers
// goroutines. The result is identical to CollisionPass for the same input.
// The only error is ctx's.
func (s *Storage) ParallelCollisionPass(ctx context.Context, dt time.Duration, workers int) ([]Pair, error) {
	boxes := s.boxes(dt)
	if workers < 1 {
		workers = 1
	}

	rows := make([][]Pair, len(boxes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range boxes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = collideRow(boxes, i, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pairs []Pair
	for _, row := range rows {
		pairs = append(pairs, row...)
	}
	return pairs, nil
}

// CollisionSystem runs the collision pass and publishes the pairs on the
// frame for systems registered after it. If the frame's context is
// cancelled during a parallel pass, Collisions stays nil and the context
// error is recorded in frame.Err.
type CollisionSystem struct {
	// Workers above 1 switch to ParallelCollisionPass.
	Workers int
}

func (c *CollisionSystem) Execute(frame *UpdateFrame) {
	if c.Workers <= 1 {
		frame.Collisions = frame.Storage.CollisionPass(frame.DeltaTime)
		return
	}

	pairs, err := frame.Storage.ParallelCollisionPass(frame.Context, frame.DeltaTime, c.Workers)
	if err != nil {
		frame.Collisions = nil
		frame.Err = err
		return
	}
	frame.Collisions = pairs
}
