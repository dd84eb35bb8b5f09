package ecs

import "iter"

// All iterates live entities in creation order.
func (s *Storage) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.entities {
			if e == nil {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Query iterates live entities that have the kind slot populated, in
// creation order. The sequence is lazy and can be ranged over again.
func (s *Storage) Query(kind ComponentType) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.entities {
			if e == nil || !e.Components.Has(kind) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// First returns the earliest created entity with the kind slot populated.
// Use it to find singular entities such as the CameraFollow target.
func (s *Storage) First(kind ComponentType) (*Entity, bool) {
	for e := range s.Query(kind) {
		return e, true
	}
	return nil, false
}

// Count returns how many live entities have the kind slot populated.
func (s *Storage) Count(kind ComponentType) int {
	n := 0
	for range s.Query(kind) {
		n++
	}
	return n
}
