// Package ecs is the entity/component scene store shared by the games:
// a flat bundle of optional components per entity, a step system that
// integrates velocity and a swept AABB collision pass.
package ecs

// EntityId identifies an entity for the lifetime of a Storage.
// Ids are allocated sequentially from zero and are never reused.
type EntityId uint32

// Entity is an id paired with its component bundle.
type Entity struct {
	Id         EntityId
	Components Components
}

// Has reports whether the entity's bundle has the given slot populated.
func (e *Entity) Has(kind ComponentType) bool {
	return e.Components.Has(kind)
}

// Pair is an unordered pair of colliding entities. A was created before B.
type Pair struct {
	A, B EntityId
}

// Contains reports whether id is one side of the pair.
func (p Pair) Contains(id EntityId) bool {
	return p.A == id || p.B == id
}

// Other returns the side of the pair that is not id.
// The second result is false when id is not part of the pair.
func (p Pair) Other(id EntityId) (EntityId, bool) {
	switch id {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	}
	return 0, false
}
