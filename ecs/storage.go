package ecs

import "github.com/kamstrup/intmap"

// Storage owns every entity of a scene. Entities live in a single flat
// slice in creation order; each carries the full optional bundle, so a
// query is one pass that only inspects the requested slot.
//
// Storage is not safe for concurrent mutation. One tick owns it at a time.
type Storage struct {
	entities []*Entity
	slots    *intmap.Map[EntityId, int]
	nextId   EntityId
	live     int
}

// NewStorage creates an empty store.
func NewStorage() *Storage {
	return &Storage{
		entities: make([]*Entity, 0, 64),
		slots:    intmap.New[EntityId, int](64),
	}
}

// Spawn stores a new entity with the given bundle and returns its id.
func (s *Storage) Spawn(components Components) EntityId {
	id := s.nextId
	s.nextId++

	s.slots.Put(id, len(s.entities))
	s.entities = append(s.entities, &Entity{Id: id, Components: components})
	s.live++
	return id
}

// Get returns the entity for id. The pointer stays valid for the entity's
// lifetime and may be used to mutate components in place.
func (s *Storage) Get(id EntityId) (*Entity, bool) {
	slot, ok := s.slots.Get(id)
	if !ok {
		return nil, false
	}
	return s.entities[slot], true
}

// Delete removes the entity. Its id is never handed out again and every
// other id is unaffected. Returns false if the id is unknown.
func (s *Storage) Delete(id EntityId) bool {
	slot, ok := s.slots.Get(id)
	if !ok {
		return false
	}
	s.entities[slot] = nil
	s.slots.Del(id)
	s.live--
	return true
}

// Compact drops the slots left behind by Delete. Creation order is kept.
func (s *Storage) Compact() {
	if s.live == len(s.entities) {
		return
	}

	write := 0
	for _, e := range s.entities {
		if e == nil {
			continue
		}
		s.entities[write] = e
		write++
	}
	clear(s.entities[write:])
	s.entities = s.entities[:write]

	s.slots.Clear()
	for slot, e := range s.entities {
		s.slots.Put(e.Id, slot)
	}
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.live
}

// NextId returns the id the next Spawn will assign.
func (s *Storage) NextId() EntityId {
	return s.nextId
}
