package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	LiveEntities    int
	Tombstones      int
	NextId          EntityId
	ComponentCounts map[ComponentType]int
}

// CollectStats walks the store once and reports entity and component counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		LiveEntities:    s.live,
		Tombstones:      len(s.entities) - s.live,
		NextId:          s.nextId,
		ComponentCounts: make(map[ComponentType]int, componentTypeCount),
	}

	for e := range s.All() {
		for _, kind := range ComponentTypes() {
			if e.Components.Has(kind) {
				stats.ComponentCounts[kind]++
			}
		}
	}

	return stats
}
