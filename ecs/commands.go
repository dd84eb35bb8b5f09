package ecs

// Commands buffers structural changes requested while systems iterate the
// store. They are applied in one go when the frame ends.
type Commands struct {
	spawns  []Components
	deletes []EntityId
	updates []updateCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type updateCommand struct {
	entity EntityId
	fn     func(*Components)
}

// Spawn queues the creation of an entity.
func (c *Commands) Spawn(components Components) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of an entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Update queues a change to an entity's bundle, such as adding or clearing
// a component. Skipped if the entity is gone by flush time.
func (c *Commands) Update(entity EntityId, fn func(*Components)) {
	c.updates = append(c.updates, updateCommand{entity: entity, fn: fn})
}

// Defer queues a function to run after all other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.updates) + len(c.defers)
}

// Flush applies the queued commands to storage and resets the buffer.
// Deletes run first, then updates, spawns and deferred functions.
// It returns the ids of spawned entities in queue order.
func (c *Commands) Flush(storage *Storage) []EntityId {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.updates {
		if e, ok := storage.Get(cmd.entity); ok {
			cmd.fn(&e.Components)
		}
	}

	var spawned []EntityId
	if len(c.spawns) > 0 {
		spawned = make([]EntityId, 0, len(c.spawns))
		for _, components := range c.spawns {
			spawned = append(spawned, storage.Spawn(components))
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.updates)
	c.updates = c.updates[:0]
	clear(c.defers)
	c.defers = c.defers[:0]

	return spawned
}
