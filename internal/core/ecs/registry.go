package ecs

import "sync"

// Registry owns the entity id namespace: it allocates fresh ids, counts how
// many components across all participating stores reference each id, and
// recycles an id once its count drops to zero.
//
// Every operation takes the single registry mutex for its full duration, so
// a Registry is safe to share between any number of goroutines. Allocation
// and ref-counting stay atomic with respect to each other; that is the whole
// point of the coarse lock.
type Registry struct {
	mu        sync.Mutex
	freeIDs   []Entity
	nextID    Entity
	refCounts map[Entity]int
	reused    uint32
}

// NewRegistry returns an empty registry whose first allocated id is 1.
func NewRegistry() *Registry {
	return &Registry{
		nextID:    InvalidEntity + 1,
		refCounts: make(map[Entity]int),
	}
}

// CreateEntity returns a usable entity id, preferring the most recently
// recycled one. It never returns InvalidEntity.
func (r *Registry) CreateEntity() Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.freeIDs); n > 0 {
		id := r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.reused++
		return id
	}
	id := r.nextID
	r.nextID++
	return id
}

// OnComponentAdded records that a store now holds a component for entity.
// Stores call this exactly once per successful insertion.
func (r *Registry) OnComponentAdded(entity Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refCounts[entity]++
}

// OnComponentRemoved records that a store released its component for entity.
// When the count reaches zero the id joins the free list and becomes
// eligible for reuse. Calling this for an untracked entity is a no-op,
// guarding against double release.
func (r *Registry) OnComponentRemoved(entity Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, ok := r.refCounts[entity]
	if !ok {
		return
	}
	count--
	if count == 0 {
		delete(r.refCounts, entity)
		r.freeIDs = append(r.freeIDs, entity)
		return
	}
	r.refCounts[entity] = count
}

// Clear resets the registry to its initial empty state. Component stores
// keep their own storage; callers resetting a whole world must clear each
// store separately.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.freeIDs = r.freeIDs[:0]
	r.nextID = InvalidEntity + 1
	r.refCounts = make(map[Entity]int)
	r.reused = 0
}

// EntityCount returns the number of ids currently in use, i.e. handed out
// and not sitting on the free list.
func (r *Registry) EntityCount() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.nextID) - 1 - uint32(len(r.freeIDs))
}

// ReusedCount returns how many allocations were satisfied from the free
// list rather than the monotonic counter.
func (r *Registry) ReusedCount() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reused
}
