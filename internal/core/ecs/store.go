package ecs

import "fmt"

const (
	// DefaultReservedCount is the baseline sparse-table size and dense-array
	// capacity a store starts with.
	DefaultReservedCount = 50000

	// sparseGrowthPad is the extra headroom added whenever the sparse table
	// must grow to cover a new entity, trading memory for fewer allocations
	// and contiguous blocks.
	sparseGrowthPad = 5000
)

// Store is a packed component container for a single payload type. Dense
// parallel arrays hold the payloads and their owning entities with no gaps;
// a direct-indexed sparse table maps an entity to its dense index, or
// NotFound.
//
// A Store has no internal locking. Mutations on one instance must be
// externally serialized; lookups may run concurrently with each other but
// not with a mutation. Distinct stores only meet at the shared Registry,
// which synchronizes itself.
type Store[T any] struct {
	registry   *Registry
	components []T
	entities   []Entity
	sparse     []int
}

// NewStore returns a store with the default reserved capacity.
func NewStore[T any](registry *Registry) *Store[T] {
	return NewStoreWithCapacity[T](registry, DefaultReservedCount)
}

// NewStoreWithCapacity returns a store pre-sized for reserved entities.
func NewStoreWithCapacity[T any](registry *Registry, reserved int) *Store[T] {
	if registry == nil {
		panic("ecs: store requires a registry")
	}
	if reserved < 0 {
		reserved = 0
	}
	s := &Store[T]{
		registry:   registry,
		components: make([]T, 0, reserved),
		entities:   make([]Entity, 0, reserved),
		sparse:     make([]int, reserved),
	}
	for i := range s.sparse {
		s.sparse[i] = NotFound
	}
	return s
}

// growSparse extends the sparse table to length n, marking new slots
// unmapped. No-op when already large enough.
func (s *Store[T]) growSparse(n int) {
	if n <= len(s.sparse) {
		return
	}
	old := len(s.sparse)
	if cap(s.sparse) >= n {
		s.sparse = s.sparse[:n]
	} else {
		grown := make([]int, n)
		copy(grown, s.sparse)
		s.sparse = grown
	}
	for i := old; i < n; i++ {
		s.sparse[i] = NotFound
	}
}

func (s *Store[T]) ensureSparse(entity Entity) {
	if int(entity) >= len(s.sparse) {
		s.growSparse(int(entity) + sparseGrowthPad)
	}
}

// Create appends a zero-valued component for entity and returns a pointer to
// it for the caller to populate. The entity must be valid and must not
// already have a component in this store; both violations panic.
//
// The returned pointer is invalidated by any later mutation of the store.
func (s *Store[T]) Create(entity Entity) *T {
	if entity == InvalidEntity {
		panic("ecs: Create called with the invalid entity")
	}
	s.ensureSparse(entity)
	if s.sparse[entity] != NotFound {
		panic(fmt.Sprintf("ecs: entity %d already has a component in this store", entity))
	}

	s.sparse[entity] = len(s.components)
	var zero T
	s.components = append(s.components, zero)
	s.entities = append(s.entities, entity)

	s.registry.OnComponentAdded(entity)
	return &s.components[len(s.components)-1]
}

// Remove deletes entity's component in O(1) by moving the last dense element
// into the freed slot. Dense order is not preserved. No-op if absent.
func (s *Store[T]) Remove(entity Entity) {
	if int(entity) >= len(s.sparse) || s.sparse[entity] == NotFound {
		return
	}
	index := s.sparse[entity]
	last := len(s.components) - 1

	if index < last {
		s.components[index] = s.components[last]
		moved := s.entities[last]
		s.entities[index] = moved
		s.sparse[moved] = index
	}
	s.components = s.components[:last]
	s.entities = s.entities[:last]
	s.sparse[entity] = NotFound

	s.registry.OnComponentRemoved(entity)
}

// RemoveKeepSorted deletes entity's component while preserving the relative
// order of every other entry, shifting the tail one slot left. O(n) in the
// number of entries after the removed one. No-op if absent.
func (s *Store[T]) RemoveKeepSorted(entity Entity) {
	if int(entity) >= len(s.sparse) || s.sparse[entity] == NotFound {
		return
	}
	index := s.sparse[entity]
	last := len(s.components) - 1

	for i := index + 1; i <= last; i++ {
		s.components[i-1] = s.components[i]
		moved := s.entities[i]
		s.entities[i-1] = moved
		s.sparse[moved] = i - 1
	}
	s.components = s.components[:last]
	s.entities = s.entities[:last]
	s.sparse[entity] = NotFound

	s.registry.OnComponentRemoved(entity)
}

// MoveItem relocates the element at dense index from to index to, shifting
// everything in between by one slot. Both indices must be valid dense
// indices.
func (s *Store[T]) MoveItem(from, to int) {
	if from < 0 || from >= len(s.components) {
		panic(fmt.Sprintf("ecs: MoveItem from index %d out of range", from))
	}
	if to < 0 || to >= len(s.components) {
		panic(fmt.Sprintf("ecs: MoveItem to index %d out of range", to))
	}
	if from == to {
		return
	}

	component := s.components[from]
	entity := s.entities[from]

	direction := 1
	if from > to {
		direction = -1
	}
	for i := from; i != to; i += direction {
		next := i + direction
		s.components[i] = s.components[next]
		s.entities[i] = s.entities[next]
		s.sparse[s.entities[i]] = i
	}
	s.components[to] = component
	s.entities[to] = entity
	s.sparse[entity] = to
}

// Contains reports whether entity has a component in this store.
func (s *Store[T]) Contains(entity Entity) bool {
	return int(entity) < len(s.sparse) && s.sparse[entity] != NotFound
}

// GetComponent returns a pointer to entity's component, or nil when absent.
func (s *Store[T]) GetComponent(entity Entity) *T {
	if int(entity) < len(s.sparse) && s.sparse[entity] != NotFound {
		return &s.components[s.sparse[entity]]
	}
	return nil
}

// GetIndex returns entity's dense index, or NotFound.
func (s *Store[T]) GetIndex(entity Entity) int {
	if int(entity) < len(s.sparse) {
		return s.sparse[entity]
	}
	return NotFound
}

// Clear releases every held component, notifying the registry per entity.
// The sparse table keeps its reserved size but forgets every mapping.
func (s *Store[T]) Clear() {
	for _, entity := range s.entities {
		s.registry.OnComponentRemoved(entity)
	}
	s.components = s.components[:0]
	s.entities = s.entities[:0]
	for i := range s.sparse {
		s.sparse[i] = NotFound
	}
}

// Copy replaces this store's contents with a duplicate of other's, leaving
// other untouched. The registry is notified of an addition per copied
// entity.
func (s *Store[T]) Copy(other *Store[T]) {
	s.Clear()
	for _, entity := range other.entities {
		s.registry.OnComponentAdded(entity)
	}
	s.components = append(s.components, other.components...)
	s.entities = append(s.entities, other.entities...)
	s.sparse = append(s.sparse[:0], other.sparse...)
}

// Merge appends every entry of other into this store and empties other,
// transferring ownership. None of other's entities may already be present
// here; that is a contract violation and panics. other releases its own
// registry bookkeeping through its Clear, so each transferred entity nets a
// single add on this store and a single remove on other.
func (s *Store[T]) Merge(other *Store[T]) {
	if len(s.sparse) < len(other.sparse) {
		s.growSparse(len(other.sparse) + sparseGrowthPad)
	}
	for i, entity := range other.entities {
		if s.Contains(entity) {
			panic(fmt.Sprintf("ecs: Merge source entity %d already present in destination", entity))
		}
		s.ensureSparse(entity)
		s.sparse[entity] = len(s.components)
		s.components = append(s.components, other.components[i])
		s.entities = append(s.entities, entity)
		s.registry.OnComponentAdded(entity)
	}
	other.Clear()
}

// Count returns the number of components held.
func (s *Store[T]) Count() int {
	return len(s.components)
}

// At returns a pointer to the component at dense index.
func (s *Store[T]) At(index int) *T {
	return &s.components[index]
}

// EntityAt returns the owner of the component at dense index.
func (s *Store[T]) EntityAt(index int) Entity {
	return s.entities[index]
}

// Entities returns the dense entity slice. Callers must treat it as
// read-only; it is invalidated by any mutation.
func (s *Store[T]) Entities() []Entity {
	return s.entities
}
