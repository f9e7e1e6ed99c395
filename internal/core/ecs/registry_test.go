package ecs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateEntitySequential(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, Entity(1), r.CreateEntity())
	assert.Equal(t, Entity(2), r.CreateEntity())
	assert.Equal(t, Entity(3), r.CreateEntity())
	assert.Equal(t, uint32(3), r.EntityCount())
	assert.Equal(t, uint32(0), r.ReusedCount())
}

func TestNeverReturnsInvalidEntity(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 100; i++ {
		assert.NotEqual(t, InvalidEntity, r.CreateEntity())
	}
}

func TestRecycleAfterLastComponentRemoved(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()

	// Two stores hold the entity; only the second release frees the id.
	r.OnComponentAdded(e)
	r.OnComponentAdded(e)

	r.OnComponentRemoved(e)
	next := r.CreateEntity()
	assert.NotEqual(t, e, next, "id must not be recycled while still referenced")

	r.OnComponentRemoved(e)
	assert.Equal(t, e, r.CreateEntity())
	assert.Equal(t, uint32(1), r.ReusedCount())
}

func TestReuseOrderIsLIFO(t *testing.T) {
	r := NewRegistry()
	ids := make([]Entity, 4)
	for i := range ids {
		ids[i] = r.CreateEntity()
		r.OnComponentAdded(ids[i])
	}
	for _, id := range ids {
		r.OnComponentRemoved(id)
	}

	// Freed in order 1,2,3,4; reuse pops the stack.
	for i := len(ids) - 1; i >= 0; i-- {
		assert.Equal(t, ids[i], r.CreateEntity())
	}
	assert.Equal(t, uint32(4), r.ReusedCount())
}

func TestDoubleReleaseIsNoOp(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	r.OnComponentAdded(e)
	r.OnComponentRemoved(e)
	r.OnComponentRemoved(e)
	r.OnComponentRemoved(e)

	// Only one free slot despite the extra releases.
	assert.Equal(t, e, r.CreateEntity())
	next := r.CreateEntity()
	assert.NotEqual(t, e, next)
	assert.Equal(t, uint32(1), r.ReusedCount())
}

func TestReleaseUntrackedEntityIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.OnComponentRemoved(42)
	assert.Equal(t, Entity(1), r.CreateEntity())
	assert.Equal(t, uint32(0), r.ReusedCount())
}

func TestClearResetsAllState(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		e := r.CreateEntity()
		r.OnComponentAdded(e)
	}
	r.OnComponentRemoved(1)
	r.Clear()

	assert.Equal(t, uint32(0), r.EntityCount())
	assert.Equal(t, uint32(0), r.ReusedCount())
	assert.Equal(t, Entity(1), r.CreateEntity())
}

func TestEntityCountExcludesFreeList(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 10; i++ {
		e := r.CreateEntity()
		r.OnComponentAdded(e)
	}
	for e := Entity(1); e <= 4; e++ {
		r.OnComponentRemoved(e)
	}
	assert.Equal(t, uint32(6), r.EntityCount())
}

func TestConcurrentCreateEntityUnique(t *testing.T) {
	r := NewRegistry()

	const goroutines = 8
	const perGoroutine = 1000

	results := make([][]Entity, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids := make([]Entity, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids = append(ids, r.CreateEntity())
			}
			results[g] = ids
		}(g)
	}
	wg.Wait()

	seen := make(map[Entity]bool, goroutines*perGoroutine)
	for _, ids := range results {
		for _, id := range ids {
			assert.NotEqual(t, InvalidEntity, id)
			assert.False(t, seen[id], "id %d allocated twice", id)
			seen[id] = true
		}
	}
	assert.Equal(t, uint32(goroutines*perGoroutine), r.EntityCount())
}
