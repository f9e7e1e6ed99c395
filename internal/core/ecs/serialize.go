package ecs

import (
	"github.com/sparsekit/sparsekit/internal/core/archive"
	"github.com/sparsekit/sparsekit/pkg/jobs"
)

// Serializable is implemented by component payloads that stream themselves
// through an archive. Implementations must read and write in the exact same
// operator order.
type Serializable interface {
	Serialize(a *archive.Archive, ser *Serializer)
}

// Serializer is the shared context for one save or load pass. During a load
// it owns the external-id remap table, so independently serialized stores
// that reference the same original entity converge on one fresh identity.
// It also carries a jobs context for work scheduled during the load; Close
// waits for that work and must be called exactly once before the serializer
// is discarded.
type Serializer struct {
	// Ctx receives background work scheduled while loading, typically
	// post-load fixups of freshly deserialized components.
	Ctx *jobs.Context

	registry   *Registry
	remap      map[uint64]Entity
	allowRemap bool
}

// NewSerializer returns a remapping serializer that allocates fresh ids from
// registry for every distinct external id it sees.
func NewSerializer(registry *Registry) *Serializer {
	return &Serializer{
		Ctx:        jobs.NewContext(0),
		registry:   registry,
		remap:      make(map[uint64]Entity),
		allowRemap: true,
	}
}

// DisableRemap makes loads adopt stored ids verbatim instead of allocating
// fresh ones. Only safe when loading into the identical id namespace the
// data was saved from, e.g. resuming a previously saved process state.
func (ser *Serializer) DisableRemap() {
	ser.allowRemap = false
}

// Close waits for all work scheduled on Ctx during the load.
func (ser *Serializer) Close() {
	ser.Ctx.Wait()
}

// SerializeEntity streams a single entity handle. On write the raw handle
// goes out as 64 bits. On read the stored value is either remapped (first
// sight allocates a fresh id and records the mapping, later sights reuse
// it) or, with remapping disabled, cast back directly.
func SerializeEntity(a *archive.Archive, entity *Entity, ser *Serializer) {
	if a.IsReadMode() {
		stored := a.ReadUint64()
		if !ser.allowRemap {
			*entity = Entity(stored)
			return
		}
		if mapped, ok := ser.remap[stored]; ok {
			*entity = mapped
			return
		}
		fresh := ser.registry.CreateEntity()
		ser.remap[stored] = fresh
		*entity = fresh
		return
	}
	a.WriteUint64(uint64(*entity))
}

// Serialize streams a whole store: count, then payloads in dense order,
// then the owning entity handles in the same order. Loading clears the
// store first, rebuilds the dense arrays, and re-derives the sparse table
// in a second pass once the largest entity is known.
func Serialize[T any, P interface {
	*T
	Serializable
}](s *Store[T], a *archive.Archive, ser *Serializer) {
	if a.IsReadMode() {
		s.Clear()
		count := int(a.ReadUint64())

		var zero T
		for i := 0; i < count; i++ {
			s.components = append(s.components, zero)
		}
		for i := 0; i < count; i++ {
			P(&s.components[i]).Serialize(a, ser)
		}

		maxEntity := InvalidEntity
		for i := 0; i < count; i++ {
			var entity Entity
			SerializeEntity(a, &entity, ser)
			s.entities = append(s.entities, entity)
			if entity > maxEntity {
				maxEntity = entity
			}
			s.registry.OnComponentAdded(entity)
		}

		if int(maxEntity)+1 > len(s.sparse) {
			s.growSparse(int(maxEntity) + sparseGrowthPad)
		}
		for i, entity := range s.entities {
			s.sparse[entity] = i
		}
		return
	}

	a.WriteUint64(uint64(len(s.components)))
	for i := range s.components {
		P(&s.components[i]).Serialize(a, ser)
	}
	for i := range s.entities {
		SerializeEntity(a, &s.entities[i], ser)
	}
}
