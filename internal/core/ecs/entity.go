// Package ecs implements the entity identity machinery and the packed
// sparse-set component container built on top of it.
//
// Entities are plain numeric handles handed out by a Registry; component
// payloads live in per-type Store instances that keep their data densely
// packed and notify the Registry as components come and go. The Registry
// recycles an id once the last component referencing it is removed.
package ecs

// Entity is an opaque numeric identity handle. It carries no data of its
// own; all state hangs off component stores keyed by it.
type Entity uint32

// InvalidEntity is the reserved "none" handle. It is never returned by
// Registry.CreateEntity and never accepted by Store.Create.
const InvalidEntity Entity = 0

// NotFound is the sparse-table sentinel for "entity has no component here".
const NotFound = -1
