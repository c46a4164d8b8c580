package ecs

import (
	"slices"
	"time"

	"github.com/milk9111/fpsplayground/ecs/component"
)

// World owns entities, their components, and the per-frame clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	delta  time.Duration
	frame  uint64
	closed bool
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity. A closed world returns the zero
// entity.
func (w *World) CreateEntity() Entity {
	if w == nil || w.closed {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e, releasing owned resources,
// and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, id := range w.storeIDs() {
		release(w.stores[id].Remove(e.id()))
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || w.closed {
		return component.ErrWorldClosed
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	store := w.stores[kind.ID()]
	if store == nil {
		store = &SparseSet{}
		w.stores[kind.ID()] = store
	}
	if old := store.Set(e.id(), value); old != nil && old != value {
		release(old)
	}
	return nil
}

func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	store := w.store(kind)
	if store == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := store.Get(e.id())
	return v, v != nil
}

func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	store := w.store(kind)
	return store != nil && w.entities.isAlive(e) && store.Has(e.id())
}

func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	store := w.store(kind)
	if store == nil || !w.entities.isAlive(e) {
		return false
	}
	old := store.Remove(e.id())
	if old == nil {
		return false
	}
	release(old)
	return true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Tick advances the frame counter and records the elapsed time systems
// read during this frame.
func (w *World) Tick(dt time.Duration) {
	if w == nil {
		return
	}
	w.delta = dt
	w.frame++
}

func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) DeltaSeconds() float64 {
	return w.Delta().Seconds()
}

func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Close destroys every entity and rejects further additions. Callbacks
// that outlive the world check Closed and do nothing.
func (w *World) Close() {
	if w == nil || w.closed {
		return
	}
	for _, e := range w.entities.all() {
		w.DestroyEntity(e)
	}
	w.events.flush()
	w.closed = true
}

func (w *World) Closed() bool {
	return w == nil || w.closed
}

func (w *World) store(kind component.Kind) *SparseSet {
	if w == nil || kind == nil {
		return nil
	}
	return w.stores[kind.ID()]
}

func (w *World) storeIDs() []component.ComponentID {
	ids := make([]component.ComponentID, 0, len(w.stores))
	for id := range w.stores {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func release(v any) {
	if r, ok := v.(component.Releaser); ok {
		r.Release()
	}
}
