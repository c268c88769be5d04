// Package adapter contains the infrastructure the engine runs against: the
// entity/component store, scene and script files, and terminal helpers.
package adapter

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Store is the view of a World handed to one update phase. All methods are
// only valid between World.Acquire and Release.
type Store interface {
	// Lookup returns the component of type typ attached to entity. The value
	// is addressable; callers asking for ReadOnly must not mutate it.
	Lookup(entity m.Entity, typ reflect.Type, mode m.AccessMode) (reflect.Value, bool)

	// Entities returns the live entities ordered by index.
	Entities() []m.Entity

	// Alive reports whether entity still names a live entity.
	Alive(entity m.Entity) bool

	// Despawn destroys entity and all its components.
	Despawn(entity m.Entity) bool

	// Components lists the component types attached to entity.
	Components(entity m.Entity) []reflect.Type

	// Release hands the World back. The Store must not be used afterwards.
	Release()
}

type slot struct {
	generation uint32
	alive      bool
}

// World stores components keyed by entity and component type.
type World struct {
	mu         sync.Mutex
	slots      []slot
	free       []uint32
	components map[reflect.Type]map[uint32]reflect.Value
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		components: make(map[reflect.Type]map[uint32]reflect.Value),
	}
}

// Spawn creates an entity carrying the given components.
func (w *World) Spawn(components ...any) m.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	var entity m.Entity

	if n := len(w.free); n > 0 {
		index := w.free[n-1]
		w.free = w.free[:n-1]
		w.slots[index].alive = true
		entity = m.Entity{Index: index, Generation: w.slots[index].generation}
	} else {
		w.slots = append(w.slots, slot{alive: true})
		entity = m.Entity{Index: uint32(len(w.slots) - 1)}
	}

	for _, component := range components {
		w.insert(entity, component)
	}

	return entity
}

// Insert attaches component to entity, replacing any component of the same type.
func (w *World) Insert(entity m.Entity, component any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.alive(entity) {
		return fmt.Errorf("entity %s does not exist", entity)
	}

	w.insert(entity, component)

	return nil
}

func (w *World) insert(entity m.Entity, component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer && !value.IsNil() {
		value = value.Elem()
	}

	stored := reflect.New(value.Type()).Elem()
	stored.Set(value)

	byEntity, ok := w.components[value.Type()]
	if !ok {
		byEntity = make(map[uint32]reflect.Value)
		w.components[value.Type()] = byEntity
	}

	byEntity[entity.Index] = stored
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.entities())
}

// Acquire blocks until the World is free and returns an exclusive Store for
// one phase.
func (w *World) Acquire() Store {
	w.mu.Lock()

	return &phaseStore{world: w}
}

// Snapshot copies every component of every live entity, ordered by entity
// and type name.
func (w *World) Snapshot() []m.RecordDump {
	w.mu.Lock()
	defer w.mu.Unlock()

	var dumps []m.RecordDump

	for _, entity := range w.entities() {
		for _, typ := range w.componentTypes(entity) {
			dumps = append(dumps, m.RecordDump{
				Entity: entity,
				Type:   typ.Name(),
				Value:  w.components[typ][entity.Index].Interface(),
			})
		}
	}

	return dumps
}

func (w *World) alive(entity m.Entity) bool {
	if int(entity.Index) >= len(w.slots) {
		return false
	}

	s := w.slots[entity.Index]

	return s.alive && s.generation == entity.Generation
}

func (w *World) entities() []m.Entity {
	entities := make([]m.Entity, 0, len(w.slots))

	for index, s := range w.slots {
		if s.alive {
			entities = append(entities, m.Entity{Index: uint32(index), Generation: s.generation})
		}
	}

	return entities
}

func (w *World) componentTypes(entity m.Entity) []reflect.Type {
	var types []reflect.Type

	for typ, byEntity := range w.components {
		if _, ok := byEntity[entity.Index]; ok {
			types = append(types, typ)
		}
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})

	return types
}

func (w *World) despawn(entity m.Entity) bool {
	if !w.alive(entity) {
		return false
	}

	for _, byEntity := range w.components {
		delete(byEntity, entity.Index)
	}

	w.slots[entity.Index].alive = false
	w.slots[entity.Index].generation++
	w.free = append(w.free, entity.Index)

	return true
}

// phaseStore is the Store handed out by Acquire. The World mutex is held for
// its whole lifetime.
type phaseStore struct {
	world    *World
	released bool
}

func (s *phaseStore) Lookup(entity m.Entity, typ reflect.Type, _ m.AccessMode) (reflect.Value, bool) {
	if s.released || !s.world.alive(entity) {
		return reflect.Value{}, false
	}

	value, ok := s.world.components[typ][entity.Index]

	return value, ok
}

func (s *phaseStore) Entities() []m.Entity {
	if s.released {
		return nil
	}

	return s.world.entities()
}

func (s *phaseStore) Alive(entity m.Entity) bool {
	return !s.released && s.world.alive(entity)
}

func (s *phaseStore) Despawn(entity m.Entity) bool {
	if s.released {
		return false
	}

	return s.world.despawn(entity)
}

func (s *phaseStore) Components(entity m.Entity) []reflect.Type {
	if s.released || !s.world.alive(entity) {
		return nil
	}

	return s.world.componentTypes(entity)
}

func (s *phaseStore) Release() {
	if s.released {
		return
	}

	s.released = true
	s.world.mu.Unlock()
}
