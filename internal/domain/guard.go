package domain

import (
	"fmt"
	"reflect"
	"sync"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// RecordKey identifies one record: a component type on an entity.
type RecordKey struct {
	Entity m.Entity
	Type   reflect.Type
}

func (k RecordKey) String() string {
	if k.Type == nil {
		return k.Entity.String()
	}

	return k.Entity.String() + "." + k.Type.Name()
}

type borrowState struct {
	readers int
	writer  bool
}

// Guard is the per-phase borrow table. Any number of shared borrows or a
// single exclusive borrow may exist per record at a time.
//
// Guard only tracks records reached through the engine; the self-assignment
// check in the coercion engine remains the primary protection for writes.
type Guard struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[RecordKey]*borrowState
}

// NewGuard creates an empty borrow table.
func NewGuard() *Guard {
	g := &Guard{held: make(map[RecordKey]*borrowState)}
	g.cond = sync.NewCond(&g.mu)

	return g
}

// Begin starts an operation. Every Borrows must be released.
func (g *Guard) Begin() *Borrows {
	return &Borrows{guard: g, held: make(map[RecordKey]m.AccessMode)}
}

// Held reports the borrows currently recorded for key.
func (g *Guard) Held(key RecordKey) (readers int, writer bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if state, ok := g.held[key]; ok {
		return state.readers, state.writer
	}

	return 0, false
}

func (g *Guard) available(key RecordKey, mode m.AccessMode) bool {
	state, ok := g.held[key]
	if !ok {
		return true
	}

	if mode == m.Exclusive {
		return !state.writer && state.readers == 0
	}

	return !state.writer
}

// Borrows is the set of records held by one operation.
type Borrows struct {
	guard *Guard
	held  map[RecordKey]m.AccessMode
	order []RecordKey
}

// Acquire borrows key in mode, blocking while other operations hold a
// conflicting borrow. A conflict with a borrow held by this same operation
// fails immediately with an Aliasing error instead of deadlocking.
func (b *Borrows) Acquire(key RecordKey, mode m.AccessMode) error {
	if prev, ok := b.held[key]; ok {
		if prev == m.ReadOnly && mode == m.ReadOnly {
			return nil
		}

		return &Error{
			Class:   ClassAliasing,
			Trace:   key.String(),
			Message: fmt.Sprintf("record %s is already borrowed %s by this operation, %s access denied", key, prev, mode),
		}
	}

	g := b.guard

	g.mu.Lock()
	for !g.available(key, mode) {
		g.cond.Wait()
	}

	state, ok := g.held[key]
	if !ok {
		state = &borrowState{}
		g.held[key] = state
	}

	if mode == m.Exclusive {
		state.writer = true
	} else {
		state.readers++
	}
	g.mu.Unlock()

	b.held[key] = mode
	b.order = append(b.order, key)

	return nil
}

// Release drops every borrow of the operation, newest first.
func (b *Borrows) Release() {
	g := b.guard

	g.mu.Lock()
	for i := len(b.order) - 1; i >= 0; i-- {
		key := b.order[i]

		state := g.held[key]
		if b.held[key] == m.Exclusive {
			state.writer = false
		} else {
			state.readers--
		}

		if !state.writer && state.readers == 0 {
			delete(g.held, key)
		}
	}
	g.mu.Unlock()
	g.cond.Broadcast()

	b.order = nil
	b.held = make(map[RecordKey]m.AccessMode)
}
