package domain

import (
	"sync/atomic"

	"github.com/mouse-blink/ecslua/internal/adapter"
	m "github.com/mouse-blink/ecslua/internal/model"
)

// Phase is the ownership token for one update phase. It is passed to every
// engine operation and stops granting access once End is called.
type Phase struct {
	Index     int
	DeltaTime float64

	store    adapter.Store
	registry *Registry
	guard    *Guard
	ended    atomic.Bool
}

// NewPhase wraps a store acquired for one phase.
func NewPhase(index int, store adapter.Store, registry *Registry, deltaTime float64) *Phase {
	return &Phase{
		Index:     index,
		DeltaTime: deltaTime,
		store:     store,
		registry:  registry,
		guard:     NewGuard(),
	}
}

// End invalidates the token. References created during the phase fail with
// an Expired error afterwards.
func (p *Phase) End() {
	p.ended.Store(true)
}

// Active reports whether the phase still grants access to the store.
func (p *Phase) Active() bool {
	return !p.ended.Load()
}

// Registry returns the type registry the phase resolves names against.
func (p *Phase) Registry() *Registry {
	return p.registry
}

// Guard returns the phase borrow table.
func (p *Phase) Guard() *Guard {
	return p.guard
}

// Entities returns the live entities, or nil once the phase ended.
func (p *Phase) Entities() []m.Entity {
	if !p.Active() {
		return nil
	}

	return p.store.Entities()
}

// Alive reports whether entity is still live in this phase.
func (p *Phase) Alive(entity m.Entity) bool {
	return p.Active() && p.store.Alive(entity)
}

// Check fails with an Expired error for ref once the phase has ended.
func (p *Phase) Check(ref Reference) error {
	if !p.Active() {
		return expired(ref)
	}

	return nil
}
