package domain

import (
	"errors"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Component returns a Reference to the component called name on entity. The
// boolean is false when the name is unknown or the entity lacks the component.
func Component(p *Phase, entity m.Entity, name string) (Reference, bool, error) {
	d, ok := p.Registry().Lookup(name)
	if !ok {
		return Reference{}, false, nil
	}

	ref := NewReference(entity, d)
	if !p.Active() {
		return Reference{}, false, expired(ref)
	}

	if _, present := d.View(p.store, entity, m.ReadOnly); !present {
		return Reference{}, false, nil
	}

	return ref, true, nil
}

// Get reads the value ref points at. Terminal scalars come back as native
// script values; everything else comes back as a Reference. A missing record
// reads as Nil.
func Get(p *Phase, ref Reference) (ScriptValue, error) {
	borrows := p.Guard().Begin()
	defer borrows.Release()

	resolved, err := resolve(p, borrows, ref, m.ReadOnly)
	if errors.Is(err, ErrRecordMissing) {
		return Nil, nil
	}

	if err != nil {
		return Nil, err
	}

	return read(resolved), nil
}

// Classify resolves ref and returns its classification without reading it.
func Classify(p *Phase, ref Reference) (Resolved, error) {
	borrows := p.Guard().Begin()
	defer borrows.Release()

	resolved, err := resolve(p, borrows, ref, m.ReadOnly)
	if err != nil {
		return Resolved{}, err
	}

	return resolved, nil
}

// Clone returns a script-native copy of the value ref points at. Structural
// values cannot be copied into the script layer and come back as ref itself.
func Clone(p *Phase, ref Reference) (ScriptValue, error) {
	borrows := p.Guard().Begin()
	defer borrows.Release()

	resolved, err := resolve(p, borrows, ref, m.ReadOnly)
	if err != nil {
		return Nil, err
	}

	return cloneValue(resolved), nil
}

// Set writes in into the field ref points at. When in is a Reference, the
// destination is borrowed exclusively before the source is borrowed shared.
func Set(p *Phase, ref Reference, in ScriptValue) error {
	if in.Kind == ValueRef && in.Ref.Record == ref.Record &&
		in.Ref.Descriptor != nil && ref.Descriptor != nil && in.Ref.Descriptor.ID == ref.Descriptor.ID {
		return selfAssignment(ref)
	}

	borrows := p.Guard().Begin()
	defer borrows.Release()

	dst, err := resolve(p, borrows, ref, m.Exclusive)
	if err != nil {
		return err
	}

	if in.Kind != ValueRef {
		return write(dst, in)
	}

	src, err := resolve(p, borrows, in.Ref, m.ReadOnly)
	if err != nil {
		return err
	}

	return writeFrom(dst, src)
}

// Despawn destroys entity. It reports false when the entity was already gone.
func Despawn(p *Phase, entity m.Entity) bool {
	if !p.Active() {
		return false
	}

	return p.store.Despawn(entity)
}

// Components names the registered components attached to entity. Types the
// registry does not know are left out.
func Components(p *Phase, entity m.Entity) []string {
	if !p.Active() {
		return nil
	}

	var names []string

	for _, typ := range p.store.Components(entity) {
		if d, ok := p.Registry().ForType(typ); ok {
			names = append(names, d.Name)
		}
	}

	return names
}
