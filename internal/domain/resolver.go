package domain

import (
	"reflect"
	"strings"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Resolved is the classification of a Reference against the live store.
// It is only valid while the borrows used to produce it are held.
type Resolved struct {
	Ref  Reference
	Kind Kind
	// Component is the vector component selected by a synthetic accessor, or -1.
	Component int
	// Prefix is the deepest valid prefix of Ref.Path.
	Prefix string

	value reflect.Value
}

// HasComponent reports whether a synthetic accessor selected one component.
func (r Resolved) HasComponent() bool {
	return r.Component >= 0
}

// Type returns the native type of the resolved value.
func (r Resolved) Type() reflect.Type {
	return r.value.Type()
}

// resolve borrows the record of ref in mode and walks its path.
func resolve(p *Phase, b *Borrows, ref Reference, mode m.AccessMode) (Resolved, error) {
	if !p.Active() {
		return Resolved{}, expired(ref)
	}

	if ref.Descriptor == nil {
		return Resolved{}, recordMissing(ref, "reference %s has no component type", ref)
	}

	if err := b.Acquire(ref.Key(), mode); err != nil {
		return Resolved{}, err
	}

	root, ok := ref.Descriptor.View(p.store, ref.Record, mode)
	if !ok {
		return Resolved{}, recordMissing(ref, "component %s does not exist on entity %s", ref.Descriptor.Name, ref.Record)
	}

	if !ref.HasPath {
		value := indirect(root)

		return Resolved{Ref: ref, Kind: kindOf(value.Type()), Component: -1, value: value}, nil
	}

	prefix, suffix := ref.Path, ""

	value, err := ref.Descriptor.Address(root, prefix)
	for err != nil {
		dot := strings.LastIndexByte(prefix, '.')
		if dot < 0 {
			return Resolved{}, invalidPath(ref, "", ref.Path)
		}

		suffix = prefix[dot:] + suffix
		prefix = prefix[:dot]

		value, err = ref.Descriptor.Address(root, prefix)
	}

	value = indirect(value)
	kind := kindOf(value.Type())

	if suffix == "" {
		return Resolved{Ref: ref, Kind: kind, Component: -1, Prefix: prefix, value: value}, nil
	}

	if strings.Count(suffix, ".") == 1 {
		if index, ok := componentIndex(kind, suffix[1:]); ok {
			return Resolved{Ref: ref, Kind: kind.Elem(), Component: index, Prefix: prefix, value: value.Field(index)}, nil
		}
	}

	return Resolved{}, invalidPath(ref, prefix, suffix)
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}

	return v
}
