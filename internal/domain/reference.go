package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Reference addresses a record, and optionally a dotted path inside it. It
// holds no data from the store and is cheap to copy.
type Reference struct {
	Record     m.Entity
	Descriptor *TypeDescriptor
	Path       string
	HasPath    bool
}

// NewReference addresses the whole record of type d on entity.
func NewReference(entity m.Entity, d *TypeDescriptor) Reference {
	return Reference{Record: entity, Descriptor: d}
}

// Index returns a child Reference one key deeper. It never touches the store
// and never fails; invalid paths are reported when the child is resolved.
func Index(base Reference, key string) Reference {
	child := base
	child.HasPath = true

	if base.HasPath {
		child.Path = base.Path + "." + key
	} else {
		child.Path = key
	}

	return child
}

// Key identifies the record a Reference points into.
func (r Reference) Key() RecordKey {
	return RecordKey{Entity: r.Record, Type: r.Descriptor.ID}
}

// Equal reports whether both References address the same path of the same record.
func (r Reference) Equal(other Reference) bool {
	return r.Record == other.Record && r.Descriptor == other.Descriptor &&
		r.HasPath == other.HasPath && r.Path == other.Path
}

// String renders the display trace <record>.<type>.<path>.
func (r Reference) String() string {
	name := "?"
	if r.Descriptor != nil {
		name = r.Descriptor.Name
	}

	if !r.HasPath {
		return r.Record.String() + "." + name
	}

	return r.Record.String() + "." + name + "." + r.Path
}

// ParseTrace turns a display trace back into a Reference. The type name may
// be qualified; the longest registered name wins.
func ParseTrace(registry *Registry, trace string) (Reference, error) {
	head, rest, ok := strings.Cut(trace, ".")
	if !ok {
		return Reference{}, fmt.Errorf("invalid trace %q: expected <entity>.<type>[.<path>]", trace)
	}

	entity, err := m.ParseEntity(head)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid trace %q: %w", trace, err)
	}

	segments := strings.Split(rest, ".")

	for n := len(segments); n > 0; n-- {
		d, found := registry.Lookup(strings.Join(segments[:n], "."))
		if !found {
			continue
		}

		ref := NewReference(entity, d)
		if n < len(segments) {
			ref = Index(ref, strings.Join(segments[n:], "."))
		}

		return ref, nil
	}

	return Reference{}, fmt.Errorf("invalid trace %q: no registered type", trace)
}
