package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mouse-blink/ecslua/internal/adapter"
	m "github.com/mouse-blink/ecslua/internal/model"
)

// TypeDescriptor describes one component type. Descriptors are created by a
// Registry and never change afterwards.
type TypeDescriptor struct {
	// ID identifies the type for aliasing comparisons.
	ID reflect.Type
	// Name is the short display name, e.g. "Transform".
	Name string
	// FullName is the import-path qualified name.
	FullName string
}

// View returns the record of this type attached to entity.
func (d *TypeDescriptor) View(store adapter.Store, entity m.Entity, mode m.AccessMode) (reflect.Value, bool) {
	return store.Lookup(entity, d.ID, mode)
}

// Address walks a dotted path from root. It never descends into a terminal
// kind, so vector component letters are not addressable here.
func (d *TypeDescriptor) Address(root reflect.Value, path string) (reflect.Value, error) {
	current := root

	for _, segment := range strings.Split(path, ".") {
		next, err := addressSegment(current, segment)
		if err != nil {
			return reflect.Value{}, err
		}

		current = next
	}

	return current, nil
}

var errNotAddressable = errors.New("segment is not addressable")

func addressSegment(current reflect.Value, segment string) (reflect.Value, error) {
	if segment == "" {
		return reflect.Value{}, errNotAddressable
	}

	for current.Kind() == reflect.Pointer {
		if current.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil pointer before %q: %w", segment, errNotAddressable)
		}

		current = current.Elem()
	}

	if kindOf(current.Type()).Terminal() {
		return reflect.Value{}, fmt.Errorf("%s is terminal: %w", current.Type(), errNotAddressable)
	}

	switch current.Kind() {
	case reflect.Struct:
		index, ok := fieldIndex(current.Type(), segment)
		if !ok {
			return reflect.Value{}, fmt.Errorf("no field %q in %s: %w", segment, current.Type(), errNotAddressable)
		}

		return current.Field(index), nil
	case reflect.Slice, reflect.Array:
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 || index >= current.Len() {
			return reflect.Value{}, fmt.Errorf("index %q out of range: %w", segment, errNotAddressable)
		}

		return current.Index(index), nil
	default:
		return reflect.Value{}, fmt.Errorf("%s has no fields: %w", current.Type(), errNotAddressable)
	}
}

// fieldIndex finds the exported field named by segment, preferring an
// `ecs:"name"` tag over a case-insensitive match on the Go name.
func fieldIndex(t reflect.Type, segment string) (int, bool) {
	fallback := -1

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag, ok := field.Tag.Lookup("ecs"); ok {
			if tag == segment {
				return i, true
			}

			continue
		}

		if fallback < 0 && strings.EqualFold(field.Name, segment) {
			fallback = i
		}
	}

	return fallback, fallback >= 0
}

// Registry maps type names to descriptors. It is filled at start-up and only
// read afterwards.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*TypeDescriptor
	byType  map[reflect.Type]*TypeDescriptor
	ordered []*TypeDescriptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*TypeDescriptor),
		byType: make(map[reflect.Type]*TypeDescriptor),
	}
}

// NewDefaultRegistry creates a Registry holding the built-in components.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	for _, component := range m.BuiltinComponents() {
		if _, err := r.Register(component); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds the type of sample. Short names must be unique.
func (r *Registry) Register(sample any) (*TypeDescriptor, error) {
	t := reflect.TypeOf(sample)
	if t == nil || t.Name() == "" {
		return nil, fmt.Errorf("cannot register unnamed type %v", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.byType[t]; ok {
		return d, nil
	}

	d := &TypeDescriptor{
		ID:       t,
		Name:     t.Name(),
		FullName: t.PkgPath() + "." + t.Name(),
	}

	for _, name := range []string{d.Name, d.FullName, t.String()} {
		if other, ok := r.byName[name]; ok && other.ID != t {
			return nil, fmt.Errorf("type name %q already registered for %s", name, other.FullName)
		}
	}

	r.byName[d.Name] = d
	r.byName[d.FullName] = d
	r.byName[t.String()] = d
	r.byType[t] = d
	r.ordered = append(r.ordered, d)

	return d, nil
}

// Lookup finds a descriptor by short, package-qualified or full name.
func (r *Registry) Lookup(name string) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[name]

	return d, ok
}

// ForType finds the descriptor of t.
func (r *Registry) ForType(t reflect.Type) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byType[t]

	return d, ok
}

// Descriptors returns every registered descriptor sorted by name.
func (r *Registry) Descriptors() []*TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*TypeDescriptor, len(r.ordered))
	copy(out, r.ordered)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// New returns a pointer to a fresh value of the type, with defaults applied
// when the type implements model.Defaulter.
func (d *TypeDescriptor) New() reflect.Value {
	v := reflect.New(d.ID)
	if defaulter, ok := v.Interface().(m.Defaulter); ok {
		defaulter.SetDefaults()
	}

	return v
}

// NewComponent returns a fresh value for the component called name.
func (r *Registry) NewComponent(name string) (reflect.Value, bool) {
	d, ok := r.Lookup(name)
	if !ok {
		return reflect.Value{}, false
	}

	return d.New(), true
}

// Describe lists the kind and addressable fields of d.
func Describe(d *TypeDescriptor) m.TypeInfo {
	info := m.TypeInfo{Name: d.Name, FullName: d.FullName, Kind: kindOf(d.ID).String()}

	if d.ID.Kind() != reflect.Struct || kindOf(d.ID).Terminal() {
		return info
	}

	for i := 0; i < d.ID.NumField(); i++ {
		field := d.ID.Field(i)
		if !field.IsExported() {
			continue
		}

		name := strings.ToLower(field.Name[:1]) + field.Name[1:]
		if tag, ok := field.Tag.Lookup("ecs"); ok {
			name = tag
		}

		kind := kindOf(field.Type).String()
		if !kindOf(field.Type).Terminal() {
			kind = field.Type.String()
		}

		info.Fields = append(info.Fields, name+" "+kind)
	}

	return info
}
