package domain

import (
	"testing"

	"github.com/mouse-blink/ecslua/internal/adapter"
	m "github.com/mouse-blink/ecslua/internal/model"
)

// newTestPhase acquires world for one phase and ends it when the test
// finishes.
func newTestPhase(t *testing.T, world *adapter.World) *Phase {
	t.Helper()

	store := world.Acquire()
	phase := NewPhase(0, store, NewDefaultRegistry(), 0.5)

	t.Cleanup(func() {
		phase.End()
		store.Release()
	})

	return phase
}

func mustComponent(t *testing.T, p *Phase, entity m.Entity, name string) Reference {
	t.Helper()

	ref, ok, err := Component(p, entity, name)
	if err != nil {
		t.Fatalf("Component(%s, %s) error = %v", entity, name, err)
	}

	if !ok {
		t.Fatalf("Component(%s, %s) not found", entity, name)
	}

	return ref
}

// componentValue copies the current value of a component while p is active.
func componentValue(t *testing.T, p *Phase, entity m.Entity, name string) any {
	t.Helper()

	resolved, err := Classify(p, mustComponent(t, p, entity, name))
	if err != nil {
		t.Fatalf("Classify(%s, %s) error = %v", entity, name, err)
	}

	return resolved.value.Interface()
}

// at indexes ref along a dotted path.
func at(ref Reference, path string) Reference {
	return Index(ref, path)
}

func transformAt(x, y, z float32) m.Transform {
	tf := m.DefaultTransform()
	tf.Translation = m.Vec3{X: x, Y: y, Z: z}

	return tf
}
