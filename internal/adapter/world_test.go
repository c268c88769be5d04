package adapter

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/ecslua/internal/model"
)

func TestWorld_SpawnAndLookup(t *testing.T) {
	w := NewWorld()

	a := w.Spawn(m.Name{Value: "a"}, &m.Health{Current: 3, Max: 5})
	b := w.Spawn(m.Name{Value: "b"})

	assert.Equal(t, m.Entity{Index: 0}, a)
	assert.Equal(t, m.Entity{Index: 1}, b)
	assert.Equal(t, 2, w.Len())

	store := w.Acquire()
	defer store.Release()

	value, ok := store.Lookup(a, reflect.TypeFor[m.Health](), m.ReadOnly)
	require.True(t, ok)
	assert.True(t, value.CanSet(), "stored components are addressable")
	assert.Equal(t, m.Health{Current: 3, Max: 5}, value.Interface())

	_, ok = store.Lookup(b, reflect.TypeFor[m.Health](), m.ReadOnly)
	assert.False(t, ok)

	assert.Equal(t, []m.Entity{a, b}, store.Entities())
	assert.Equal(t, []reflect.Type{reflect.TypeFor[m.Health](), reflect.TypeFor[m.Name]()}, store.Components(a))
}

func TestWorld_DespawnBumpsGeneration(t *testing.T) {
	w := NewWorld()
	first := w.Spawn(m.Name{Value: "first"})

	store := w.Acquire()
	require.True(t, store.Despawn(first))
	assert.False(t, store.Despawn(first))
	assert.False(t, store.Alive(first))
	assert.Nil(t, store.Components(first))
	store.Release()

	second := w.Spawn(m.Name{Value: "second"})
	assert.Equal(t, m.Entity{Index: 0, Generation: 1}, second, "index is reused with a new generation")

	store = w.Acquire()
	defer store.Release()

	_, ok := store.Lookup(first, reflect.TypeFor[m.Name](), m.ReadOnly)
	assert.False(t, ok, "stale handles do not see the new entity")

	value, ok := store.Lookup(second, reflect.TypeFor[m.Name](), m.ReadOnly)
	require.True(t, ok)
	assert.Equal(t, m.Name{Value: "second"}, value.Interface())
}

func TestWorld_Insert(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	require.NoError(t, w.Insert(e, m.Score(3)))
	require.NoError(t, w.Insert(e, m.Score(4)), "insert replaces")
	require.Error(t, w.Insert(m.Entity{Index: 9}, m.Score(1)))

	dumps := w.Snapshot()
	require.Len(t, dumps, 1)
	assert.Equal(t, "Score", dumps[0].Type)
	assert.Equal(t, m.Score(4), dumps[0].Value)
}

func TestWorld_ReleasedStoreIsInert(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(m.Name{Value: "x"})

	store := w.Acquire()
	store.Release()
	store.Release()

	_, ok := store.Lookup(e, reflect.TypeFor[m.Name](), m.Exclusive)
	assert.False(t, ok)
	assert.Nil(t, store.Entities())
	assert.False(t, store.Alive(e))
	assert.False(t, store.Despawn(e))

	assert.Equal(t, 1, w.Len(), "the world is usable after release")
}

func TestWorld_AcquireIsExclusive(t *testing.T) {
	w := NewWorld()
	store := w.Acquire()

	acquired := make(chan Store)

	go func() {
		acquired <- w.Acquire()
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire returned while the first store is held")
	default:
	}

	store.Release()

	second := <-acquired
	second.Release()
}
