package domain

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/ecslua/internal/model"
)

func testKey(index uint32) RecordKey {
	return RecordKey{Entity: m.Entity{Index: index}, Type: reflect.TypeFor[m.Transform]()}
}

func TestBorrows_SameOperation(t *testing.T) {
	g := NewGuard()
	b := g.Begin()
	defer b.Release()

	require.NoError(t, b.Acquire(testKey(0), m.ReadOnly))
	require.NoError(t, b.Acquire(testKey(0), m.ReadOnly), "shared borrows may repeat")

	err := b.Acquire(testKey(0), m.Exclusive)
	require.ErrorIs(t, err, ErrAliasing)

	require.NoError(t, b.Acquire(testKey(1), m.Exclusive))

	err = b.Acquire(testKey(1), m.ReadOnly)
	require.ErrorIs(t, err, ErrAliasing)
	assert.Contains(t, err.Error(), "0v0.Transform")
}

func TestBorrows_ReleaseClearsTable(t *testing.T) {
	g := NewGuard()
	b := g.Begin()

	require.NoError(t, b.Acquire(testKey(0), m.ReadOnly))
	require.NoError(t, b.Acquire(testKey(1), m.Exclusive))

	readers, writer := g.Held(testKey(0))
	assert.Equal(t, 1, readers)
	assert.False(t, writer)

	_, writer = g.Held(testKey(1))
	assert.True(t, writer)

	b.Release()

	for _, key := range []RecordKey{testKey(0), testKey(1)} {
		readers, writer := g.Held(key)
		assert.Zero(t, readers)
		assert.False(t, writer)
	}
}

func TestBorrows_SharedAcrossOperations(t *testing.T) {
	g := NewGuard()
	first := g.Begin()
	second := g.Begin()

	require.NoError(t, first.Acquire(testKey(0), m.ReadOnly))
	require.NoError(t, second.Acquire(testKey(0), m.ReadOnly))

	readers, _ := g.Held(testKey(0))
	assert.Equal(t, 2, readers)

	first.Release()
	second.Release()
}

func TestBorrows_ExclusiveWaitsForOtherOperation(t *testing.T) {
	g := NewGuard()
	reader := g.Begin()
	require.NoError(t, reader.Acquire(testKey(0), m.ReadOnly))

	acquired := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		writer := g.Begin()
		defer writer.Release()

		if err := writer.Acquire(testKey(0), m.Exclusive); err != nil {
			t.Errorf("Acquire() error = %v", err)
			return
		}

		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("exclusive borrow granted while a shared borrow is held")
	case <-time.After(50 * time.Millisecond):
	}

	reader.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("exclusive borrow not granted after release")
	}

	wg.Wait()
}
