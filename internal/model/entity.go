// Package model defines the plain data types shared by the store, the
// reflection engine and the script host.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity is a generation-checked handle naming one live entity in a World.
// A record is the pair (Entity, component type).
type Entity struct {
	Index      uint32
	Generation uint32
}

// String renders the entity as <index>v<generation>.
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index, e.Generation)
}

// ParseEntity parses the <index>v<generation> form produced by String.
func ParseEntity(s string) (Entity, error) {
	idx, gen, ok := strings.Cut(s, "v")
	if !ok {
		return Entity{}, fmt.Errorf("invalid entity %q: expected <index>v<generation>", s)
	}

	index, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return Entity{}, fmt.Errorf("invalid entity index %q: %w", idx, err)
	}

	generation, err := strconv.ParseUint(gen, 10, 32)
	if err != nil {
		return Entity{}, fmt.Errorf("invalid entity generation %q: %w", gen, err)
	}

	return Entity{Index: uint32(index), Generation: uint32(generation)}, nil
}

// AccessMode is the kind of view requested on a record.
type AccessMode int

// Available AccessMode values.
const (
	ReadOnly AccessMode = iota
	Exclusive
)

func (a AccessMode) String() string {
	if a == Exclusive {
		return "exclusive"
	}

	return "read-only"
}
