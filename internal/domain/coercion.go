package domain

import (
	"reflect"

	"github.com/mitchellh/copystructure"
)

// read converts a resolved value to its script representation. Vectors
// without a selected component and structural values stay references.
func read(r Resolved) ScriptValue {
	if !r.Kind.Terminal() || r.Kind.Vector() {
		return Ref(r.Ref)
	}

	return terminals[r.Kind].rule.read(r.value)
}

// cloneValue is read, except that whole vectors are copied into a table of
// components.
func cloneValue(r Resolved) ScriptValue {
	if !r.Kind.Vector() {
		return read(r)
	}

	elem := terminals[r.Kind.Elem()].rule
	table := make(map[string]ScriptValue, r.Kind.Components())

	for i := 0; i < r.Kind.Components(); i++ {
		table[componentLetters[i:i+1]] = elem.read(r.value.Field(i))
	}

	return Table(table)
}

// write stores a literal script value into dst. Reference sources are handled
// by writeFrom.
func write(dst Resolved, in ScriptValue) error {
	switch {
	case in.Kind == ValueOther:
		return unsupported(dst.Ref, in.Type())
	case dst.Kind.Vector():
		if in.Kind != ValueTable {
			return typeMismatch(dst.Ref, dst.Kind.String(), describe(in))
		}

		return writeTable(dst, in)
	case !dst.Kind.Terminal():
		return typeMismatch(dst.Ref, "reference to "+dst.value.Type().String(), describe(in))
	}

	if !terminals[dst.Kind].rule.write(dst.value, in) {
		return typeMismatch(dst.Ref, dst.Kind.String(), describe(in))
	}

	return nil
}

// writeTable assigns components of a vector from a table keyed by component
// letters. Missing letters keep their value; the write is all-or-nothing.
func writeTable(dst Resolved, in ScriptValue) error {
	elem := terminals[dst.Kind.Elem()].rule
	staged := reflect.New(dst.value.Type()).Elem()
	staged.Set(dst.value)

	for key, value := range in.Table {
		index, ok := componentIndex(dst.Kind, key)
		if !ok {
			return typeMismatch(dst.Ref, dst.Kind.String(), "table with key "+key)
		}

		if !elem.write(staged.Field(index), value) {
			return typeMismatch(dst.Ref, dst.Kind.Elem().String()+" component "+key, describe(value))
		}
	}

	dst.value.Set(staged)

	return nil
}

// writeFrom stores the current value of src into dst. Scalars are converted
// through their script representation; composite values are deep-copied so
// the destination never aliases the source.
func writeFrom(dst, src Resolved) error {
	if src.Kind.Terminal() && !src.Kind.Vector() {
		return write(dst, read(src))
	}

	if dst.Kind.Terminal() && !dst.Kind.Vector() {
		return typeMismatch(dst.Ref, dst.Kind.String(), "reference to "+src.value.Type().String())
	}

	if !src.value.Type().AssignableTo(dst.value.Type()) {
		return typeMismatch(dst.Ref, dst.value.Type().String(), src.value.Type().String())
	}

	copied, err := copystructure.Copy(src.value.Interface())
	if err != nil {
		return &Error{Class: ClassTypeMismatch, Trace: dst.Ref.String(), Message: "copying " + src.Ref.String() + ": " + err.Error()}
	}

	if copied == nil {
		dst.value.Set(reflect.Zero(dst.value.Type()))

		return nil
	}

	dst.value.Set(reflect.ValueOf(copied))

	return nil
}

func describe(v ScriptValue) string {
	switch v.Kind {
	case ValueNil, ValueTable, ValueRef, ValueOther:
		return v.Type()
	default:
		return v.Type() + " " + v.String()
	}
}

// MaxExactInteger is the largest integer magnitude a script number holds
// without rounding.
const MaxExactInteger = 1 << 53

// ExactNumber converts a numeric value read from ref into a script number.
// Integers beyond MaxExactInteger raise TypeMismatch instead of rounding.
func ExactNumber(ref Reference, v ScriptValue) (float64, error) {
	switch v.Kind {
	case ValueInt:
		if v.Int > MaxExactInteger || v.Int < -MaxExactInteger {
			return 0, inexact(ref, v)
		}
	case ValueUint:
		return 0, inexact(ref, v)
	}

	n, ok := v.Number()
	if !ok {
		return 0, typeMismatch(ref, "number", describe(v))
	}

	return n, nil
}
