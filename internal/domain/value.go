package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a ScriptValue.
type ValueKind int

// Available ValueKind values.
const (
	ValueNil ValueKind = iota
	ValueBool
	ValueInt
	ValueUint
	ValueFloat
	ValueString
	ValueRef
	ValueTable
	ValueOther
)

var valueKindNames = [...]string{
	ValueNil:    "nil",
	ValueBool:   "boolean",
	ValueInt:    "integer",
	ValueUint:   "integer",
	ValueFloat:  "number",
	ValueString: "string",
	ValueRef:    "reference",
	ValueTable:  "table",
	ValueOther:  "other",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}

	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// ScriptValue is a value crossing the boundary between the script layer and
// the engine.
type ScriptValue struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Uint  uint64 // only for unsigned values above math.MaxInt64
	Float float64
	Str   string
	Ref   Reference

	// Table holds flat string-keyed scalars; nested tables are ValueOther.
	Table map[string]ScriptValue

	// TypeName names the script type of a ValueOther (function, thread...).
	TypeName string
}

// Nil is the absent value.
var Nil = ScriptValue{}

// Bool wraps a boolean.
func Bool(b bool) ScriptValue { return ScriptValue{Kind: ValueBool, Bool: b} }

// Int wraps an integer.
func Int(i int64) ScriptValue { return ScriptValue{Kind: ValueInt, Int: i} }

// Uint wraps an unsigned integer, keeping it exact when it does not fit
// an int64.
func Uint(u uint64) ScriptValue {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}

	return ScriptValue{Kind: ValueUint, Uint: u}
}

// Float wraps a number.
func Float(f float64) ScriptValue { return ScriptValue{Kind: ValueFloat, Float: f} }

// String wraps a string.
func String(s string) ScriptValue { return ScriptValue{Kind: ValueString, Str: s} }

// Ref wraps a Reference.
func Ref(r Reference) ScriptValue { return ScriptValue{Kind: ValueRef, Ref: r} }

// Table wraps a flat table.
func Table(t map[string]ScriptValue) ScriptValue { return ScriptValue{Kind: ValueTable, Table: t} }

// Other marks a script value with no engine representation.
func Other(typeName string) ScriptValue { return ScriptValue{Kind: ValueOther, TypeName: typeName} }

// Type returns the script-facing name of the value's type.
func (v ScriptValue) Type() string {
	if v.Kind == ValueOther {
		return v.TypeName
	}

	return v.Kind.String()
}

// IsNil reports whether v is the absent value.
func (v ScriptValue) IsNil() bool { return v.Kind == ValueNil }

// Number returns the numeric value of an Int or Float.
func (v ScriptValue) Number() (float64, bool) {
	switch v.Kind {
	case ValueInt:
		return float64(v.Int), true
	case ValueUint:
		return float64(v.Uint), true
	case ValueFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func (v ScriptValue) String() string {
	switch v.Kind {
	case ValueNil:
		return "nil"
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueUint:
		return strconv.FormatUint(v.Uint, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueRef:
		return v.Ref.String()
	case ValueTable:
		keys := make([]string, 0, len(v.Table))
		for k := range v.Table {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+v.Table[k].String())
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%s>", v.TypeName)
	}
}
