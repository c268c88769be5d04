package domain

import (
	"math"
	"reflect"
	"strconv"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Kind classifies a resolved value. Every kind except KindStructural is
// terminal and has exactly one coercion rule in the terminals table.
type Kind int

// Available Kind values.
const (
	KindStructural Kind = iota
	KindBool
	KindF32
	KindF64
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindString
	KindVec2
	KindIVec2
	KindUVec2
	KindVec3
	KindIVec3
	KindUVec3
	KindVec4
	KindIVec4
	KindUVec4
	KindQuat
)

// componentLetters maps synthetic accessors to component indices.
const componentLetters = "xyzw"

// scalarRule converts between a native scalar and a ScriptValue.
type scalarRule struct {
	read  func(reflect.Value) ScriptValue
	write func(reflect.Value, ScriptValue) bool
}

// terminal is one row of the terminal kind table. Scalars set rule; vectors
// set vector, components and elem.
type terminal struct {
	name       string
	rule       *scalarRule
	vector     reflect.Type
	components int
	elem       Kind
}

var (
	floatRule = &scalarRule{read: readFloat, write: writeFloat64}
	f32Rule   = &scalarRule{read: readFloat, write: writeFloat32}
	intRule   = &scalarRule{read: readSigned, write: writeSigned}
	uintRule  = &scalarRule{read: readUnsigned, write: writeUnsigned}
	strRule   = &scalarRule{read: readString, write: writeString}
	boolRule  = &scalarRule{read: readBool, write: writeBool}
)

// terminals is the single table consulted by the resolver (classification and
// component accessors), the coercion engine (rules) and display (names).
var terminals = [...]terminal{
	KindStructural: {name: "struct"},
	KindBool:       {name: "bool", rule: boolRule},
	KindF32:        {name: "f32", rule: f32Rule},
	KindF64:        {name: "f64", rule: floatRule},
	KindI8:         {name: "i8", rule: intRule},
	KindI16:        {name: "i16", rule: intRule},
	KindI32:        {name: "i32", rule: intRule},
	KindI64:        {name: "i64", rule: intRule},
	KindU8:         {name: "u8", rule: uintRule},
	KindU16:        {name: "u16", rule: uintRule},
	KindU32:        {name: "u32", rule: uintRule},
	KindU64:        {name: "u64", rule: uintRule},
	KindString:     {name: "string", rule: strRule},
	KindVec2:       {name: "Vec2", vector: reflect.TypeFor[m.Vec2](), components: 2, elem: KindF32},
	KindIVec2:      {name: "IVec2", vector: reflect.TypeFor[m.IVec2](), components: 2, elem: KindI32},
	KindUVec2:      {name: "UVec2", vector: reflect.TypeFor[m.UVec2](), components: 2, elem: KindU32},
	KindVec3:       {name: "Vec3", vector: reflect.TypeFor[m.Vec3](), components: 3, elem: KindF32},
	KindIVec3:      {name: "IVec3", vector: reflect.TypeFor[m.IVec3](), components: 3, elem: KindI32},
	KindUVec3:      {name: "UVec3", vector: reflect.TypeFor[m.UVec3](), components: 3, elem: KindU32},
	KindVec4:       {name: "Vec4", vector: reflect.TypeFor[m.Vec4](), components: 4, elem: KindF32},
	KindIVec4:      {name: "IVec4", vector: reflect.TypeFor[m.IVec4](), components: 4, elem: KindI32},
	KindUVec4:      {name: "UVec4", vector: reflect.TypeFor[m.UVec4](), components: 4, elem: KindU32},
	KindQuat:       {name: "Quat", vector: reflect.TypeFor[m.Quat](), components: 4, elem: KindF32},
}

var vectorKinds = func() map[reflect.Type]Kind {
	kinds := make(map[reflect.Type]Kind)

	for k, t := range terminals {
		if t.vector != nil {
			kinds[t.vector] = Kind(k)
		}
	}

	return kinds
}()

var scalarKinds = map[reflect.Kind]Kind{
	reflect.Bool:    KindBool,
	reflect.Float32: KindF32,
	reflect.Float64: KindF64,
	reflect.Int8:    KindI8,
	reflect.Int16:   KindI16,
	reflect.Int32:   KindI32,
	reflect.Int64:   KindI64,
	reflect.Int:     KindI64,
	reflect.Uint8:   KindU8,
	reflect.Uint16:  KindU16,
	reflect.Uint32:  KindU32,
	reflect.Uint64:  KindU64,
	reflect.Uint:    KindU64,
	reflect.String:  KindString,
}

// kindOf classifies a native type.
func kindOf(t reflect.Type) Kind {
	if k, ok := vectorKinds[t]; ok {
		return k
	}

	if k, ok := scalarKinds[t.Kind()]; ok {
		return k
	}

	return KindStructural
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(terminals) {
		return terminals[k].name
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Terminal reports whether k has a direct script representation.
func (k Kind) Terminal() bool { return k != KindStructural }

// Vector reports whether k is a fixed-size vector or point kind.
func (k Kind) Vector() bool { return terminals[k].vector != nil }

// Components returns the component count of a vector kind, 0 otherwise.
func (k Kind) Components() int { return terminals[k].components }

// Elem returns the component kind of a vector kind.
func (k Kind) Elem() Kind { return terminals[k].elem }

// componentIndex maps a synthetic accessor such as "y" to its component
// index for kind k.
func componentIndex(k Kind, segment string) (int, bool) {
	if !k.Vector() || len(segment) != 1 {
		return 0, false
	}

	for i := 0; i < k.Components(); i++ {
		if segment[0] == componentLetters[i] {
			return i, true
		}
	}

	return 0, false
}

func readFloat(v reflect.Value) ScriptValue { return Float(v.Float()) }

func readSigned(v reflect.Value) ScriptValue { return Int(v.Int()) }

func readUnsigned(v reflect.Value) ScriptValue { return Uint(v.Uint()) }

func readString(v reflect.Value) ScriptValue { return String(v.String()) }

func readBool(v reflect.Value) ScriptValue { return Bool(v.Bool()) }

func writeFloat32(dst reflect.Value, v ScriptValue) bool {
	n, ok := v.Number()
	if !ok {
		return false
	}

	if !math.IsInf(n, 0) && !math.IsNaN(n) && math.Abs(n) > math.MaxFloat32 {
		return false
	}

	dst.SetFloat(float64(float32(n)))

	return true
}

func writeFloat64(dst reflect.Value, v ScriptValue) bool {
	n, ok := v.Number()
	if !ok {
		return false
	}

	dst.SetFloat(n)

	return true
}

func writeSigned(dst reflect.Value, v ScriptValue) bool {
	var i int64

	switch v.Kind {
	case ValueInt:
		i = v.Int
	case ValueUint:
		return false
	case ValueFloat:
		if v.Float != math.Trunc(v.Float) || v.Float < math.MinInt64 || v.Float >= math.MaxInt64 {
			return false
		}

		i = int64(v.Float)
	default:
		return false
	}

	if dst.OverflowInt(i) {
		return false
	}

	dst.SetInt(i)

	return true
}

func writeUnsigned(dst reflect.Value, v ScriptValue) bool {
	var u uint64

	switch v.Kind {
	case ValueInt:
		if v.Int < 0 {
			return false
		}

		u = uint64(v.Int)
	case ValueUint:
		u = v.Uint
	case ValueFloat:
		if v.Float != math.Trunc(v.Float) || v.Float < 0 || v.Float >= math.MaxUint64 {
			return false
		}

		u = uint64(v.Float)
	default:
		return false
	}

	if dst.OverflowUint(u) {
		return false
	}

	dst.SetUint(u)

	return true
}

func writeString(dst reflect.Value, v ScriptValue) bool {
	if v.Kind != ValueString {
		return false
	}

	dst.SetString(v.Str)

	return true
}

func writeBool(dst reflect.Value, v ScriptValue) bool {
	if v.Kind != ValueBool {
		return false
	}

	dst.SetBool(v.Bool)

	return true
}
