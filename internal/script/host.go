// Package script embeds a Lua interpreter and exposes the path-addressing
// engine to it through Entity and Reference userdata.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/mouse-blink/ecslua/internal/domain"
	m "github.com/mouse-blink/ecslua/internal/model"
)

const (
	entityTypeName    = "ecslua.entity"
	referenceTypeName = "ecslua.reference"

	globalEntity    = "entity"
	globalDeltaTime = "deltaTime"
)

// Option customises a Host.
type Option func(*Host)

// WithOutput redirects the script's print function.
func WithOutput(w io.Writer) Option {
	return func(h *Host) {
		h.output = w
	}
}

// WithLogger sets the logger used for host diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithPrefix prepends prefix to every line the script prints.
func WithPrefix(prefix string) Option {
	return func(h *Host) {
		h.prefix = prefix
	}
}

// Host owns one Lua state. It is not safe for concurrent use; each scene
// gets its own Host.
type Host struct {
	state  *lua.LState
	chunk  *lua.LFunction
	name   string
	output io.Writer
	prefix string
	logger *slog.Logger

	// raised is the last engine error turned into a Lua error.
	raised error
}

var _ domain.ScriptHost = (*Host)(nil)

// NewHost creates a Lua state with the base, table, string and math
// libraries and the engine bindings installed.
func NewHost(options ...Option) *Host {
	h := &Host{
		output: io.Discard,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(h)
	}

	h.state = lua.NewState(lua.Options{SkipOpenLibs: true})
	h.openLibs()
	h.registerEntityType()
	h.registerReferenceType()
	h.state.SetGlobal("print", h.state.NewFunction(h.print))

	return h
}

func (h *Host) openLibs() {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		h.state.Push(h.state.NewFunction(lib.open))
		h.state.Push(lua.LString(lib.name))
		h.state.Call(1, 0)
	}
}

// Load compiles source. The chunk replaces any previously loaded one.
func (h *Host) Load(name string, source []byte) error {
	chunk, err := h.state.Load(bytes.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", name, err)
	}

	h.chunk = chunk
	h.name = name

	return nil
}

// BeginPhase publishes deltaTime.
func (h *Host) BeginPhase(phase *domain.Phase) {
	h.state.SetGlobal(globalDeltaTime, lua.LNumber(phase.DeltaTime))
}

// EndPhase clears deltaTime.
func (h *Host) EndPhase(*domain.Phase) {
	h.state.SetGlobal(globalDeltaTime, lua.LNil)
}

// RunRecord runs the loaded chunk with the global entity bound to entity.
// The binding is cleared however the chunk exits.
func (h *Host) RunRecord(phase *domain.Phase, entity m.Entity) error {
	if h.chunk == nil {
		return errors.New("no script loaded")
	}

	h.raised = nil
	h.state.SetGlobal(globalEntity, h.newEntity(phase, entity))
	defer h.state.SetGlobal(globalEntity, lua.LNil)

	err := h.state.CallByParam(lua.P{Fn: h.chunk, NRet: 0, Protect: true})
	if err == nil {
		return nil
	}

	return h.scriptError(err)
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.Close()
}

// scriptError keeps the engine error reachable through errors.Is when it is
// what unwound the chunk.
func (h *Host) scriptError(err error) error {
	message := err.Error()

	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		message = apiErr.Object.String()
	}

	if h.raised != nil && strings.Contains(message, h.raised.Error()) {
		return &Error{Script: h.name, Message: message, Cause: h.raised}
	}

	h.logger.Debug("script raised an error", "script", h.name, "error", message)

	return &Error{Script: h.name, Message: message}
}

func (h *Host) raise(L *lua.LState, err error) {
	h.raised = err

	var engineErr *domain.Error
	if errors.As(err, &engineErr) {
		h.logger.Debug("engine error", "script", h.name, "class", engineErr.Class, "trace", engineErr.Trace)
	}

	L.RaiseError("%s", err.Error())
}

func (h *Host) print(L *lua.LState) int {
	top := L.GetTop()

	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}

	fmt.Fprintln(h.output, h.prefix+strings.Join(parts, "\t"))

	return 0
}

// Error is a failed script invocation.
type Error struct {
	Script  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

type entityBinding struct {
	phase  *domain.Phase
	entity m.Entity
}

func (h *Host) registerEntityType() {
	L := h.state
	mt := L.NewTypeMetatable(entityTypeName)

	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get":        h.entityGet,
		"despawn":    h.entityDespawn,
		"id":         h.entityID,
		"components": h.entityComponents,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		b := checkEntity(L, 1)
		L.Push(lua.LString("Entity(" + b.entity.String() + ")"))

		return 1
	}))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkEntity(L, 1).entity == checkEntity(L, 2).entity))
		return 1
	}))
}

func (h *Host) newEntity(phase *domain.Phase, entity m.Entity) *lua.LUserData {
	ud := h.state.NewUserData()
	ud.Value = &entityBinding{phase: phase, entity: entity}
	h.state.SetMetatable(ud, h.state.GetTypeMetatable(entityTypeName))

	return ud
}

func checkEntity(L *lua.LState, n int) *entityBinding {
	ud := L.CheckUserData(n)
	if b, ok := ud.Value.(*entityBinding); ok {
		return b
	}

	L.ArgError(n, "entity expected")

	return nil
}

func (h *Host) entityGet(L *lua.LState) int {
	b := checkEntity(L, 1)
	name := L.CheckString(2)

	ref, ok, err := domain.Component(b.phase, b.entity, name)
	if err != nil {
		h.raise(L, err)
		return 0
	}

	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	L.Push(h.newReference(b.phase, ref))

	return 1
}

func (h *Host) entityDespawn(L *lua.LState) int {
	b := checkEntity(L, 1)
	L.Push(lua.LBool(domain.Despawn(b.phase, b.entity)))

	return 1
}

func (h *Host) entityComponents(L *lua.LState) int {
	b := checkEntity(L, 1)

	names := L.NewTable()
	for _, name := range domain.Components(b.phase, b.entity) {
		names.Append(lua.LString(name))
	}

	L.Push(names)

	return 1
}

func (h *Host) entityID(L *lua.LState) int {
	L.Push(lua.LString(checkEntity(L, 1).entity.String()))
	return 1
}

type referenceBinding struct {
	phase *domain.Phase
	ref   domain.Reference
}

func (h *Host) registerReferenceType() {
	L := h.state
	mt := L.NewTypeMetatable(referenceTypeName)

	methods := map[string]*lua.LFunction{
		"clone": L.NewFunction(h.referenceClone),
		"field": L.NewFunction(h.referenceField),
	}

	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		b := checkReference(L, 1)
		key := checkKey(L, 2)

		if method, ok := methods[key]; ok {
			L.Push(method)
			return 1
		}

		ref := domain.Index(b.ref, key)

		value, err := domain.Get(b.phase, ref)
		if err != nil {
			h.raise(L, err)
			return 0
		}

		lv, err := h.toLua(b.phase, ref, value)
		if err != nil {
			h.raise(L, err)
			return 0
		}

		L.Push(lv)

		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		b := checkReference(L, 1)
		key := checkKey(L, 2)

		value := L.Get(3)
		if src, ok := referenceOf(value); ok && src.phase != b.phase {
			if err := src.phase.Check(src.ref); err != nil {
				h.raise(L, err)
				return 0
			}
		}

		if err := domain.Set(b.phase, domain.Index(b.ref, key), fromLua(value)); err != nil {
			h.raise(L, err)
		}

		return 0
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(checkReference(L, 1).ref.String()))
		return 1
	}))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkReference(L, 1).ref.Equal(checkReference(L, 2).ref)))
		return 1
	}))
}

func (h *Host) newReference(phase *domain.Phase, ref domain.Reference) *lua.LUserData {
	ud := h.state.NewUserData()
	ud.Value = &referenceBinding{phase: phase, ref: ref}
	h.state.SetMetatable(ud, h.state.GetTypeMetatable(referenceTypeName))

	return ud
}

func referenceOf(v lua.LValue) (*referenceBinding, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}

	b, ok := ud.Value.(*referenceBinding)

	return b, ok
}

func checkReference(L *lua.LState, n int) *referenceBinding {
	ud := L.CheckUserData(n)
	if b, ok := ud.Value.(*referenceBinding); ok {
		return b
	}

	L.ArgError(n, "reference expected")

	return nil
}

// checkKey accepts field names and non-negative integral indices.
func checkKey(L *lua.LState, n int) string {
	switch key := L.Get(n).(type) {
	case lua.LString:
		return string(key)
	case lua.LNumber:
		f := float64(key)
		if f >= 0 && f == math.Trunc(f) && f <= math.MaxInt64 {
			return strconv.FormatInt(int64(f), 10)
		}
	}

	L.ArgError(n, "field name or index expected")

	return ""
}

func (h *Host) referenceClone(L *lua.LState) int {
	b := checkReference(L, 1)

	value, err := domain.Clone(b.phase, b.ref)
	if err != nil {
		h.raise(L, err)
		return 0
	}

	lv, err := h.toLua(b.phase, b.ref, value)
	if err != nil {
		h.raise(L, err)
		return 0
	}

	L.Push(lv)

	return 1
}

func (h *Host) referenceField(L *lua.LState) int {
	b := checkReference(L, 1)
	L.Push(h.newReference(b.phase, domain.Index(b.ref, checkKey(L, 2))))

	return 1
}

// toLua converts a value read from ref. Integers a Lua number cannot hold
// exactly are refused rather than rounded.
func (h *Host) toLua(phase *domain.Phase, ref domain.Reference, v domain.ScriptValue) (lua.LValue, error) {
	switch v.Kind {
	case domain.ValueBool:
		return lua.LBool(v.Bool), nil
	case domain.ValueInt, domain.ValueUint, domain.ValueFloat:
		n, err := domain.ExactNumber(ref, v)
		if err != nil {
			return lua.LNil, err
		}

		return lua.LNumber(n), nil
	case domain.ValueString:
		return lua.LString(v.Str), nil
	case domain.ValueRef:
		return h.newReference(phase, v.Ref), nil
	case domain.ValueTable:
		t := h.state.NewTable()
		for k, field := range v.Table {
			lv, err := h.toLua(phase, domain.Index(ref, k), field)
			if err != nil {
				return lua.LNil, err
			}

			t.RawSetString(k, lv)
		}

		return t, nil
	default:
		return lua.LNil, nil
	}
}

// fromLua converts a Lua value for the engine. Tables must be flat maps
// from names to scalars; anything else has no engine representation.
func fromLua(v lua.LValue) domain.ScriptValue {
	switch v := v.(type) {
	case *lua.LNilType:
		return domain.Nil
	case lua.LBool:
		return domain.Bool(bool(v))
	case lua.LNumber:
		return domain.Float(float64(v))
	case lua.LString:
		return domain.String(string(v))
	case *lua.LUserData:
		if b, ok := v.Value.(*referenceBinding); ok {
			return domain.Ref(b.ref)
		}

		return domain.Other("userdata")
	case *lua.LTable:
		return fromTable(v)
	default:
		return domain.Other(v.Type().String())
	}
}

func fromTable(t *lua.LTable) domain.ScriptValue {
	fields := make(map[string]domain.ScriptValue)
	flat := true

	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			flat = false
			return
		}

		switch v.(type) {
		case lua.LBool, lua.LNumber, lua.LString:
			fields[string(key)] = fromLua(v)
		default:
			flat = false
		}
	})

	if !flat {
		return domain.Other("table")
	}

	return domain.Table(fields)
}
