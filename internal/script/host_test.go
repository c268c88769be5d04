package script

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/mouse-blink/ecslua/internal/adapter"
	"github.com/mouse-blink/ecslua/internal/domain"
	m "github.com/mouse-blink/ecslua/internal/model"
)

type fixture struct {
	world    *adapter.World
	registry *domain.Registry
	host     *Host
	out      *bytes.Buffer
	phases   int
}

func newFixture(t *testing.T, options ...Option) *fixture {
	t.Helper()

	out := &bytes.Buffer{}
	host := NewHost(append([]Option{WithOutput(out)}, options...)...)
	t.Cleanup(host.Close)

	return &fixture{
		world:    adapter.NewWorld(),
		registry: domain.NewDefaultRegistry(),
		host:     host,
		out:      out,
	}
}

// run executes source for entity inside a fresh phase.
func (f *fixture) run(t *testing.T, entity m.Entity, source string) error {
	t.Helper()

	require.NoError(t, f.host.Load("test", []byte(source)))

	store := f.world.Acquire()
	phase := domain.NewPhase(f.phases, store, f.registry, 0.25)
	f.phases++

	defer store.Release()
	defer phase.End()

	f.host.BeginPhase(phase)
	defer f.host.EndPhase(phase)

	return f.host.RunRecord(phase, entity)
}

func (f *fixture) transform(t *testing.T, entity m.Entity) m.Transform {
	t.Helper()

	for _, dump := range f.world.Snapshot() {
		if dump.Entity == entity && dump.Type == "Transform" {
			return dump.Value.(m.Transform)
		}
	}

	t.Fatalf("entity %s has no Transform", entity)

	return m.Transform{}
}

func transformAt(x, y, z float32) m.Transform {
	tf := m.DefaultTransform()
	tf.Translation = m.Vec3{X: x, Y: y, Z: z}

	return tf
}

func TestHost_DefaultScript(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(m.DefaultTransform())

	require.NoError(t, f.run(t, entity, adapter.DefaultScript))

	assert.InDelta(t, 0.25, f.transform(t, entity).Translation.X, 1e-6)

	output := f.out.String()
	for _, want := range []string{
		"Transform is: \t0v0.Transform",
		"Transform.translation is: \t0v0.Transform.translation",
		"Transform.translation.x is: \t0",
		"XVal is: \t0",
	} {
		assert.Contains(t, output, want)
	}
}

func TestHost_ReadAndWrite(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(1, 2, 3), m.Velocity{}, m.Health{Current: 10, Max: 10})

	err := f.run(t, entity, `
local tf = entity:get("Transform")
assert(tf.translation.x == 1)
assert(tf.translation.y == 2)
tf.translation.z = tf.translation.z * 2
tf.scale = {x = 3}

local h = entity:get("Health")
h.current = h.current - 4
h.max = 20

local v = entity:get("Velocity")
v.linear = tf.translation
tf.translation.x = 100
assert(v.linear.x == 1)
`)
	require.NoError(t, err)

	tf := f.transform(t, entity)
	assert.Equal(t, m.Vec3{X: 100, Y: 2, Z: 6}, tf.Translation)
	assert.Equal(t, m.Vec3{X: 3, Y: 1, Z: 1}, tf.Scale)

	require.NoError(t, f.run(t, entity, `
local h = entity:get("Health")
assert(h.current == 6, tostring(h.current))
assert(h.max == 20)
`))
}

func TestHost_EntityAndReferenceHelpers(t *testing.T) {
	f := newFixture(t)
	f.world.Spawn(m.Name{Value: "first"})
	entity := f.world.Spawn(transformAt(1, 2, 3))

	err := f.run(t, entity, `
assert(entity:id() == "1v0")
assert(tostring(entity) == "Entity(1v0)")
assert(entity:get("Health") == nil)
assert(entity:get("NoSuchType") == nil)

local tf = entity:get("Transform")
assert(tostring(tf) == "1v0.Transform")
assert(tostring(tf.translation) == "1v0.Transform.translation")
assert(tf.translation == tf:field("translation"))
assert(tf.translation ~= tf.scale)
assert(tostring(tf:field("nowhere")) == "1v0.Transform.nowhere")
assert(tf:clone() == tf)

local c = tf.translation:clone()
assert(type(c) == "table")
assert(c.x == 1 and c.y == 2 and c.z == 3)
c.x = 50
assert(tf.translation.x == 1)

local x = tf.translation:field("x"):clone()
assert(x == 1)
print("done", x)
`)
	require.NoError(t, err)
	assert.Equal(t, "done\t1\n", f.out.String())
}

func TestHost_ContainersByIndex(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(m.Inventory{Items: []m.Item{{Label: "sword", Count: 1}}, Owner: "bob"})

	err := f.run(t, entity, `
local inv = entity:get("Inventory")
assert(inv.items[0].label == "sword")
inv.items[0].count = inv.items[0].count + 2
inv.slots[3] = -7
assert(inv.holder == "bob")
inv.holder = "alice"
`)
	require.NoError(t, err)

	dumps := f.world.Snapshot()
	require.Len(t, dumps, 1)

	inv := dumps[0].Value.(m.Inventory)
	assert.Equal(t, uint32(3), inv.Items[0].Count)
	assert.Equal(t, int32(-7), inv.Slots[3])
	assert.Equal(t, "alice", inv.Owner)
}

func TestHost_EngineErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   error
	}{
		{name: "invalid path", source: `local _ = entity:get("Transform").nowhere`, want: domain.ErrInvalidPath},
		{name: "f32 overflow", source: `entity:get("Transform").translation.x = 1e39`, want: domain.ErrTypeMismatch},
		{name: "string into number", source: `entity:get("Transform").translation.x = "1"`, want: domain.ErrTypeMismatch},
		{name: "fraction into integer", source: `entity:get("Health").current = 1.5`, want: domain.ErrTypeMismatch},
		{name: "self assignment", source: `local tf = entity:get("Transform") tf.translation = tf.scale`, want: domain.ErrSelfAssignment},
		{name: "function value", source: `entity:get("Transform").translation.x = print`, want: domain.ErrUnsupported},
		{name: "nested table", source: `entity:get("Transform").translation = {x = {1}}`, want: domain.ErrUnsupported},
		{name: "wrong component letter", source: `entity:get("Transform").translation = {w = 1}`, want: domain.ErrTypeMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			entity := f.world.Spawn(transformAt(1, 2, 3), m.Health{Current: 1, Max: 1})

			err := f.run(t, entity, tc.source)
			require.ErrorIs(t, err, tc.want)

			var scriptErr *Error
			require.ErrorAs(t, err, &scriptErr)
			assert.Equal(t, "test", scriptErr.Script)

			assert.Equal(t, lua.LNil, f.host.state.GetGlobal(globalEntity), "entity is cleared after a failure")
			assert.Equal(t, m.Vec3{X: 1, Y: 2, Z: 3}, f.transform(t, entity).Translation)
		})
	}
}

func TestHost_ErrorsAreCatchable(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(1, 2, 3))

	err := f.run(t, entity, `
local tf = entity:get("Transform")
local ok, err = pcall(function() return tf.translation.q end)
assert(not ok)
assert(string.find(err, "InvalidPath", 1, true), err)
assert(string.find(err, "0v0.Transform.translation.q", 1, true), err)

ok, err = pcall(function() tf.translation.x = "nope" end)
assert(not ok)
assert(string.find(err, "TypeMismatch", 1, true), err)
`)
	require.NoError(t, err)
}

func TestHost_PlainLuaErrors(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(1, 2, 3))

	err := f.run(t, entity, `error("custom failure")`)
	require.ErrorContains(t, err, "custom failure")

	var scriptErr *Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Nil(t, scriptErr.Cause)
}

func TestHost_StaleReferenceAcrossPhases(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(1, 2, 3), m.Velocity{})

	require.NoError(t, f.run(t, entity, `
saved = entity:get("Transform")
savedTranslation = saved.translation
`))

	err := f.run(t, entity, `local _ = saved.translation`)
	require.ErrorIs(t, err, domain.ErrExpired)

	err = f.run(t, entity, `entity:get("Velocity").linear = savedTranslation`)
	require.ErrorIs(t, err, domain.ErrExpired)

	err = f.run(t, entity, `local _ = savedTranslation:clone()`)
	require.ErrorIs(t, err, domain.ErrExpired)
}

func TestHost_Despawn(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(1, 2, 3))

	require.NoError(t, f.run(t, entity, `
local tf = entity:get("Transform")
assert(entity:despawn() == true)
assert(entity:despawn() == false)
assert(entity:get("Transform") == nil)
assert(tf.translation.x == nil)
`))

	assert.Equal(t, 0, f.world.Len())
}

func TestHost_PhaseGlobals(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(0, 0, 0))

	require.NoError(t, f.run(t, entity, `assert(deltaTime == 0.25)`))
	assert.Equal(t, lua.LNil, f.host.state.GetGlobal(globalDeltaTime))
	assert.Equal(t, lua.LNil, f.host.state.GetGlobal(globalEntity))
}

func TestHost_LoadErrors(t *testing.T) {
	host := NewHost()
	defer host.Close()

	require.Error(t, host.RunRecord(nil, m.Entity{}), "nothing loaded")
	require.ErrorContains(t, host.Load("broken", []byte("local = 1")), "failed to compile broken")
}

func TestHost_PrintPrefix(t *testing.T) {
	out := &bytes.Buffer{}
	host := NewHost(WithOutput(out), WithPrefix("[level] "))
	defer host.Close()

	world := adapter.NewWorld()
	entity := world.Spawn(m.Name{Value: "x"})

	require.NoError(t, host.Load("p", []byte(`print("a", 1, true, nil)`)))

	store := world.Acquire()
	phase := domain.NewPhase(0, store, domain.NewDefaultRegistry(), 0)

	require.NoError(t, host.RunRecord(phase, entity))
	phase.End()
	store.Release()

	assert.Equal(t, "[level] a\t1\ttrue\tnil\n", out.String())
}

func TestFromLua(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	flat := L.NewTable()
	flat.RawSetString("x", lua.LNumber(1))
	flat.RawSetString("name", lua.LString("n"))

	nested := L.NewTable()
	nested.RawSetString("inner", L.NewTable())

	array := L.NewTable()
	array.Append(lua.LNumber(1))

	assert.Equal(t, domain.Nil, fromLua(lua.LNil))
	assert.Equal(t, domain.Bool(true), fromLua(lua.LTrue))
	assert.Equal(t, domain.Float(2.5), fromLua(lua.LNumber(2.5)))
	assert.Equal(t, domain.String("s"), fromLua(lua.LString("s")))
	assert.Equal(t, domain.Table(map[string]domain.ScriptValue{
		"x":    domain.Float(1),
		"name": domain.String("n"),
	}), fromLua(flat))
	assert.Equal(t, domain.Other("table"), fromLua(nested))
	assert.Equal(t, domain.Other("table"), fromLua(array))
	assert.Equal(t, domain.Other("function"), fromLua(L.NewFunction(func(*lua.LState) int { return 0 })))
	assert.Equal(t, domain.Other("userdata"), fromLua(L.NewUserData()))
}

func (f *fixture) stats(t *testing.T, entity m.Entity) m.Stats {
	t.Helper()

	for _, dump := range f.world.Snapshot() {
		if dump.Entity == entity && dump.Type == "Stats" {
			return dump.Value.(m.Stats)
		}
	}

	t.Fatalf("entity %s has no Stats", entity)

	return m.Stats{}
}

func TestHost_WideIntegersAreNotRounded(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(m.Stats{Seed: 1<<53 + 1, Gold: 1<<64 - 1, Armor: -7})

	err := f.run(t, entity, `local s = entity:get("Stats"); s.seed = s.seed`)
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.Equal(t, int64(1<<53+1), f.stats(t, entity).Seed)

	err = f.run(t, entity, `local s = entity:get("Stats"); s.gold = s.gold`)
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.Equal(t, uint64(1<<64-1), f.stats(t, entity).Gold)

	require.NoError(t, f.run(t, entity, `
local s = entity:get("Stats")
local ok = pcall(function() return s.seed end)
assert(not ok, "wide seed must not be readable as a number")
s.armor = s.armor
s.seed = 2^53
s.seed = s.seed
`))

	stats := f.stats(t, entity)
	assert.Equal(t, int64(1<<53), stats.Seed)
	assert.Equal(t, int16(-7), stats.Armor)
}

func TestHost_LogsErrors(t *testing.T) {
	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := newFixture(t, WithLogger(logger))
	entity := f.world.Spawn(transformAt(0, 0, 0))

	err := f.run(t, entity, `local tf = entity:get("Transform"); tf.translation.q = 1`)
	require.ErrorIs(t, err, domain.ErrInvalidPath)
	assert.Contains(t, logs.String(), "class=InvalidPath")
	assert.Contains(t, logs.String(), "0v0.Transform.translation.q")

	logs.Reset()

	err = f.run(t, entity, `error("boom")`)
	require.Error(t, err)
	assert.Contains(t, logs.String(), "script raised an error")
	assert.Contains(t, logs.String(), "boom")
}

func TestHost_EntityComponents(t *testing.T) {
	f := newFixture(t)
	entity := f.world.Spawn(transformAt(0, 0, 0), m.Name{Value: "n"}, m.Score(1))

	err := f.run(t, entity, `
local names = entity:components()
assert(#names == 3, "got " .. #names)
assert(names[1] == "Name" and names[2] == "Score" and names[3] == "Transform")
entity:despawn()
assert(#entity:components() == 0)
`)
	require.NoError(t, err)
}
