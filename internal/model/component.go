package model

// Transform places an entity in space.
type Transform struct {
	Translation Vec3 `yaml:"translation"`
	Rotation    Quat `yaml:"rotation"`
	Scale       Vec3 `yaml:"scale"`
}

// DefaultTransform returns the identity transform.
func DefaultTransform() Transform {
	return Transform{
		Rotation: IdentityQuat,
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Velocity is the per-second change applied to a Transform.
type Velocity struct {
	Linear  Vec3 `yaml:"linear"`
	Angular Vec3 `yaml:"angular"`
}

// Name labels an entity for humans.
type Name struct {
	Value string `yaml:"value"`
}

// Health tracks hit points.
type Health struct {
	Current int32  `yaml:"current"`
	Max     uint32 `yaml:"max"`
}

// Stats groups assorted numeric fields of every supported width.
type Stats struct {
	Speed    float64 `yaml:"speed"`
	Level    uint8   `yaml:"level"`
	Armor    int16   `yaml:"armor"`
	Gold     uint64  `yaml:"gold"`
	Luck     int8    `yaml:"luck"`
	Mana     uint16  `yaml:"mana"`
	Seed     int64   `yaml:"seed"`
	Alive    bool    `yaml:"alive"`
	Facing   Vec2    `yaml:"facing"`
	Home     UVec3   `yaml:"home"`
	Offset   IVec4   `yaml:"offset"`
	Tint     Vec4    `yaml:"tint"`
	Spawn    IVec3   `yaml:"spawn"`
	Region   UVec2   `yaml:"region"`
	Extents  UVec4   `yaml:"extents"`
	Modifier *Stats  `yaml:"modifier,omitempty"`
}

// Item is one entry of an Inventory.
type Item struct {
	Label string `yaml:"label"`
	Count uint32 `yaml:"count"`
}

// Inventory holds a list of items and free-form counters.
type Inventory struct {
	Items    []Item           `yaml:"items"`
	Slots    [4]int32         `yaml:"slots"`
	Counters map[string]int64 `yaml:"counters"`
	Owner    string           `yaml:"owner" ecs:"holder"`
}

// GridCell places an entity on an integer grid.
type GridCell struct {
	Cell IVec2 `yaml:"cell"`
}

// Score is a component whose own type is a terminal number.
type Score int64

// BuiltinComponents lists the zero values of every component type shipped
// with ecslua, in registration order.
func BuiltinComponents() []any {
	return []any{
		Transform{},
		Velocity{},
		Name{},
		Health{},
		Stats{},
		Inventory{},
		GridCell{},
		Score(0),
	}
}

// Defaulter is implemented by components whose zero value is not a sensible
// starting point.
type Defaulter interface {
	SetDefaults()
}

// SetDefaults resets t to the identity transform.
func (t *Transform) SetDefaults() {
	*t = DefaultTransform()
}

// SetDefaults gives a fresh Health full hit points.
func (h *Health) SetDefaults() {
	h.Current, h.Max = 100, 100
}
