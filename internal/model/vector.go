package model

import "fmt"

// Vec2 is a two component float vector.
type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Vec3 is a three component float vector.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec4 is a four component float vector.
type Vec4 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
	W float32 `yaml:"w"`
}

// IVec2 is a two component signed integer vector.
type IVec2 struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// IVec3 is a three component signed integer vector.
type IVec3 struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
	Z int32 `yaml:"z"`
}

// IVec4 is a four component signed integer vector.
type IVec4 struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
	Z int32 `yaml:"z"`
	W int32 `yaml:"w"`
}

// UVec2 is a two component unsigned integer vector.
type UVec2 struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
}

// UVec3 is a three component unsigned integer vector.
type UVec3 struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
	Z uint32 `yaml:"z"`
}

// UVec4 is a four component unsigned integer vector.
type UVec4 struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
	Z uint32 `yaml:"z"`
	W uint32 `yaml:"w"`
}

// Quat is a rotation quaternion stored as x, y, z, w.
type Quat struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
	W float32 `yaml:"w"`
}

// IdentityQuat is the rotation that leaves vectors unchanged.
var IdentityQuat = Quat{W: 1}

func (v Vec3) String() string { return fmt.Sprintf("Vec3(%g, %g, %g)", v.X, v.Y, v.Z) }

func (q Quat) String() string { return fmt.Sprintf("Quat(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W) }
