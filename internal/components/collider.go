package components

import (
	"kin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is the closed set of collider primitives. Collision routines
// switch exhaustively over it, so adding a shape breaks every switch
// until it is handled.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapeCapsule
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	}
	return "unknown"
}

// CapsuleAxis selects the local axis a capsule's cylinder runs along.
type CapsuleAxis int

const (
	CapsuleX CapsuleAxis = iota
	CapsuleY
	CapsuleZ
)

// Collider is a single component covering all three primitives. Geometry
// is stored in node-local space; world-space values are derived each
// step because the transform can change between steps.
type Collider struct {
	engine.BaseComponent
	Shape  Shape
	Size   rl.Vector3 // box
	Radius float32    // sphere, capsule
	Height float32    // capsule, cap-to-cap
	Axis   CapsuleAxis
	Center rl.Vector3 // local offset from the node origin

	IsTrigger bool
	Enabled   bool
}

func NewBoxCollider(size rl.Vector3) *Collider {
	return &Collider{
		Shape:   ShapeBox,
		Size:    size,
		Enabled: true,
	}
}

func NewSphereCollider(radius float32) *Collider {
	return &Collider{
		Shape:   ShapeSphere,
		Radius:  radius,
		Enabled: true,
	}
}

func NewCapsuleCollider(radius, height float32, axis CapsuleAxis) *Collider {
	return &Collider{
		Shape:   ShapeCapsule,
		Radius:  radius,
		Height:  height,
		Axis:    axis,
		Enabled: true,
	}
}

// LocalAxis returns the capsule's unit axis in local space.
func (c *Collider) LocalAxis() rl.Vector3 {
	switch c.Axis {
	case CapsuleX:
		return rl.Vector3{X: 1}
	case CapsuleZ:
		return rl.Vector3{Z: 1}
	default:
		return rl.Vector3{Y: 1}
	}
}
