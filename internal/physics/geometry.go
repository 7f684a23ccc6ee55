package physics

import (
	"kin3d/internal/components"
	"kin3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World-space shape parameters, derived fresh from the collider and its
// node's transform every step. Nothing in here survives a step.

// BoxShape is the world-space axis-aligned bound of a box collider. The
// local-space fields and matrices are carried along for the sphere-vs-box
// test, which clamps in the box's local space.
type BoxShape struct {
	Center rl.Vector3 // world center (local center through the world matrix)
	Half   rl.Vector3 // world half-extents: (size * world scale) / 2

	LocalCenter rl.Vector3
	LocalHalf   rl.Vector3
	World       rl.Matrix
	Inverse     rl.Matrix
}

func (b BoxShape) Min() rl.Vector3 {
	return rl.Vector3Subtract(b.Center, b.Half)
}

func (b BoxShape) Max() rl.Vector3 {
	return rl.Vector3Add(b.Center, b.Half)
}

type SphereShape struct {
	Center rl.Vector3
	Radius float32 // local radius x max world scale component
}

type CapsuleShape struct {
	Center      rl.Vector3
	Axis        rl.Vector3 // unit world-space axis
	Radius      float32    // local radius x max of the two non-axis scales
	HalfHeight  float32    // (height x axis scale) / 2
	SegmentHalf float32    // max(0, HalfHeight - Radius), cap-sphere offset
}

// SampleCenters returns the two cap-sphere centers and the midpoint, the
// three points a capsule is tested at.
func (c CapsuleShape) SampleCenters() [3]rl.Vector3 {
	offset := rl.Vector3Scale(c.Axis, c.SegmentHalf)
	return [3]rl.Vector3{
		rl.Vector3Subtract(c.Center, offset),
		rl.Vector3Add(c.Center, offset),
		c.Center,
	}
}

// ShapeWorld is a collider lifted into world space, tagged by kind.
type ShapeWorld struct {
	Kind    components.Shape
	Box     BoxShape
	Sphere  SphereShape
	Capsule CapsuleShape

	Collider *components.Collider
	Node     *engine.GameObject
}

// decomposeScale extracts the per-axis scale from a world matrix as the
// lengths of its basis columns. A degenerate or non-finite decomposition
// reports false and falls back to (1,1,1).
func decomposeScale(m rl.Matrix) (rl.Vector3, bool) {
	sx := basisLength(m.M0, m.M1, m.M2)
	sy := basisLength(m.M4, m.M5, m.M6)
	sz := basisLength(m.M8, m.M9, m.M10)
	if !finite(sx) || !finite(sy) || !finite(sz) || sx < 1e-6 || sy < 1e-6 || sz < 1e-6 {
		return rl.Vector3{X: 1, Y: 1, Z: 1}, false
	}
	return rl.Vector3{X: sx, Y: sy, Z: sz}, true
}

func basisLength(x, y, z float32) float32 {
	return math32.Sqrt(x*x + y*y + z*z)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// transformDirection applies a matrix to a direction, ignoring its
// translation.
func transformDirection(m rl.Matrix, d rl.Vector3) rl.Vector3 {
	origin := rl.Vector3Transform(rl.Vector3{}, m)
	return rl.Vector3Subtract(rl.Vector3Transform(d, m), origin)
}

// WorldShape derives the world-space shape for a collider. Returns false
// when the collider has no reachable transform; callers skip it for the
// step.
func WorldShape(c *components.Collider, node *engine.GameObject) (ShapeWorld, bool) {
	if c == nil || node == nil {
		return ShapeWorld{}, false
	}
	world := node.WorldMatrix()
	scale, ok := decomposeScale(world)
	if !ok {
		// A collapsed basis has no usable rotation and no finite
		// inverse; keep only the translation.
		world = rl.MatrixTranslate(world.M12, world.M13, world.M14)
	}
	center := rl.Vector3Transform(c.Center, world)

	shape := ShapeWorld{Kind: c.Shape, Collider: c, Node: node}

	switch c.Shape {
	case components.ShapeBox:
		shape.Box = BoxShape{
			Center: center,
			Half: rl.Vector3{
				X: math32.Abs(c.Size.X*scale.X) / 2,
				Y: math32.Abs(c.Size.Y*scale.Y) / 2,
				Z: math32.Abs(c.Size.Z*scale.Z) / 2,
			},
			LocalCenter: c.Center,
			LocalHalf:   rl.Vector3Scale(c.Size, 0.5),
			World:       world,
			Inverse:     rl.MatrixInvert(world),
		}

	case components.ShapeSphere:
		shape.Sphere = SphereShape{
			Center: center,
			Radius: c.Radius * math32.Max(math32.Abs(scale.X), math32.Max(math32.Abs(scale.Y), math32.Abs(scale.Z))),
		}

	case components.ShapeCapsule:
		axisScale, radialScale := capsuleScales(c.Axis, scale)
		radius := c.Radius * radialScale
		halfHeight := c.Height * axisScale / 2
		axis := rl.Vector3Normalize(transformDirection(world, c.LocalAxis()))
		shape.Capsule = CapsuleShape{
			Center:      center,
			Axis:        axis,
			Radius:      radius,
			HalfHeight:  halfHeight,
			SegmentHalf: math32.Max(0, halfHeight-radius),
		}
	}

	return shape, true
}

// capsuleScales splits the world scale into the component along the
// capsule axis and the max of the two components across it.
func capsuleScales(axis components.CapsuleAxis, scale rl.Vector3) (along, radial float32) {
	sx, sy, sz := math32.Abs(scale.X), math32.Abs(scale.Y), math32.Abs(scale.Z)
	switch axis {
	case components.CapsuleX:
		return sx, math32.Max(sy, sz)
	case components.CapsuleZ:
		return sz, math32.Max(sx, sy)
	default:
		return sy, math32.Max(sx, sz)
	}
}
