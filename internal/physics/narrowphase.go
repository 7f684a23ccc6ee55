package physics

import (
	"kin3d/internal/components"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// insideEpsilon is the closest-point distance below which a sphere
// center counts as inside a box and the face-normal fallback kicks in.
const insideEpsilon = 1e-4

// Hit is a single narrow-phase result. The normal is unit length and
// points from the second shape toward the first.
type Hit struct {
	Normal rl.Vector3
	Depth  float32
	Point  rl.Vector3
}

func negate(h Hit) Hit {
	h.Normal = rl.Vector3Scale(h.Normal, -1)
	return h
}

func negateAll(hits []Hit) []Hit {
	for i := range hits {
		hits[i] = negate(hits[i])
	}
	return hits
}

// Collide tests shape a against shape b and returns every contact found.
// Box and sphere pairs produce at most one hit; a capsule contributes up
// to three (its two cap-sphere centers plus the midpoint). Symmetric
// pairs delegate with the operands swapped and the normal negated, so
// Collide(a,b) and Collide(b,a) always agree on depth with antiparallel
// normals.
func Collide(a, b ShapeWorld) []Hit {
	switch a.Kind {
	case components.ShapeBox:
		switch b.Kind {
		case components.ShapeBox:
			if h, ok := collideBoxBox(a.Box, b.Box); ok {
				return []Hit{h}
			}
		case components.ShapeSphere:
			if h, ok := collideSphereBox(b.Sphere, a.Box); ok {
				return []Hit{negate(h)}
			}
		case components.ShapeCapsule:
			return negateAll(collideCapsuleAny(b.Capsule, a))
		}

	case components.ShapeSphere:
		switch b.Kind {
		case components.ShapeBox:
			if h, ok := collideSphereBox(a.Sphere, b.Box); ok {
				return []Hit{h}
			}
		case components.ShapeSphere:
			if h, ok := collideSphereSphere(a.Sphere, b.Sphere); ok {
				return []Hit{h}
			}
		case components.ShapeCapsule:
			return negateAll(collideCapsuleAny(b.Capsule, a))
		}

	case components.ShapeCapsule:
		return collideCapsuleAny(a.Capsule, b)
	}
	return nil
}

// collideBoxBox tests two world AABBs. The separating axis is the one
// with minimum overlap, evaluated in X, Y, Z order with the first
// strictly smaller overlap winning. The contact point is the midpoint of
// the per-axis overlap intervals.
func collideBoxBox(a, b BoxShape) (Hit, bool) {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()

	lo := rl.Vector3Max(amin, bmin)
	hi := rl.Vector3Min(amax, bmax)
	overlap := rl.Vector3Subtract(hi, lo)
	if overlap.X <= 0 || overlap.Y <= 0 || overlap.Z <= 0 {
		return Hit{}, false
	}

	axis := 0
	depth := overlap.X
	if overlap.Y < depth {
		axis, depth = 1, overlap.Y
	}
	if overlap.Z < depth {
		axis, depth = 2, overlap.Z
	}

	normal := axisUnit(axis)
	if vectorComponent(a.Center, axis) < vectorComponent(b.Center, axis) {
		normal = rl.Vector3Scale(normal, -1)
	}

	return Hit{
		Normal: normal,
		Depth:  depth,
		Point:  rl.Vector3Scale(rl.Vector3Add(lo, hi), 0.5),
	}, true
}

func collideSphereSphere(a, b SphereShape) (Hit, bool) {
	diff := rl.Vector3Subtract(a.Center, b.Center)
	distSq := rl.Vector3DotProduct(diff, diff)
	radiusSum := a.Radius + b.Radius
	if distSq > radiusSum*radiusSum {
		return Hit{}, false
	}

	dist := math32.Sqrt(distSq)
	if dist == 0 {
		// Coincident centers: documented fallback, world up, full depth.
		return Hit{
			Normal: rl.Vector3{Y: 1},
			Depth:  radiusSum,
			Point:  a.Center,
		}, true
	}

	normal := rl.Vector3Scale(diff, 1/dist)
	return Hit{
		Normal: normal,
		Depth:  radiusSum - dist,
		Point:  rl.Vector3Subtract(a.Center, rl.Vector3Scale(normal, a.Radius)),
	}, true
}

// collideSphereBox clamps the sphere center in the box's local space.
// The returned normal points from the box toward the sphere. When the
// center sits inside the box, the face with least penetration supplies
// the normal, transformed to world space as a direction.
func collideSphereBox(s SphereShape, b BoxShape) (Hit, bool) {
	local := rl.Vector3Transform(s.Center, b.Inverse)
	lo := rl.Vector3Subtract(b.LocalCenter, b.LocalHalf)
	hi := rl.Vector3Add(b.LocalCenter, b.LocalHalf)

	closest := rl.Vector3{
		X: clampf(local.X, lo.X, hi.X),
		Y: clampf(local.Y, lo.Y, hi.Y),
		Z: clampf(local.Z, lo.Z, hi.Z),
	}
	closestWorld := rl.Vector3Transform(closest, b.World)

	diff := rl.Vector3Subtract(s.Center, closestWorld)
	dist := rl.Vector3Length(diff)
	if dist >= s.Radius {
		return Hit{}, false
	}

	if dist > insideEpsilon {
		normal := rl.Vector3Scale(diff, 1/dist)
		return Hit{
			Normal: normal,
			Depth:  s.Radius - dist,
			Point:  closestWorld,
		}, true
	}

	// Center inside the box: least-penetrated face in local space,
	// left/right, bottom/top, back/front order.
	faceDist := [6]float32{
		local.X - lo.X,
		hi.X - local.X,
		local.Y - lo.Y,
		hi.Y - local.Y,
		local.Z - lo.Z,
		hi.Z - local.Z,
	}
	faceNormal := [6]rl.Vector3{
		{X: -1}, {X: 1},
		{Y: -1}, {Y: 1},
		{Z: -1}, {Z: 1},
	}
	face := 0
	for i := 1; i < 6; i++ {
		if faceDist[i] < faceDist[face] {
			face = i
		}
	}

	normal := rl.Vector3Normalize(transformDirection(b.World, faceNormal[face]))
	return Hit{
		Normal: normal,
		Depth:  s.Radius + faceDist[face],
		Point:  closestWorld,
	}, true
}

// collideSphereCapsule reports the deepest contact between the sphere
// and the capsule's three sample spheres.
func collideSphereCapsule(s SphereShape, c CapsuleShape) (Hit, bool) {
	var best Hit
	found := false
	for _, center := range c.SampleCenters() {
		h, ok := collideSphereSphere(s, SphereShape{Center: center, Radius: c.Radius})
		if ok && (!found || h.Depth > best.Depth) {
			best = h
			found = true
		}
	}
	return best, found
}

// collideCapsuleAny tests each of the capsule's sample spheres against
// the other shape and keeps every contact, so a single capsule can hold
// up to three simultaneous contacts against one shape. Sampling the
// midpoint alongside the caps keeps a fast capsule from slipping between
// its own endpoints.
func collideCapsuleAny(c CapsuleShape, other ShapeWorld) []Hit {
	var hits []Hit
	for _, center := range c.SampleCenters() {
		sample := SphereShape{Center: center, Radius: c.Radius}
		var h Hit
		var ok bool
		switch other.Kind {
		case components.ShapeBox:
			h, ok = collideSphereBox(sample, other.Box)
		case components.ShapeSphere:
			h, ok = collideSphereSphere(sample, other.Sphere)
		case components.ShapeCapsule:
			h, ok = collideSphereCapsule(sample, other.Capsule)
		}
		if ok {
			hits = append(hits, h)
		}
	}
	return hits
}

func vectorComponent(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func axisUnit(axis int) rl.Vector3 {
	switch axis {
	case 0:
		return rl.Vector3{X: 1}
	case 1:
		return rl.Vector3{Y: 1}
	default:
		return rl.Vector3{Z: 1}
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
