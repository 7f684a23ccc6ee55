package physics

import (
	"kin3d/internal/components"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Params are the solver tunables. The friction ratio and the inertia
// factor are fixed heuristics preserved for behavior compatibility, not
// physically derived; treat them as knobs, not truth.
type Params struct {
	Gravity              rl.Vector3
	VelocityIterations   int
	PositionIterations   int
	Slop                 float32 // penetration tolerated before positional correction
	Bias                 float32 // fraction of excess penetration corrected per iteration
	Friction             float32 // friction impulse cap as a ratio of the normal impulse
	InertiaFactor        float32 // inverse inertia ~ 1/(mass * r^2 * InertiaFactor)
	DefaultContactRadius float32 // inertia radius for non-box bodies
	SnapEpsilon          float32 // squared speed below which velocity snaps to zero
}

func DefaultParams() Params {
	return Params{
		Gravity:              rl.Vector3{Y: -9.81},
		VelocityIterations:   4,
		PositionIterations:   2,
		Slop:                 0.01,
		Bias:                 0.3,
		Friction:             0.8,
		InertiaFactor:        0.4,
		DefaultContactRadius: 0.5,
		SnapEpsilon:          1e-4,
	}
}

// inverseMasses builds the per-axis effective inverse mass and inverse
// inertia, with frozen axes forced to zero so no impulse can move them.
func inverseMasses(rb *components.Rigidbody, contactRadius, inertiaFactor float32) (invMass, invInertia [3]float32) {
	mass := rb.ClampedMass()
	linear := 1 / mass
	angular := 1 / (mass * contactRadius * contactRadius * inertiaFactor)
	for axis := 0; axis < 3; axis++ {
		if !rb.FreezePosition[axis] {
			invMass[axis] = linear
		}
		if !rb.FreezeRotation[axis] {
			invInertia[axis] = angular
		}
	}
	return invMass, invInertia
}

// effectiveMass projects the per-axis inverse masses onto an impulse
// direction at lever arm r. Zero means the contact cannot move the body
// along dir at all (fully frozen).
func effectiveMass(dir, r rl.Vector3, invMass, invInertia [3]float32) float32 {
	rn := rl.Vector3CrossProduct(r, dir)
	return dir.X*dir.X*invMass[0] + dir.Y*dir.Y*invMass[1] + dir.Z*dir.Z*invMass[2] +
		rn.X*rn.X*invInertia[0] + rn.Y*rn.Y*invInertia[1] + rn.Z*rn.Z*invInertia[2]
}

func applyImpulse(rb *components.Rigidbody, impulse, r rl.Vector3, invMass, invInertia [3]float32) {
	rb.Velocity.X += impulse.X * invMass[0]
	rb.Velocity.Y += impulse.Y * invMass[1]
	rb.Velocity.Z += impulse.Z * invMass[2]

	torque := rl.Vector3CrossProduct(r, impulse)
	rb.AngularVelocity.X += torque.X * invInertia[0]
	rb.AngularVelocity.Y += torque.Y * invInertia[1]
	rb.AngularVelocity.Z += torque.Z * invInertia[2]
}

// solveVelocity runs the sequential-impulse pass over every body's
// contacts: a normal impulse for approaching contacts, then a friction
// impulse along the tangential velocity clamped to Friction times the
// normal impulse.
func (p *PhysicsWorld) solveVelocity(bodies []*bodyState) {
	for iter := 0; iter < p.params.VelocityIterations; iter++ {
		for _, b := range bodies {
			p.solveBodyContacts(b)
		}
	}
}

func (p *PhysicsWorld) solveBodyContacts(b *bodyState) {
	rb := b.rb
	pos := b.node.WorldPosition()
	invMass, invInertia := inverseMasses(rb, b.contactRadius, p.params.InertiaFactor)

	for _, c := range b.contacts {
		r := rl.Vector3Subtract(c.Point, pos)
		relVel := rl.Vector3Add(rb.Velocity, rl.Vector3CrossProduct(rb.AngularVelocity, r))
		vn := rl.Vector3DotProduct(relVel, c.Normal)
		if vn >= 0 {
			continue // separating
		}

		denom := effectiveMass(c.Normal, r, invMass, invInertia)
		if denom <= 0 {
			continue
		}
		j := -vn / denom
		applyImpulse(rb, rl.Vector3Scale(c.Normal, j), r, invMass, invInertia)

		// Friction against whatever tangential velocity is left.
		relVel = rl.Vector3Add(rb.Velocity, rl.Vector3CrossProduct(rb.AngularVelocity, r))
		vn = rl.Vector3DotProduct(relVel, c.Normal)
		tangent := rl.Vector3Subtract(relVel, rl.Vector3Scale(c.Normal, vn))
		tLen := rl.Vector3Length(tangent)
		if tLen < 1e-6 {
			continue
		}
		tDir := rl.Vector3Scale(tangent, 1/tLen)

		denomT := effectiveMass(tDir, r, invMass, invInertia)
		if denomT <= 0 {
			continue
		}
		jt := -rl.Vector3DotProduct(relVel, tDir) / denomT
		maxFriction := p.params.Friction * math32.Abs(j)
		jt = clampf(jt, -maxFriction, maxFriction)
		applyImpulse(rb, rl.Vector3Scale(tDir, jt), r, invMass, invInertia)
	}
}

// solvePosition nudges still-overlapping bodies apart without touching
// velocity. The narrow phase is re-run per pair each iteration because
// integration and earlier corrections have moved the geometry.
func (p *PhysicsWorld) solvePosition(bodies []*bodyState) {
	for iter := 0; iter < p.params.PositionIterations; iter++ {
		for _, b := range bodies {
			p.correctBodyPosition(b)
		}
	}
}

func (p *PhysicsWorld) correctBodyPosition(b *bodyState) {
	for _, pair := range b.pairs {
		own, ok := WorldShape(pair.collider, b.node)
		if !ok {
			continue
		}
		other, ok := WorldShape(pair.other, pair.otherNode)
		if !ok {
			continue
		}
		for _, h := range Collide(own, other) {
			if h.Depth <= p.params.Slop {
				continue
			}
			corr := rl.Vector3Scale(h.Normal, (h.Depth-p.params.Slop)*p.params.Bias)
			corr = maskFrozen(corr, b.rb.FreezePosition)
			if corr.X == 0 && corr.Y == 0 && corr.Z == 0 {
				continue
			}
			b.node.SetWorldPosition(rl.Vector3Add(b.node.WorldPosition(), corr))
		}
	}
}

// maskFrozen zeroes the components of v whose axes are frozen.
func maskFrozen(v rl.Vector3, frozen [3]bool) rl.Vector3 {
	if frozen[components.AxisX] {
		v.X = 0
	}
	if frozen[components.AxisY] {
		v.Y = 0
	}
	if frozen[components.AxisZ] {
		v.Z = 0
	}
	return v
}
