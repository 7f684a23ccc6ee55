package physics

import (
	"testing"

	"kin3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestInverseMasses(t *testing.T) {
	rb := components.NewRigidbody()
	rb.Mass = 2
	rb.FreezePosition[components.AxisY] = true
	rb.FreezeRotation[components.AxisX] = true

	invMass, invInertia := inverseMasses(rb, 1, 0.4)

	assert.InDelta(t, 0.5, invMass[0], 1e-6)
	assert.Equal(t, float32(0), invMass[1])
	assert.InDelta(t, 0.5, invMass[2], 1e-6)

	assert.Equal(t, float32(0), invInertia[0])
	assert.InDelta(t, 1.25, invInertia[1], 1e-6)
	assert.InDelta(t, 1.25, invInertia[2], 1e-6)
}

func TestInverseMassesClampsMass(t *testing.T) {
	rb := components.NewRigidbody()
	rb.Mass = 0

	invMass, _ := inverseMasses(rb, 0.5, 0.4)
	assert.InDelta(t, 1/components.MinMass, invMass[0], 1)
}

func TestEffectiveMassFrozenAxis(t *testing.T) {
	invMass := [3]float32{1, 0, 1}
	invInertia := [3]float32{1, 1, 0}

	// Pushing along the frozen Y axis at lever arm (1,0,0) only picks up
	// the Z rotation term, which is frozen too.
	denom := effectiveMass(rl.Vector3{Y: 1}, rl.Vector3{X: 1}, invMass, invInertia)
	assert.Equal(t, float32(0), denom)

	// The same push along X moves the body linearly.
	denom = effectiveMass(rl.Vector3{X: 1}, rl.Vector3{X: 1}, invMass, invInertia)
	assert.InDelta(t, 1, denom, 1e-6)
}

func TestApplyImpulseOffCenter(t *testing.T) {
	rb := components.NewRigidbody()
	invMass := [3]float32{1, 1, 1}
	invInertia := [3]float32{0.5, 0.5, 0.5}

	applyImpulse(rb, rl.Vector3{Y: 2}, rl.Vector3{X: 1}, invMass, invInertia)

	assert.InDelta(t, 2, rb.Velocity.Y, 1e-6)
	// r x impulse = (1,0,0) x (0,2,0) = (0,0,2), scaled by the inverse
	// inertia.
	assert.InDelta(t, 1, rb.AngularVelocity.Z, 1e-6)
	assert.InDelta(t, 0, rb.AngularVelocity.X, 1e-6)
}

func TestMaskFrozen(t *testing.T) {
	v := rl.Vector3{X: 1, Y: 2, Z: 3}
	got := maskFrozen(v, [3]bool{false, true, false})
	assert.Equal(t, rl.Vector3{X: 1, Z: 3}, got)

	got = maskFrozen(v, [3]bool{true, true, true})
	assert.Equal(t, rl.Vector3{}, got)
}
