package components

import (
	"kin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MinMass is the smallest mass the solver will ever see. Configured
// masses at or below zero are clamped, never rejected.
const MinMass = 1e-4

// Axis indices for the freeze flag arrays.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second on each axis
	Mass            float32
	Drag            float32 // linear drag, per second
	AngularDrag     float32
	UseGravity      bool
	IsKinematic     bool // collidable but never moved by the solver

	// Per-axis degree-of-freedom locks. A frozen axis never accumulates
	// velocity, so position on that axis never changes.
	FreezePosition [3]bool
	FreezeRotation [3]bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Velocity:        rl.Vector3{},
		AngularVelocity: rl.Vector3{},
		Mass:            1.0,
		Drag:            0,
		AngularDrag:     0.05,
		UseGravity:      true,
		IsKinematic:     false,
	}
}

// ClampedMass returns the mass clamped to MinMass.
func (r *Rigidbody) ClampedMass() float32 {
	if r.Mass < MinMass {
		return MinMass
	}
	return r.Mass
}
