package physics

import (
	"time"

	"kin3d/internal/components"
	"kin3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// bodyState is the per-step working record for one dynamic rigidbody.
type bodyState struct {
	node          *engine.GameObject
	rb            *components.Rigidbody
	shapes        []ShapeWorld
	contacts      []Contact
	pairs         []colliderPair
	contactRadius float32
}

// PhysicsWorld runs the whole simulation step: force application,
// exhaustive pairwise contact collection, impulse solving, integration,
// and positional correction. Single-threaded; one call per frame.
type PhysicsWorld struct {
	params  Params
	log     *zap.Logger
	lastLog time.Time
}

func NewPhysicsWorld() *PhysicsWorld {
	return NewPhysicsWorldWith(DefaultParams(), nil)
}

func NewPhysicsWorldWith(params Params, logger *zap.Logger) *PhysicsWorld {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhysicsWorld{params: params, log: logger}
}

func (p *PhysicsWorld) Params() Params {
	return p.params
}

// Step advances the scene by dt seconds. A non-positive dt is a no-op.
// Phases run strictly in order: collect, apply forces, gather contacts,
// solve velocity, integrate, solve position, final constraint pass.
func (p *PhysicsWorld) Step(scene *engine.Scene, dt float32) {
	if scene == nil || dt <= 0 {
		return
	}

	active := scene.ActiveObjects()
	shapes := collectShapes(active)
	bodies := p.collectBodies(active, shapes)

	for _, b := range bodies {
		p.applyForces(b.rb, dt)
	}

	totalContacts := 0
	for _, b := range bodies {
		b.contacts = gatherContacts(b.shapes, shapes)
		b.pairs = dedupePairs(b.contacts)
		totalContacts += len(b.contacts)
	}

	p.solveVelocity(bodies)

	for _, b := range bodies {
		integrate(b, dt)
	}

	p.solvePosition(bodies)

	for _, b := range bodies {
		p.finalizeBody(b.rb)
	}

	if time.Since(p.lastLog) >= time.Second {
		p.lastLog = time.Now()
		p.log.Debug("physics step",
			zap.Int("bodies", len(bodies)),
			zap.Int("shapes", len(shapes)),
			zap.Int("contacts", totalContacts),
			zap.Float32("dt", dt),
		)
	}
}

// collectShapes lifts every enabled, non-trigger collider on the active
// objects into world space. Colliders without a reachable transform are
// skipped for this step.
func collectShapes(active []*engine.GameObject) []ShapeWorld {
	var shapes []ShapeWorld
	for _, node := range active {
		for _, c := range engine.GetComponents[*components.Collider](node) {
			if !c.Enabled || c.IsTrigger {
				continue
			}
			if s, ok := WorldShape(c, node); ok {
				shapes = append(shapes, s)
			}
		}
	}
	return shapes
}

// collectBodies picks the solvable rigidbodies: active, non-kinematic.
// Kinematic bodies and collider-only nodes still show up in the shape
// list as immovable obstacles.
func (p *PhysicsWorld) collectBodies(active []*engine.GameObject, shapes []ShapeWorld) []*bodyState {
	var bodies []*bodyState
	for _, node := range active {
		rb := engine.GetComponent[*components.Rigidbody](node)
		if rb == nil || rb.IsKinematic {
			continue
		}
		b := &bodyState{node: node, rb: rb}
		for _, s := range shapes {
			if s.Node == node {
				b.shapes = append(b.shapes, s)
			}
		}
		b.contactRadius = contactRadiusFor(b.shapes, p.params.DefaultContactRadius)
		bodies = append(bodies, b)
	}
	return bodies
}

// contactRadiusFor derives the inertia radius: half the diagonal of the
// body's first box shape, or the configured default for everything else.
func contactRadiusFor(shapes []ShapeWorld, fallback float32) float32 {
	for _, s := range shapes {
		if s.Kind == components.ShapeBox {
			return rl.Vector3Length(s.Box.Half)
		}
	}
	return fallback
}

// applyForces runs gravity and drag for one body. Freeze constraints are
// enforced both before and after so a frozen axis can never pick up
// velocity from a stale write or from this frame's forces.
func (p *PhysicsWorld) applyForces(rb *components.Rigidbody, dt float32) {
	rb.Velocity = sanitize(rb.Velocity)
	rb.AngularVelocity = sanitize(rb.AngularVelocity)
	applyFreeze(rb)

	if rb.UseGravity {
		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.params.Gravity, dt))
	}
	rb.Velocity = rl.Vector3Scale(rb.Velocity, clampf(1-rb.Drag*dt, 0, 1))
	rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, clampf(1-rb.AngularDrag*dt, 0, 1))

	applyFreeze(rb)
}

// integrate moves the transform by the solved velocities. Angular
// velocity is radians/sec; the rotation accumulator is Euler degrees.
func integrate(b *bodyState, dt float32) {
	const radToDeg = 180 / math32.Pi

	delta := maskFrozen(rl.Vector3Scale(b.rb.Velocity, dt), b.rb.FreezePosition)
	if delta.X != 0 || delta.Y != 0 || delta.Z != 0 {
		b.node.SetWorldPosition(rl.Vector3Add(b.node.WorldPosition(), delta))
	}

	spin := maskFrozen(rl.Vector3Scale(b.rb.AngularVelocity, dt*radToDeg), b.rb.FreezeRotation)
	if spin.X != 0 || spin.Y != 0 || spin.Z != 0 {
		b.node.Transform.Rotation = rl.Vector3Add(b.node.Transform.Rotation, spin)
	}
}

// finalizeBody re-applies the freeze constraints and snaps near-zero
// velocities to exactly zero so settled bodies report a true rest state.
func (p *PhysicsWorld) finalizeBody(rb *components.Rigidbody) {
	applyFreeze(rb)
	if rl.Vector3DotProduct(rb.Velocity, rb.Velocity) < p.params.SnapEpsilon {
		rb.Velocity = rl.Vector3{}
	}
	if rl.Vector3DotProduct(rb.AngularVelocity, rb.AngularVelocity) < p.params.SnapEpsilon {
		rb.AngularVelocity = rl.Vector3{}
	}
}

func applyFreeze(rb *components.Rigidbody) {
	rb.Velocity = maskFrozen(rb.Velocity, rb.FreezePosition)
	rb.AngularVelocity = maskFrozen(rb.AngularVelocity, rb.FreezeRotation)
}

// sanitize resets a non-finite vector to zero; one bad body must not
// poison the step.
func sanitize(v rl.Vector3) rl.Vector3 {
	if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
		return rl.Vector3{}
	}
	return v
}
