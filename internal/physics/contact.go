package physics

import (
	"kin3d/internal/components"
	"kin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is an ephemeral contact record, rebuilt from scratch every
// step. The normal points from the other shape toward the owning body.
type Contact struct {
	Normal rl.Vector3
	Depth  float32
	Point  rl.Vector3

	Collider  *components.Collider // on the body being solved
	Other     *components.Collider
	OtherNode *engine.GameObject
}

// colliderPair identifies a shape pair for the positional pass, which
// re-runs the narrow phase after integration has moved the geometry.
type colliderPair struct {
	collider  *components.Collider
	other     *components.Collider
	otherNode *engine.GameObject
}

// gatherContacts tests each of the body's shapes against every other
// shape in the scene, skipping shapes on the body's own node. All hits
// are kept, so a capsule can carry several contacts against one shape.
func gatherContacts(own []ShapeWorld, all []ShapeWorld) []Contact {
	var contacts []Contact
	for _, a := range own {
		for _, b := range all {
			if b.Node == a.Node {
				continue
			}
			for _, h := range Collide(a, b) {
				contacts = append(contacts, Contact{
					Normal:    h.Normal,
					Depth:     h.Depth,
					Point:     h.Point,
					Collider:  a.Collider,
					Other:     b.Collider,
					OtherNode: b.Node,
				})
			}
		}
	}
	return contacts
}

// dedupePairs collapses a contact list to its distinct collider pairs.
func dedupePairs(contacts []Contact) []colliderPair {
	var pairs []colliderPair
	for _, c := range contacts {
		seen := false
		for _, p := range pairs {
			if p.collider == c.Collider && p.other == c.Other {
				seen = true
				break
			}
		}
		if !seen {
			pairs = append(pairs, colliderPair{
				collider:  c.Collider,
				other:     c.Other,
				otherNode: c.OtherNode,
			})
		}
	}
	return pairs
}
