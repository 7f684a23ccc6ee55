package physics

import (
	"testing"

	"kin3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherContactsSkipsOwnNode(t *testing.T) {
	node := nodeAt(rl.Vector3{}, rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})

	// Two overlapping colliders on the same node must not collide with
	// each other.
	a := components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	b := components.NewSphereCollider(0.5)
	sa := mustShape(t, a, node)
	sb := mustShape(t, b, node)

	contacts := gatherContacts([]ShapeWorld{sa, sb}, []ShapeWorld{sa, sb})
	assert.Empty(t, contacts)
}

func TestGatherContactsKeepsAllHits(t *testing.T) {
	capsule := capsuleYAt(t, 0.5, 3, rl.Vector3{})
	big := shapeAt(t, components.NewBoxCollider(rl.Vector3{X: 10, Y: 10, Z: 10}), rl.Vector3{})

	contacts := gatherContacts([]ShapeWorld{capsule}, []ShapeWorld{capsule, big})
	require.Len(t, contacts, 3)
	for _, c := range contacts {
		assert.Equal(t, capsule.Collider, c.Collider)
		assert.Equal(t, big.Collider, c.Other)
		assert.Equal(t, big.Node, c.OtherNode)
	}
}

func TestDedupePairs(t *testing.T) {
	capsule := capsuleYAt(t, 0.5, 3, rl.Vector3{})
	big := shapeAt(t, components.NewBoxCollider(rl.Vector3{X: 10, Y: 10, Z: 10}), rl.Vector3{})
	ball := sphereAt(t, 1, rl.Vector3{X: 0.5})

	contacts := gatherContacts([]ShapeWorld{capsule}, []ShapeWorld{big, ball})
	require.Greater(t, len(contacts), 2)

	pairs := dedupePairs(contacts)
	assert.Len(t, pairs, 2)
}
