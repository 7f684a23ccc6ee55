package engine

import "testing"

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}

	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	if found := scene.FindByUID(obj.UID); found != obj {
		t.Errorf("FindByUID failed: expected %v, got %v", obj, found)
	}

	if scene.FindByUID(99999999) != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Enemy")

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj2 {
		t.Error("Wrong GameObject removed")
	}

	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected 0 GameObjects, got %d", len(scene.GameObjects))
	}

	if scene.FindByUID(child.UID) != nil {
		t.Error("Child still in UID map after removal")
	}
}

func TestSceneFindByName(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("UniquePlayer")

	scene.AddGameObject(obj)

	if scene.FindByName("UniquePlayer") != obj {
		t.Error("FindByName failed")
	}

	if scene.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Enemy1")
	obj2 := NewGameObject("Enemy2")
	obj3 := NewGameObject("Player")

	obj1.Tags = []string{"enemy", "ai"}
	obj2.Tags = []string{"enemy"}
	obj3.Tags = []string{"player"}

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	if enemies := scene.FindByTag("enemy"); len(enemies) != 2 {
		t.Errorf("Expected 2 enemies, got %d", len(enemies))
	}
}

func TestSceneActiveObjects(t *testing.T) {
	scene := NewScene("Test")

	root := NewGameObject("Root")
	child := NewGameObject("Child")
	grandchild := NewGameObject("Grandchild")
	hidden := NewGameObject("Hidden")
	hiddenChild := NewGameObject("HiddenChild")

	scene.AddGameObject(root)
	scene.AddGameObject(child)
	scene.AddGameObject(grandchild)
	scene.AddGameObject(hidden)
	scene.AddGameObject(hiddenChild)

	root.AddChild(child)
	child.AddChild(grandchild)
	root.AddChild(hidden)
	hidden.AddChild(hiddenChild)

	// An inactive object hides its whole subtree, active or not.
	hidden.Active = false
	hiddenChild.Active = true

	active := scene.ActiveObjects()
	if len(active) != 3 {
		t.Fatalf("Expected 3 active objects, got %d", len(active))
	}
	for _, g := range active {
		if g == hidden || g == hiddenChild {
			t.Errorf("Inactive subtree object %q should not be returned", g.Name)
		}
	}
}

func TestSceneUIDMapInitialization(t *testing.T) {
	scene := &Scene{Name: "Bare"}
	obj := NewGameObject("Test")
	scene.AddGameObject(obj) // must not panic on a zero-value scene

	if scene.FindByUID(obj.UID) != obj {
		t.Error("uidMap should be initialized on first AddGameObject")
	}
}
