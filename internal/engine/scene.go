package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes the object and all of its children from the
// scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.uidMap, g.UID)
			g.Scene = nil
			return
		}
	}
}

// FindByUID returns the GameObject with the given UID, or nil. O(1).
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Roots returns the top-level objects (no parent).
func (s *Scene) Roots() []*GameObject {
	var roots []*GameObject
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			roots = append(roots, g)
		}
	}
	return roots
}

// ActiveObjects returns every active object, walking roots and their
// children recursively. An inactive object hides its whole subtree.
func (s *Scene) ActiveObjects() []*GameObject {
	var result []*GameObject
	for _, g := range s.Roots() {
		result = appendActive(result, g)
	}
	return result
}

func appendActive(dst []*GameObject, g *GameObject) []*GameObject {
	if !g.Active {
		return dst
	}
	dst = append(dst, g)
	for _, child := range g.Children {
		dst = appendActive(dst, child)
	}
	return dst
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
