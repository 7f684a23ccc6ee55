package scenefile

import (
	"encoding/json"
	"fmt"
	"os"

	"kin3d/internal/components"
	"kin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Active     *bool             `json:"active,omitempty"`
	Components []json.RawMessage `json:"components,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type boxColliderDef struct {
	Type      string     `json:"type"`
	Size      [3]float32 `json:"size"`
	Center    [3]float32 `json:"center,omitempty"`
	IsTrigger bool       `json:"isTrigger,omitempty"`
	Disabled  bool       `json:"disabled,omitempty"`
}

type sphereColliderDef struct {
	Type      string     `json:"type"`
	Radius    float32    `json:"radius"`
	Center    [3]float32 `json:"center,omitempty"`
	IsTrigger bool       `json:"isTrigger,omitempty"`
	Disabled  bool       `json:"disabled,omitempty"`
}

type capsuleColliderDef struct {
	Type      string     `json:"type"`
	Radius    float32    `json:"radius"`
	Height    float32    `json:"height"`
	Axis      string     `json:"axis,omitempty"` // "x", "y" (default), "z"
	Center    [3]float32 `json:"center,omitempty"`
	IsTrigger bool       `json:"isTrigger,omitempty"`
	Disabled  bool       `json:"disabled,omitempty"`
}

type rigidbodyDef struct {
	Type           string  `json:"type"`
	Mass           float32 `json:"mass,omitempty"`
	Drag           float32 `json:"drag,omitempty"`
	AngularDrag    float32 `json:"angularDrag,omitempty"`
	UseGravity     *bool   `json:"useGravity,omitempty"`
	IsKinematic    bool    `json:"isKinematic,omitempty"`
	FreezePosition [3]bool `json:"freezePosition,omitempty"`
	FreezeRotation [3]bool `json:"freezeRotation,omitempty"`
}

// --- Loading ---

// Load reads a JSON scene file and builds a Scene from it.
func Load(path string) (*engine.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return Build(&file)
}

// Build turns a parsed SceneFile into a live Scene.
func Build(file *SceneFile) (*engine.Scene, error) {
	name := file.Name
	if name == "" {
		name = "scene"
	}
	scene := engine.NewScene(name)

	for i := range file.Objects {
		def := &file.Objects[i]
		obj, err := buildObject(def)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		scene.AddGameObject(obj)
	}
	return scene, nil
}

func buildObject(def *ObjectDef) (*engine.GameObject, error) {
	obj := engine.NewGameObject(def.Name)
	obj.Tags = def.Tags
	obj.Transform.Position = vec3(def.Position)
	obj.Transform.Rotation = vec3(def.Rotation)
	if def.Scale == ([3]float32{}) {
		obj.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		obj.Transform.Scale = vec3(def.Scale)
	}
	if def.Active != nil {
		obj.Active = *def.Active
	}

	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("component header: %w", err)
		}
		comp, err := buildComponent(header.Type, raw)
		if err != nil {
			return nil, err
		}
		obj.AddComponent(comp)
	}
	return obj, nil
}

func buildComponent(kind string, raw json.RawMessage) (engine.Component, error) {
	switch kind {
	case "boxCollider":
		var def boxColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("boxCollider: %w", err)
		}
		col := components.NewBoxCollider(vec3(def.Size))
		col.Center = vec3(def.Center)
		col.IsTrigger = def.IsTrigger
		col.Enabled = !def.Disabled
		return col, nil

	case "sphereCollider":
		var def sphereColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("sphereCollider: %w", err)
		}
		col := components.NewSphereCollider(def.Radius)
		col.Center = vec3(def.Center)
		col.IsTrigger = def.IsTrigger
		col.Enabled = !def.Disabled
		return col, nil

	case "capsuleCollider":
		var def capsuleColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("capsuleCollider: %w", err)
		}
		axis, err := parseAxis(def.Axis)
		if err != nil {
			return nil, err
		}
		col := components.NewCapsuleCollider(def.Radius, def.Height, axis)
		col.Center = vec3(def.Center)
		col.IsTrigger = def.IsTrigger
		col.Enabled = !def.Disabled
		return col, nil

	case "rigidbody":
		var def rigidbodyDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("rigidbody: %w", err)
		}
		rb := components.NewRigidbody()
		if def.Mass != 0 {
			rb.Mass = def.Mass
		}
		rb.Drag = def.Drag
		if def.AngularDrag != 0 {
			rb.AngularDrag = def.AngularDrag
		}
		if def.UseGravity != nil {
			rb.UseGravity = *def.UseGravity
		}
		rb.IsKinematic = def.IsKinematic
		rb.FreezePosition = def.FreezePosition
		rb.FreezeRotation = def.FreezeRotation
		return rb, nil
	}
	return nil, fmt.Errorf("unknown component type %q", kind)
}

func parseAxis(s string) (components.CapsuleAxis, error) {
	switch s {
	case "x":
		return components.CapsuleX, nil
	case "", "y":
		return components.CapsuleY, nil
	case "z":
		return components.CapsuleZ, nil
	}
	return 0, fmt.Errorf("unknown capsule axis %q", s)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Saving ---

// Save writes the scene's root objects back out as a scene file.
// Component state that the file format cannot express is dropped.
func Save(path string, scene *engine.Scene) error {
	file := SceneFile{Name: scene.Name}
	for _, obj := range scene.Roots() {
		file.Objects = append(file.Objects, objectDef(obj))
	}
	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func objectDef(obj *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:     obj.Name,
		Tags:     obj.Tags,
		Position: arr3(obj.Transform.Position),
		Rotation: arr3(obj.Transform.Rotation),
		Scale:    arr3(obj.Transform.Scale),
	}
	if !obj.Active {
		active := false
		def.Active = &active
	}
	for _, comp := range obj.Components() {
		if raw, ok := componentDef(comp); ok {
			def.Components = append(def.Components, raw)
		}
	}
	return def
}

func componentDef(comp engine.Component) (json.RawMessage, bool) {
	switch c := comp.(type) {
	case *components.Collider:
		return colliderDef(c)
	case *components.Rigidbody:
		useGravity := c.UseGravity
		raw, err := json.Marshal(rigidbodyDef{
			Type:           "rigidbody",
			Mass:           c.Mass,
			Drag:           c.Drag,
			AngularDrag:    c.AngularDrag,
			UseGravity:     &useGravity,
			IsKinematic:    c.IsKinematic,
			FreezePosition: c.FreezePosition,
			FreezeRotation: c.FreezeRotation,
		})
		return raw, err == nil
	}
	return nil, false
}

func colliderDef(c *components.Collider) (json.RawMessage, bool) {
	var def any
	switch c.Shape {
	case components.ShapeBox:
		def = boxColliderDef{
			Type:      "boxCollider",
			Size:      arr3(c.Size),
			Center:    arr3(c.Center),
			IsTrigger: c.IsTrigger,
			Disabled:  !c.Enabled,
		}
	case components.ShapeSphere:
		def = sphereColliderDef{
			Type:      "sphereCollider",
			Radius:    c.Radius,
			Center:    arr3(c.Center),
			IsTrigger: c.IsTrigger,
			Disabled:  !c.Enabled,
		}
	case components.ShapeCapsule:
		def = capsuleColliderDef{
			Type:      "capsuleCollider",
			Radius:    c.Radius,
			Height:    c.Height,
			Axis:      axisName(c.Axis),
			Center:    arr3(c.Center),
			IsTrigger: c.IsTrigger,
			Disabled:  !c.Enabled,
		}
	default:
		return nil, false
	}
	raw, err := json.Marshal(def)
	return raw, err == nil
}

func axisName(a components.CapsuleAxis) string {
	switch a {
	case components.CapsuleX:
		return "x"
	case components.CapsuleZ:
		return "z"
	}
	return "y"
}

func arr3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
