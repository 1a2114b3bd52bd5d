package scenes

import (
	"fmt"
	"image/color"

	"github.com/milk9111/doomenstein/geom"
	"github.com/milk9111/doomenstein/physics"
)

// Scene is a Physics2D populated from a SceneSpec, with its bodies
// addressable by name.
type Scene struct {
	Name    string
	Physics *physics.Physics2D

	spec    SceneSpec
	bodies  []*SceneBody
	byName  map[string]*SceneBody
	scripts *ScriptRuntime
}

type SceneBody struct {
	Name   string
	Body   *physics.Rigidbody2D
	Color  color.Color
	Script string
}

// Build validates spec and creates its world. Options are applied before the
// scene's own gravity and fixed step.
func Build(spec SceneSpec, opts ...physics.Option) (*Scene, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenes: build %s: %w", spec.Name, err)
	}

	all := append([]physics.Option(nil), opts...)
	if spec.Gravity != nil {
		all = append(all, physics.WithGravity(spec.Gravity.Vector()))
	}
	if spec.FixedDeltaTime > 0 {
		all = append(all, physics.WithFixedDeltaTime(spec.FixedDeltaTime))
	}

	world := physics.New(all...)
	for _, pair := range spec.DisableLayers {
		world.DisableLayerInteraction(pair[0], pair[1])
	}

	scene := &Scene{
		Name:    spec.Name,
		Physics: world,
		spec:    spec,
		byName:  make(map[string]*SceneBody, len(spec.Bodies)),
	}
	scene.scripts = NewScriptRuntime(scene, LoadScript)

	for _, b := range spec.Bodies {
		if err := scene.addBody(b); err != nil {
			return nil, fmt.Errorf("scenes: build %s: body %q: %w", spec.Name, b.Name, err)
		}
	}
	return scene, nil
}

// LoadAndBuild loads, validates and builds a scene file.
func LoadAndBuild(filename string, opts ...physics.Option) (*Scene, error) {
	spec, err := LoadScene(filename)
	if err != nil {
		return nil, err
	}
	return Build(spec, opts...)
}

func (s *Scene) addBody(b BodySpec) error {
	mode, err := physics.ParseSimulationMode(b.Mode)
	if err != nil {
		return err
	}

	rb := s.Physics.CreateRigidbody()
	rb.SetMode(mode)
	if b.Mass > 0 {
		rb.SetMass(b.Mass)
	}
	rb.SetDrag(b.Drag)
	rb.SetLayer(b.Layer)
	rb.SetEnabled(!b.Disabled)

	c := newCollider(s.Physics, b.Collider)
	c.SetMaterial(b.Collider.material())
	c.SetTrigger(b.Collider.Trigger)
	rb.TakeCollider(c)

	rb.SetPosition(b.Position.Vector())
	rb.SetRotation(geom.DegreesToRadians(b.Rotation))
	if mode != physics.ModeStatic {
		rb.SetVelocity(b.Velocity.Vector())
		rb.SetAngularVelocity(geom.DegreesToRadians(b.AngularVelocity))
	}

	sb := &SceneBody{Name: b.Name, Body: rb, Script: b.Script}
	if b.Color != nil {
		sb.Color = b.Color.Color
	}
	rb.SetUserData(b.Name, sb)

	s.bodies = append(s.bodies, sb)
	s.byName[b.Name] = sb

	if b.Script != "" {
		if err := s.scripts.Attach(sb); err != nil {
			return fmt.Errorf("script %s: %w", b.Script, err)
		}
	}
	return nil
}

func newCollider(world *physics.Physics2D, c ColliderSpec) physics.Collider2D {
	if c.Shape == "disc" {
		return world.CreateDiscCollider(c.Offset.Vector(), c.Radius)
	}
	return world.CreatePolygonCollider(c.Offset.Vector(), c.points(), c.GiftWrap)
}

// Bodies returns the scene bodies that have not been destroyed.
func (s *Scene) Bodies() []*SceneBody {
	out := make([]*SceneBody, 0, len(s.bodies))
	for _, sb := range s.bodies {
		if !sb.Body.IsDestroyed() {
			out = append(out, sb)
		}
	}
	return out
}

func (s *Scene) Body(name string) (*SceneBody, bool) {
	sb, ok := s.byName[name]
	if !ok || sb.Body.IsDestroyed() {
		return nil, false
	}
	return sb, true
}

func (s *Scene) Spec() SceneSpec {
	return s.spec
}

func (s *Scene) Scripts() *ScriptRuntime {
	return s.scripts
}

// Snapshot is the scene's spec with every live body's current state written
// back. Destroyed bodies are left out.
func (s *Scene) Snapshot() SceneSpec {
	out := s.spec
	out.Bodies = make([]BodySpec, 0, len(s.spec.Bodies))
	for _, b := range s.spec.Bodies {
		sb, ok := s.Body(b.Name)
		if !ok {
			continue
		}
		rb := sb.Body
		b.Mode = rb.Mode().String()
		b.Position = Vec2SpecOf(rb.Position())
		b.Rotation = geom.RadiansToDegrees(rb.Rotation())
		b.Velocity = Vec2SpecOf(rb.Velocity())
		b.AngularVelocity = geom.RadiansToDegrees(rb.AngularVelocity())
		b.Layer = rb.Layer()
		b.Disabled = !rb.IsEnabled()
		out.Bodies = append(out.Bodies, b)
	}
	return out
}

// BodyName is the scene name of rb, or "" if rb was not built by a scene.
func BodyName(rb *physics.Rigidbody2D) string {
	if rb == nil {
		return ""
	}
	if sb, ok := rb.UserData().(*SceneBody); ok {
		return sb.Name
	}
	return rb.UserTag()
}
