package scenes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/geom"
	"github.com/milk9111/doomenstein/physics"
	"gopkg.in/yaml.v3"
)

type SceneSpec struct {
	Name           string     `yaml:"name"`
	Gravity        *Vec2Spec  `yaml:"gravity,omitempty"`
	FixedDeltaTime float64    `yaml:"fixed_dt,omitempty"`
	DisableLayers  [][2]uint  `yaml:"disable_layers,omitempty"`
	Camera         CameraSpec `yaml:"camera,omitempty"`
	Background     *YAMLColor `yaml:"background,omitempty"`
	Bodies         []BodySpec `yaml:"bodies"`
}

type CameraSpec struct {
	Center Vec2Spec `yaml:"center,omitempty"`
	Zoom   float64  `yaml:"zoom,omitempty"`
}

type BodySpec struct {
	Name            string       `yaml:"name"`
	Mode            string       `yaml:"mode,omitempty"`
	Position        Vec2Spec     `yaml:"position"`
	Rotation        float64      `yaml:"rotation,omitempty"`
	Velocity        Vec2Spec     `yaml:"velocity,omitempty"`
	AngularVelocity float64      `yaml:"angular_velocity,omitempty"`
	Mass            float64      `yaml:"mass,omitempty"`
	Drag            float64      `yaml:"drag,omitempty"`
	Layer           uint         `yaml:"layer,omitempty"`
	Disabled        bool         `yaml:"disabled,omitempty"`
	Script          string       `yaml:"script,omitempty"`
	Color           *YAMLColor   `yaml:"color,omitempty"`
	Collider        ColliderSpec `yaml:"collider"`
}

// ColliderSpec describes one of three shapes: "disc" uses Radius, "box" uses
// Size and "polygon" uses Points.
type ColliderSpec struct {
	Shape       string     `yaml:"shape"`
	Offset      Vec2Spec   `yaml:"offset,omitempty"`
	Radius      float64    `yaml:"radius,omitempty"`
	Size        Vec2Spec   `yaml:"size,omitempty"`
	Points      []Vec2Spec `yaml:"points,omitempty"`
	GiftWrap    bool       `yaml:"gift_wrap,omitempty"`
	Trigger     bool       `yaml:"trigger,omitempty"`
	Restitution *float64   `yaml:"restitution,omitempty"`
	Friction    *float64   `yaml:"friction,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene reads and validates a scene by file name.
func LoadScene(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("scenes: %s: %w", filename, err)
	}
	return spec, nil
}

func ParseScene(data []byte) (SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("scenes: unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, err
	}
	return spec, nil
}

func (s SceneSpec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate reports the problems the engine would otherwise panic on.
func (s SceneSpec) Validate() error {
	if s.FixedDeltaTime < 0 {
		return fmt.Errorf("fixed_dt must not be negative, got %v", s.FixedDeltaTime)
	}
	for _, pair := range s.DisableLayers {
		if pair[0] >= physics.MaxLayers || pair[1] >= physics.MaxLayers {
			return fmt.Errorf("disable_layers: layer out of range in %v", pair)
		}
	}

	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		name := b.Name
		if name == "" {
			return fmt.Errorf("body %d: missing name", i)
		}
		if seen[name] {
			return fmt.Errorf("body %q: duplicate name", name)
		}
		seen[name] = true

		if err := b.validate(); err != nil {
			return fmt.Errorf("body %q: %w", name, err)
		}
	}
	return nil
}

func (b BodySpec) validate() error {
	if _, err := physics.ParseSimulationMode(b.Mode); err != nil {
		return err
	}
	if b.Mass < 0 {
		return fmt.Errorf("mass must be positive, got %v", b.Mass)
	}
	if b.Layer >= physics.MaxLayers {
		return fmt.Errorf("layer %d out of range", b.Layer)
	}
	return b.Collider.validate()
}

func (c ColliderSpec) validate() error {
	switch c.Shape {
	case "disc":
		if c.Radius <= 0 {
			return fmt.Errorf("disc radius must be positive, got %v", c.Radius)
		}
	case "box":
		if c.Size.X <= 0 || c.Size.Y <= 0 {
			return fmt.Errorf("box size must be positive, got %v", c.Size.Vector())
		}
	case "polygon":
		points := c.points()
		if c.GiftWrap {
			points = geom.GiftWrap(points)
		}
		poly := geom.NewPolygon2D(points)
		if !poly.IsValid() {
			return fmt.Errorf("polygon needs at least 3 distinct points, got %d", len(c.Points))
		}
		if !poly.IsConvex() {
			return fmt.Errorf("polygon is not convex")
		}
	default:
		return fmt.Errorf("unknown collider shape %q", c.Shape)
	}
	if c.Restitution != nil && (*c.Restitution < 0 || *c.Restitution > 1) {
		return fmt.Errorf("restitution must be in [0,1], got %v", *c.Restitution)
	}
	if c.Friction != nil && *c.Friction < 0 {
		return fmt.Errorf("friction must not be negative, got %v", *c.Friction)
	}
	return nil
}

func (c ColliderSpec) points() []cp.Vector {
	if c.Shape == "box" {
		half := c.Size.Vector().Mult(0.5)
		return geom.NewAABB2FromCenter(cp.Vector{}, half).Points()
	}
	out := make([]cp.Vector, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Vector()
	}
	return out
}

func (c ColliderSpec) material() physics.PhysicsMaterial {
	m := physics.DefaultMaterial
	if c.Restitution != nil {
		m.Restitution = *c.Restitution
	}
	if c.Friction != nil {
		m.Friction = *c.Friction
	}
	return physics.NewPhysicsMaterial(m.Restitution, m.Friction)
}

// Vec2Spec reads either a two element sequence or an {x, y} mapping.
type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func Vec2SpecOf(v cp.Vector) Vec2Spec {
	return Vec2Spec{X: v.X, Y: v.Y}
}

func (v Vec2Spec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func (v Vec2Spec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v *Vec2Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: vector needs 2 components, got %d", value.Line, len(xy))
		}
		v.X, v.Y = xy[0], xy[1]
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		v.X, v.Y = m.X, m.Y
	default:
		return fmt.Errorf("line %d: vector must be [x, y] or {x, y}", value.Line)
	}
	return nil
}

func (v Vec2Spec) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v.X, 'g', -1, 64)},
			{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v.Y, 'g', -1, 64)},
		},
	}, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
