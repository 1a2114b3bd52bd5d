package scenes

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/physics"
	"gopkg.in/yaml.v3"
)

func TestParseSceneVectorForms(t *testing.T) {
	spec, err := ParseScene([]byte(`
name: vectors
gravity: {x: 1, y: -2}
bodies:
  - name: a
    position: [3, 4]
    collider: {shape: disc, radius: 1}
  - name: b
    position: {x: -1, y: 0.5}
    collider: {shape: box, size: [2, 1]}
`))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if spec.Gravity == nil || spec.Gravity.Vector() != (cp.Vector{X: 1, Y: -2}) {
		t.Fatalf("gravity = %v", spec.Gravity)
	}
	if got := spec.Bodies[0].Position.Vector(); got != (cp.Vector{X: 3, Y: 4}) {
		t.Fatalf("sequence form = %v", got)
	}
	if got := spec.Bodies[1].Position.Vector(); got != (cp.Vector{X: -1, Y: 0.5}) {
		t.Fatalf("mapping form = %v", got)
	}

	if _, err := ParseScene([]byte("name: bad\nbodies:\n  - name: a\n    position: [1, 2, 3]\n    collider: {shape: disc, radius: 1}\n")); err == nil {
		t.Fatalf("expected error for a three component vector")
	}
}

func TestValidateRejectsBadScenes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"concave", "collider: {shape: polygon, points: [[0,0],[2,0],[1,0.5],[2,2],[0,2]]}", "not convex"},
		{"too_few_points", "collider: {shape: polygon, points: [[0,0],[1,0]]}", "at least 3"},
		{"unknown_shape", "collider: {shape: capsule}", "unknown collider shape"},
		{"zero_radius", "collider: {shape: disc, radius: 0}", "radius"},
		{"flat_box", "collider: {shape: box, size: [1, 0]}", "box size"},
		{"bad_mode", "mode: floating\n    collider: {shape: disc, radius: 1}", "simulation mode"},
		{"bad_layer", "layer: 32\n    collider: {shape: disc, radius: 1}", "layer"},
		{"bad_restitution", "collider: {shape: disc, radius: 1, restitution: 2}", "restitution"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := "name: bad\nbodies:\n  - name: a\n    " + c.body + "\n"
			_, err := ParseScene([]byte(src))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error %q should mention %q", err, c.want)
			}
		})
	}

	dup := SceneSpec{Bodies: []BodySpec{
		{Name: "a", Collider: ColliderSpec{Shape: "disc", Radius: 1}},
		{Name: "a", Collider: ColliderSpec{Shape: "disc", Radius: 1}},
	}}
	if err := dup.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	wrapped := ColliderSpec{Shape: "polygon", GiftWrap: true, Points: []Vec2Spec{{0, 0}, {2, 0}, {1, 0.5}, {2, 2}, {0, 2}}}
	if err := wrapped.validate(); err != nil {
		t.Fatalf("gift wrapped cloud should validate: %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	var c YAMLColor
	if err := yaml.Unmarshal([]byte(`"#ff000080"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Color != (color.NRGBA{R: 0xff, A: 0x80}) {
		t.Fatalf("color = %#v", c.Color)
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back YAMLColor
	if err := yaml.Unmarshal(out, &back); err != nil || back.Color != c.Color {
		t.Fatalf("round trip of %q = %#v, %v", out, back.Color, err)
	}

	for _, bad := range []string{`"#fff"`, `"#gg0000"`, `[1, 2]`} {
		if err := yaml.Unmarshal([]byte(bad), &c); err == nil {
			t.Fatalf("expected error for %s", bad)
		}
	}
}

func TestEmbeddedScenesBuildAndRun(t *testing.T) {
	names := List()
	if len(names) == 0 {
		t.Fatalf("no embedded scenes")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			scene, err := LoadAndBuild(name)
			if err != nil {
				t.Fatalf("LoadAndBuild: %v", err)
			}
			if len(scene.Bodies()) == 0 {
				t.Fatalf("scene has no bodies")
			}
			dt := scene.Physics.FixedDeltaTime()
			for range 240 {
				scene.Physics.AdvanceSimulation(dt)
			}
			for _, sb := range scene.Bodies() {
				p := sb.Body.Position()
				if math.IsNaN(p.X) || math.IsNaN(p.Y) {
					t.Fatalf("%s position is NaN", sb.Name)
				}
			}
		})
	}
}

func TestBuildAppliesSpec(t *testing.T) {
	restitution := 0.25
	spec := SceneSpec{
		Name:          "built",
		Gravity:       &Vec2Spec{X: 0, Y: -1},
		DisableLayers: [][2]uint{{1, 2}},
		Bodies: []BodySpec{
			{
				Name:     "wall",
				Mode:     "static",
				Position: Vec2Spec{X: 5, Y: 0},
				Rotation: 90,
				Velocity: Vec2Spec{X: 3, Y: 3},
				Layer:    1,
				Collider: ColliderSpec{Shape: "box", Size: Vec2Spec{X: 2, Y: 1}, Restitution: &restitution},
			},
			{
				Name:     "sensor",
				Mode:     "kinematic",
				Mass:     4,
				Layer:    2,
				Disabled: true,
				Collider: ColliderSpec{Shape: "disc", Radius: 0.5, Offset: Vec2Spec{X: 1}, Trigger: true},
			},
		},
	}

	scene, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	world := scene.Physics
	if world.SceneGravity() != (cp.Vector{Y: -1}) {
		t.Fatalf("gravity = %v", world.SceneGravity())
	}
	if world.DoLayersInteract(1, 2) || !world.DoLayersInteract(1, 1) {
		t.Fatalf("layer matrix not applied")
	}

	wall, ok := scene.Body("wall")
	if !ok {
		t.Fatalf("wall missing")
	}
	rb := wall.Body
	if rb.Mode() != physics.ModeStatic || rb.Layer() != 1 || rb.Velocity() != (cp.Vector{}) {
		t.Fatalf("wall body = mode %v layer %d velocity %v", rb.Mode(), rb.Layer(), rb.Velocity())
	}
	if math.Abs(rb.Rotation()-math.Pi/2) > 1e-12 {
		t.Fatalf("rotation = %v, want pi/2", rb.Rotation())
	}
	if got := rb.Collider().Material(); got.Restitution != 0.25 || got.Friction != physics.DefaultMaterial.Friction {
		t.Fatalf("material = %+v", got)
	}
	if BodyName(rb) != "wall" {
		t.Fatalf("BodyName = %q", BodyName(rb))
	}

	sensor, _ := scene.Body("sensor")
	if !sensor.Body.Collider().IsTrigger() || sensor.Body.IsEnabled() || sensor.Body.Mass() != 4 {
		t.Fatalf("sensor not configured: trigger=%v enabled=%v mass=%v",
			sensor.Body.Collider().IsTrigger(), sensor.Body.IsEnabled(), sensor.Body.Mass())
	}
	if got := sensor.Body.Collider().WorldPosition(); got != (cp.Vector{X: 1}) {
		t.Fatalf("collider offset not applied: %v", got)
	}
}

const scriptedScene = `
name: scripted
gravity: [0, 0]
bodies:
  - name: zone
    mode: kinematic
    script: destroy_on_enter
    collider: {shape: disc, radius: 1, trigger: true}
  - name: coin_a
    position: [0.5, 0]
    collider: {shape: disc, radius: 0.25}
  - name: rock
    position: [-0.5, 0]
    collider: {shape: disc, radius: 0.25}
`

func TestScriptDestroysCollectedBodies(t *testing.T) {
	spec, err := ParseScene([]byte(scriptedScene))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	scene, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	scene.Physics.AdvanceSimulation(scene.Physics.FixedDeltaTime())

	if _, ok := scene.Body("coin_a"); ok {
		t.Fatalf("coin should have been collected")
	}
	if _, ok := scene.Body("rock"); !ok {
		t.Fatalf("rock should survive")
	}
	if n := len(scene.Physics.Rigidbodies()); n != 2 {
		t.Fatalf("expected 2 bodies left, got %d", n)
	}
	state, ok := scene.Scripts().State("zone")
	if !ok || state["collected"] != 1 {
		t.Fatalf("script state = %v", state)
	}
}

func TestScriptCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ok   bool
	}{
		{"valid", "on_contact := func(engine, event, contact, state) {}", true},
		{"missing_handler", "x := 1", false},
		{"syntax", "on_contact := func(", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := compileContactScript([]byte(c.src))
			if (err == nil) != c.ok {
				t.Fatalf("compile err = %v, want ok=%v", err, c.ok)
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	scene, err := LoadAndBuild("floor_and_discs")
	if err != nil {
		t.Fatalf("LoadAndBuild: %v", err)
	}
	for range 60 {
		scene.Physics.AdvanceSimulation(scene.Physics.FixedDeltaTime())
	}

	data, err := scene.Snapshot().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	restored, err := ParseScene(data)
	if err != nil {
		t.Fatalf("ParseScene(snapshot): %v\n%s", err, data)
	}
	rebuilt, err := Build(restored)
	if err != nil {
		t.Fatalf("Build(snapshot): %v", err)
	}

	for _, sb := range scene.Bodies() {
		other, ok := rebuilt.Body(sb.Name)
		if !ok {
			t.Fatalf("%s missing from snapshot", sb.Name)
		}
		if other.Body.Position() != sb.Body.Position() || other.Body.Velocity() != sb.Body.Velocity() {
			t.Fatalf("%s: rebuilt %v/%v, live %v/%v", sb.Name,
				other.Body.Position(), other.Body.Velocity(), sb.Body.Position(), sb.Body.Velocity())
		}
		if math.Abs(other.Body.Rotation()-sb.Body.Rotation()) > 1e-9 {
			t.Fatalf("%s rotation %v vs %v", sb.Name, other.Body.Rotation(), sb.Body.Rotation())
		}
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, scene, script string
	}{
		{"floor", "floor.yaml", "scripts/floor.tengo"},
		{"scenes/floor.yaml", "floor.yaml", "scripts/floor.yaml"},
		{"scripts/bounce.tengo", "scripts/bounce.tengo", "scripts/bounce.tengo"},
		{"scenes/scripts/bounce", "scripts/bounce.yaml", "scripts/bounce.tengo"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanScenePath(c.in); got != c.scene {
				t.Fatalf("cleanScenePath(%q) = %q, want %q", c.in, got, c.scene)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
			}
		})
	}
}

func TestWatcherReportsSceneEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("event for %q, want %q", name, target)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}
