package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/ecs"
	"github.com/milk9111/doomenstein/physics"
)

// Scripts define
//
//	on_contact := func(engine, event, contact, state) { ... }
//
// which runs for every contact event of the body the script is attached to.
// event is one of overlap_begin, overlap_stay, overlap_end, trigger_begin,
// trigger_stay and trigger_end.
const contactDispatchScript = `
on_contact(__engine, __event, __contact, __state)
`

type ScriptRuntime struct {
	scene   *Scene
	load    func(string) ([]byte, error)
	scripts map[string]*bodyScript
	engine  *tengo.ImmutableMap
}

type bodyScript struct {
	path     string
	body     *SceneBody
	compiled *tengo.Compiled
	state    *tengo.Map
}

func NewScriptRuntime(scene *Scene, load func(string) ([]byte, error)) *ScriptRuntime {
	rt := &ScriptRuntime{
		scene:   scene,
		load:    load,
		scripts: map[string]*bodyScript{},
	}
	rt.engine = buildScriptEngine(scene)
	return rt
}

// Attach compiles sb's script and subscribes it to sb's contact events.
func (rt *ScriptRuntime) Attach(sb *SceneBody) error {
	if rt == nil || sb == nil || strings.TrimSpace(sb.Script) == "" {
		return fmt.Errorf("invalid script attachment")
	}

	src, err := rt.load(sb.Script)
	if err != nil {
		return err
	}
	compiled, err := compileContactScript(src)
	if err != nil {
		return err
	}

	bs := &bodyScript{
		path:     sb.Script,
		body:     sb,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	rt.scripts[sb.Name] = bs

	rb := sb.Body
	hooks := []struct {
		delegate *ecs.Delegate[*physics.Collision2D]
		event    string
	}{
		{&rb.OnOverlapBegin, "overlap_begin"},
		{&rb.OnOverlapStay, "overlap_stay"},
		{&rb.OnOverlapEnd, "overlap_end"},
		{&rb.OnTriggerBegin, "trigger_begin"},
		{&rb.OnTriggerStay, "trigger_stay"},
		{&rb.OnTriggerEnd, "trigger_end"},
	}
	for _, h := range hooks {
		event := h.event
		h.delegate.Subscribe(func(c *physics.Collision2D) {
			if err := rt.dispatch(bs, event, c); err != nil {
				log.Printf("scenes: body=%s script %s %s error: %v", sb.Name, bs.path, event, err)
			}
		})
	}
	return nil
}

// State returns the persistent state map of the named body's script.
func (rt *ScriptRuntime) State(body string) (map[string]any, bool) {
	bs, ok := rt.scripts[body]
	if !ok {
		return nil, false
	}
	out, _ := objectToAny(bs.state).(map[string]any)
	return out, true
}

func compileContactScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + contactDispatchScript))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__contact", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

func (rt *ScriptRuntime) dispatch(bs *bodyScript, event string, c *physics.Collision2D) error {
	if err := bs.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := bs.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	if err := bs.compiled.Set("__contact", contactObject(bs.body, c)); err != nil {
		return err
	}
	if err := bs.compiled.Set("__state", bs.state); err != nil {
		return err
	}
	return bs.compiled.Run()
}

func contactObject(self *SceneBody, c *physics.Collision2D) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"self":        &tengo.String{Value: self.Name},
		"other":       &tengo.String{Value: BodyName(c.TheirRigidbody())},
		"normal":      vecObject(c.Manifold.Normal),
		"penetration": &tengo.Float{Value: c.Manifold.Penetration},
		"point":       vecObject(c.Manifold.ContactPoint()),
		"trigger":     boolObject(c.IsTrigger()),
		"frame":       &tengo.Int{Value: int64(c.FrameID)},
	}}
}

func buildScriptEngine(scene *Scene) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	body := func(args []tengo.Object) (*physics.Rigidbody2D, bool) {
		if scene == nil || len(args) < 1 {
			return nil, false
		}
		sb, ok := scene.Body(strings.TrimSpace(objectAsString(args[0])))
		if !ok {
			return nil, false
		}
		return sb.Body, true
	}

	vecArgs := func(args []tengo.Object) (cp.Vector, bool) {
		if len(args) < 3 {
			return cp.Vector{}, false
		}
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		return cp.Vector{X: x, Y: y}, okX && okY
	}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		rb.Destroy()
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(rb.Position()), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(rb.Velocity()), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body(args)
		v, okV := vecArgs(args)
		if !ok || !okV {
			return tengo.FalseValue, nil
		}
		rb.SetVelocity(v)
		return tengo.TrueValue, nil
	}}

	values["apply_impulse"] = &tengo.UserFunction{Name: "apply_impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body(args)
		impulse, okV := vecArgs(args)
		if !ok || !okV {
			return tengo.FalseValue, nil
		}
		rb.AddImpulse(impulse, rb.Position())
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("scenes: script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
