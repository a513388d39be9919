package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/prefabs"
)

// scriptDispatch is appended to every input script so a compiled program can
// be rerun each tick with fresh globals.
const scriptDispatch = `
update(__engine, __state)
`

// ScriptLoader returns the source of a script by name.
type ScriptLoader func(name string) ([]byte, error)

// ScriptInputSystem runs tengo input scripts. A script defines
// update(engine, state) and steers with the engine functions move, jump,
// sprint, walk, stop and force_state.
type ScriptInputSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity]*scriptRuntime
	failed   map[string]bool
	tick     int64
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	intent   scriptIntent
}

// scriptIntent is what the script asked for. Move, sprint and walk persist
// until changed; jump and force_state are one-shot.
type scriptIntent struct {
	move   mgl64.Vec2
	sprint bool
	walk   bool
	jump   bool
	force  string
}

// NewScriptInputSystem loads scripts through load; nil uses the prefabs
// loader.
func NewScriptInputSystem(load ScriptLoader) *ScriptInputSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptInputSystem{
		load:     load,
		runtimes: map[ecs.Entity]*scriptRuntime{},
		failed:   map[string]bool{},
	}
}

// Reload drops compiled scripts whose path matches name so they are
// recompiled on the next tick.
func (s *ScriptInputSystem) Reload(name string) {
	for e, rt := range s.runtimes {
		if sameScript(rt.path, name) {
			delete(s.runtimes, e)
		}
	}
	for path := range s.failed {
		if sameScript(path, name) {
			delete(s.failed, path)
		}
	}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.tick++

	ecs.ForEach2(w, component.ScriptSourceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, src *component.ScriptSource, transform *component.Transform) {
		if disabled(w, e) || strings.TrimSpace(src.Path) == "" {
			return
		}

		rt, err := s.runtime(e, src.Path)
		if err != nil {
			if !s.failed[src.Path] {
				log.Printf("script: %s: %v", src.Path, err)
				s.failed[src.Path] = true
			}
			src.Current = controller.Sample{Source: component.SourceScript}
			src.Moving = false
			return
		}

		if src.TakeCancel() {
			rt.intent.move = mgl64.Vec2{}
			rt.intent.sprint = false
			rt.intent.walk = false
		}
		rt.intent.jump = false
		rt.intent.force = ""

		if err := rt.run(s.engine(w, e, rt, transform)); err != nil {
			log.Printf("script: %s update error: %v", src.Path, err)
		}

		src.Current = controller.Sample{
			Move:        rt.intent.move,
			JumpPressed: rt.intent.jump,
			JumpHeld:    rt.intent.jump,
			Sprint:      rt.intent.sprint,
			Walk:        rt.intent.walk,
			Source:      component.SourceScript,
		}
		src.Moving = rt.intent.move.Len() > 0

		if rt.intent.force != "" {
			req := &component.PlayerStateInterrupt{State: rt.intent.force}
			if err := ecs.Add(w, e, component.PlayerStateInterruptComponent.Kind(), req); err != nil {
				log.Printf("script: force_state: %v", err)
			}
		}
	})

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}
	if s.failed[path] {
		return nil, fmt.Errorf("previously failed")
	}

	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	rt := &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (s *ScriptInputSystem) engine(w *ecs.World, e ecs.Entity, rt *scriptRuntime, transform *component.Transform) *tengo.ImmutableMap {
	grounded := false
	if body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind()); ok {
		grounded = body.OnFloor
	}
	state := ""
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok && loco.Machine != nil {
		state = loco.Machine.State().String()
	}

	values := map[string]tengo.Object{
		"tick":     &tengo.Int{Value: s.tick},
		"x":        &tengo.Float{Value: transform.Position.X()},
		"y":        &tengo.Float{Value: transform.Position.Y()},
		"z":        &tengo.Float{Value: transform.Position.Z()},
		"grounded": boolObject(grounded),
		"state":    &tengo.String{Value: state},
	}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		v := mgl64.Vec2{x, y}
		if v.Len() > 1 {
			v = v.Normalize()
		}
		rt.intent.move = v
		return tengo.TrueValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.intent.move = mgl64.Vec2{}
		rt.intent.sprint = false
		rt.intent.walk = false
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.intent.jump = true
		return tengo.TrueValue, nil
	}}

	values["sprint"] = &tengo.UserFunction{Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.intent.sprint = argBool(args, true)
		return tengo.TrueValue, nil
	}}

	values["walk"] = &tengo.UserFunction{Name: "walk", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.intent.walk = argBool(args, true)
		return tengo.TrueValue, nil
	}}

	values["force_state"] = &tengo.UserFunction{Name: "force_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		name = strings.TrimSpace(name)
		if name == "" {
			return tengo.FalseValue, nil
		}
		rt.intent.force = name
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			str, _ := tengo.ToString(a)
			parts = append(parts, str)
		}
		log.Printf("script: %s: %s", rt.path, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func argBool(args []tengo.Object, fallback bool) bool {
	if len(args) == 0 {
		return fallback
	}
	return !args[0].IsFalsy()
}

func sameScript(a, b string) bool {
	norm := func(s string) string {
		s = strings.TrimPrefix(s, "prefabs/")
		s = strings.TrimPrefix(s, "scripts/")
		return strings.TrimSuffix(s, ".tengo")
	}
	return norm(a) == norm(b)
}
