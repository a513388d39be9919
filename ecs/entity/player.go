package entity

import (
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/prefabs"
)

var defaultPlayerColor = color.NRGBA{R: 0x3f, G: 0xa7, B: 0xd6, A: 0xff}

// PlayerOptions overrides parts of player.yaml. Zero values keep the prefab.
type PlayerOptions struct {
	Spec   *prefabs.PlayerSpec
	Spawn  *mgl64.Vec3
	Script string
	Logger *log.Logger
}

// NewPlayer builds the player and wires its collaborators: the state
// machine, the character body, and the arbiter with its secondary sources.
// Any misconfiguration is returned rather than leaving an inert character.
func NewPlayer(w *ecs.World, opts PlayerOptions) (ecs.Entity, error) {
	spec := opts.Spec
	if spec == nil {
		loaded, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return 0, fmt.Errorf("player: load spec: %w", err)
		}
		spec = loaded
	}

	cfg, err := spec.ControllerConfig()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	machine, err := controller.NewMachine(cfg)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if opts.Logger != nil {
		machine.SetLogger(opts.Logger)
	}

	if spec.Body.Radius <= 0 {
		return 0, fmt.Errorf("player: body radius must be positive, got %v", spec.Body.Radius)
	}

	deadzone := spec.Input.Deadzone
	if deadzone <= 0 {
		deadzone = 0.2
	}

	position := mgl64.Vec3{spec.Transform.X, spec.Transform.Y, spec.Transform.Z}
	if opts.Spawn != nil {
		position = *opts.Spawn
	}

	script := spec.Script
	if opts.Script != "" {
		script = opts.Script
	}

	click := &component.ClickTarget{
		ArriveRadius: spec.ClickMove.ArriveRadius,
		SprintAbove:  spec.ClickMove.SprintAbove,
	}
	if click.ArriveRadius <= 0 {
		click.ArriveRadius = 0.25
	}
	scripted := &component.ScriptSource{Path: script}

	arbiter := controller.NewArbiter(deadzone)
	names := spec.Input.Sources
	if len(names) == 0 {
		names = []string{component.SourceClickToMove, component.SourceScript}
	}
	for _, name := range names {
		switch name {
		case component.SourceClickToMove:
			arbiter.Register(click)
		case component.SourceScript:
			arbiter.Register(scripted)
		default:
			return 0, fmt.Errorf("player: unknown input source %q", name)
		}
	}

	var c color.Color = defaultPlayerColor
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}

	player := ecs.CreateEntity(w)
	adds := []struct {
		name string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"player", func() error {
			return ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{Name: spec.Name, Config: cfg, Deadzone: deadzone, Color: c})
		}},
		{"transform", func() error {
			return ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{Position: position, Yaw: spec.Transform.Yaw})
		}},
		{"input", func() error {
			return ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})
		}},
		{"input sources", func() error {
			return ecs.Add(w, player, component.InputSourcesComponent.Kind(), &component.InputSources{Arbiter: arbiter})
		}},
		{"click target", func() error {
			return ecs.Add(w, player, component.ClickTargetComponent.Kind(), click)
		}},
		{"script source", func() error {
			return ecs.Add(w, player, component.ScriptSourceComponent.Kind(), scripted)
		}},
		{"character body", func() error {
			return ecs.Add(w, player, component.CharacterBodyComponent.Kind(), &component.CharacterBody{
				Radius:     spec.Body.Radius,
				Height:     spec.Body.Height,
				StepHeight: spec.Body.StepHeight,
				OnFloor:    position.Y() <= 0,
			})
		}},
		{"locomotion", func() error {
			return ecs.Add(w, player, component.LocomotionComponent.Kind(), &component.Locomotion{Machine: machine})
		}},
		{"animation tree", func() error {
			return ecs.Add(w, player, component.AnimationTreeComponent.Kind(), &component.AnimationTree{})
		}},
	}
	for _, a := range adds {
		if err := a.add(); err != nil {
			ecs.DestroyEntity(w, player)
			return 0, fmt.Errorf("player: add %s: %w", a.name, err)
		}
	}

	return player, nil
}

// ApplyTuning swaps the player's tuning in place, keeping its state.
func ApplyTuning(w *ecs.World, player ecs.Entity, spec *prefabs.PlayerSpec) error {
	cfg, err := spec.ControllerConfig()
	if err != nil {
		return err
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Machine == nil {
		return fmt.Errorf("player: %s has no state machine", player)
	}
	if err := loco.Machine.SetConfig(cfg); err != nil {
		return err
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		p.Config = cfg
	}
	if sources, ok := ecs.Get(w, player, component.InputSourcesComponent.Kind()); ok && sources.Arbiter != nil && spec.Input.Deadzone > 0 {
		sources.Arbiter.Deadzone = spec.Input.Deadzone
	}
	return nil
}
