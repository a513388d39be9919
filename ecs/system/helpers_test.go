package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/prefabs"
)

// fakeDevice holds its state between reads; presses and clicks are edges and
// clear after one read.
type fakeDevice struct {
	state DeviceState
}

func (d *fakeDevice) Read() DeviceState {
	s := d.state
	d.state.JumpPressed = false
	d.state.Clicked = false
	d.state.Look = mgl64.Vec2{}
	d.state.Zoom = 0
	return s
}

type testRig struct {
	world    *ecs.World
	pipeline *Pipeline
	device   *fakeDevice
	player   ecs.Entity
	camera   ecs.Entity
}

func testPlayerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:  "test",
		Body:  prefabs.BodySpec{Radius: 0.4, Height: 1.8, StepHeight: 0.35},
		Input: prefabs.InputSpec{Deadzone: 0.2},
		ClickMove: prefabs.ClickToMoveSpec{
			ArriveRadius: 0.25,
		},
	}
}

func testCameraSpec() *prefabs.CameraSpec {
	return &prefabs.CameraSpec{
		Distance:       12,
		FOV:            60,
		PixelsPerUnit:  32,
		FollowRate:     8,
		LandingDip:     0.25,
		LandingDipTime: 0.2,
		Profiles: map[string]prefabs.ProfileSpec{
			"jumping":  {Distance: 14, FOV: 70},
			"airborne": {Distance: 15, FOV: 72},
			"landing":  {Distance: 12, FOV: 62},
		},
	}
}

type rigOptions struct {
	spawn   mgl64.Vec3
	script  string
	scripts ScriptLoader
	level   *prefabs.LevelSpec
}

func newTestRig(t *testing.T, opts rigOptions) *testRig {
	t.Helper()
	w := ecs.NewWorld()

	if opts.level != nil {
		if _, err := entity.NewLevel(w, opts.level); err != nil {
			t.Fatalf("new level: %v", err)
		}
	}

	spawn := opts.spawn
	player, err := entity.NewPlayer(w, entity.PlayerOptions{Spec: testPlayerSpec(), Spawn: &spawn, Script: opts.script})
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	camera, err := entity.NewCamera(w, testCameraSpec(), mgl64.Vec3{})
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}

	device := &fakeDevice{}
	return &testRig{
		world:    w,
		pipeline: NewPipeline(device, opts.scripts, player),
		device:   device,
		player:   player,
		camera:   camera,
	}
}

func (r *testRig) tick(n int) {
	for i := 0; i < n; i++ {
		r.pipeline.Update(r.world)
	}
}

func (r *testRig) machine(t *testing.T) *controller.Machine {
	t.Helper()
	loco, ok := ecs.Get(r.world, r.player, component.LocomotionComponent.Kind())
	if !ok || loco.Machine == nil {
		t.Fatalf("player has no state machine")
	}
	return loco.Machine
}

func (r *testRig) input(t *testing.T) *component.Input {
	t.Helper()
	in, ok := ecs.Get(r.world, r.player, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("player has no input")
	}
	return in
}

func (r *testRig) body(t *testing.T) *component.CharacterBody {
	t.Helper()
	b, ok := ecs.Get(r.world, r.player, component.CharacterBodyComponent.Kind())
	if !ok {
		t.Fatalf("player has no body")
	}
	return b
}

func (r *testRig) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(r.world, r.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player has no transform")
	}
	return tr
}

func (r *testRig) rig(t *testing.T) *component.CameraRig {
	t.Helper()
	rig, ok := ecs.Get(r.world, r.camera, component.CameraRigComponent.Kind())
	if !ok {
		t.Fatalf("camera has no rig")
	}
	return rig
}

// settle runs idle ticks until the player stands still on the floor.
func (r *testRig) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 120; i++ {
		r.tick(1)
		if r.body(t).OnFloor && r.machine(t).State() == controller.StateIdle {
			return
		}
	}
	t.Fatalf("player never settled: state=%s onFloor=%v", r.machine(t).State(), r.body(t).OnFloor)
}
