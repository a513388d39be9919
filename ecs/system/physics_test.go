package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/prefabs"
)

func stepLevel() *prefabs.LevelSpec {
	return &prefabs.LevelSpec{
		Name:   "steps",
		Bounds: prefabs.BoundsSpec{MinX: -20, MinZ: -20, MaxX: 20, MaxZ: 20},
		Obstacles: []prefabs.ObstacleSpec{
			{X: 2, Z: -2, W: 2, D: 4, Top: 0.3},
			{X: 2, Z: 4, W: 2, D: 4, Top: 1.2},
			{X: -6, Z: -2, W: 1, D: 4, Wall: true},
		},
	}
}

func TestWalkableQuery(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewLevel(w, stepLevel()); err != nil {
		t.Fatalf("new level: %v", err)
	}
	ps := NewPhysicsSystem()
	ps.Update(w)

	tests := []struct {
		name string
		p    mgl64.Vec3
		want bool
	}{
		{"open_ground", mgl64.Vec3{0, 0, 0}, true},
		{"low_step", mgl64.Vec3{3, 0, 0}, true},
		{"high_platform", mgl64.Vec3{3, 0, 6}, true},
		{"inside_wall", mgl64.Vec3{-5.5, 0, 0}, false},
		{"outside_bounds", mgl64.Vec3{25, 0, 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ps.Walkable(tc.p); got != tc.want {
				t.Fatalf("Walkable(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestFloorAtRespectsStepHeight(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewLevel(w, stepLevel()); err != nil {
		t.Fatalf("new level: %v", err)
	}
	ps := NewPhysicsSystem()
	ps.Update(w)

	if got := ps.FloorAt(3, 0, 0, 0.35); got != 0.3 {
		t.Fatalf("low step floor = %v, want 0.3", got)
	}
	if got := ps.FloorAt(3, 6, 0, 0.35); got != 0 {
		t.Fatalf("high platform must not be reachable from the ground, floor = %v", got)
	}
	if got := ps.FloorAt(3, 6, 1.5, 0.35); got != 1.2 {
		t.Fatalf("falling onto the platform, floor = %v, want 1.2", got)
	}
}

func TestCharacterStepsUpAndIsBlocked(t *testing.T) {
	t.Run("step_up", func(t *testing.T) {
		r := newTestRig(t, rigOptions{level: stepLevel()})
		r.device.state.Move = mgl64.Vec2{1, 0}
		r.device.state.Walk = true
		for i := 0; i < 120 && r.transform(t).Position.X() < 3; i++ {
			r.tick(1)
		}
		if y := r.transform(t).Position.Y(); y != 0.3 {
			t.Fatalf("expected to stand on the step, y = %v (x = %v)", y, r.transform(t).Position.X())
		}
	})

	t.Run("blocked_by_platform", func(t *testing.T) {
		r := newTestRig(t, rigOptions{spawn: mgl64.Vec3{0, 0, 6}, level: stepLevel()})
		r.device.state.Move = mgl64.Vec2{1, 0}
		r.device.state.Walk = true
		r.tick(120)
		pos := r.transform(t).Position
		if pos.X() >= 2 || pos.Y() != 0 {
			t.Fatalf("walked into a platform above step height: %v", pos)
		}
	})

	t.Run("blocked_by_wall", func(t *testing.T) {
		r := newTestRig(t, rigOptions{level: stepLevel()})
		r.device.state.Move = mgl64.Vec2{-1, 0}
		r.tick(180)
		if x := r.transform(t).Position.X(); x <= -5 {
			t.Fatalf("passed through the wall, x = %v", x)
		}
	})
}

func TestPhysicsDropsDestroyedEntities(t *testing.T) {
	r := newTestRig(t, rigOptions{level: stepLevel()})
	r.tick(1)
	body := r.body(t).Body
	if body == nil {
		t.Fatalf("physics did not create a body")
	}

	ecs.DestroyEntity(r.world, r.player)
	r.tick(1)
	if _, ok := r.pipeline.Physics.bodies[r.player]; ok {
		t.Fatalf("body of destroyed entity still tracked")
	}
	if _, ok := ecs.First(r.world, component.CharacterBodyComponent.Kind()); ok {
		t.Fatalf("character body component survived destroy")
	}
}
