package system

import "github.com/milk9111/charactercontroller/ecs"

// Pipeline is the per-tick system order: device input, secondary sources,
// arbitration, locomotion, physics, camera, animation. Each stage consumes
// what the previous ones wrote this tick.
type Pipeline struct {
	*ecs.Scheduler

	Input       *InputSystem
	ClickToMove *ClickToMoveSystem
	Script      *ScriptInputSystem
	Arbitration *ArbitrationSystem
	Locomotion  *LocomotionSystem
	Physics     *PhysicsSystem
	Camera      *CameraSystem
	Animation   *AnimationSystem
}

// NewPipeline wires the systems for a player entity. reader and scripts may
// be nil.
func NewPipeline(reader DeviceReader, scripts ScriptLoader, player ecs.Entity) *Pipeline {
	physics := NewPhysicsSystem()
	p := &Pipeline{
		Input:       NewInputSystem(reader),
		ClickToMove: NewClickToMoveSystem(physics),
		Script:      NewScriptInputSystem(scripts),
		Arbitration: NewArbitrationSystem(),
		Locomotion:  NewLocomotionSystem(),
		Physics:     physics,
		Camera:      NewCameraSystem(player),
		Animation:   NewAnimationSystem(),
	}
	p.Scheduler = ecs.NewScheduler(
		p.Input,
		p.ClickToMove,
		p.Script,
		p.Arbitration,
		p.Locomotion,
		p.Physics,
		p.Camera,
		p.Animation,
	)
	return p
}
