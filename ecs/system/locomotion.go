package system

import (
	"math"

	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const facingMinSpeed = 0.05

// LocomotionSystem ticks every character's state machine and writes the
// velocity the physics step will sweep. It is the only writer of
// CharacterBody.Velocity before the sweep.
type LocomotionSystem struct {
	subscribed map[ecs.Entity]*controller.Machine
}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{subscribed: map[ecs.Entity]*controller.Machine{}}
}

func (l *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	yaw := cameraYaw(w)

	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if disabled(w, e) {
			return
		}
		if loco.Machine == nil {
			disable(w, e, "locomotion: no state machine")
			return
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			disable(w, e, "locomotion: no input component")
			return
		}
		body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
		if !ok {
			disable(w, e, "locomotion: no character body")
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			disable(w, e, "locomotion: no transform")
			return
		}

		l.subscribe(w, e, loco.Machine)

		if req, ok := ecs.Get(w, e, component.PlayerStateInterruptComponent.Kind()); ok {
			loco.Machine.ChangeStateByName(req.State)
			ecs.Remove(w, e, component.PlayerStateInterruptComponent.Kind())
		}

		out := loco.Machine.Update(controller.Input{
			Sample:   input.Resolved,
			Grounded: body.OnFloor,
			Dt:       common.FixedDt,
		})

		vel := controller.ResolveVelocity(loco.Machine.Config(), out.State, input.Resolved, yaw, body.Velocity, common.FixedDt)
		if out.Jumped != controller.JumpNone {
			vel[1] = out.JumpImpulse
		}
		body.Velocity = vel
		loco.Last = out

		if math.Hypot(vel.X(), vel.Z()) > facingMinSpeed {
			transform.Yaw = math.Atan2(-vel.X(), -vel.Z())
		}
	})

	for e := range l.subscribed {
		if !ecs.IsAlive(w, e) {
			delete(l.subscribed, e)
		}
	}
}

// subscribe forwards the machine's transitions to the world event queue.
// It runs once per machine, so a machine swapped by hot reload gets its own
// listener.
func (l *LocomotionSystem) subscribe(w *ecs.World, e ecs.Entity, m *controller.Machine) {
	if l.subscribed[e] == m {
		return
	}
	l.subscribed[e] = m
	m.Subscribe(controller.ListenerFunc(func(ev controller.TransitionEvent) {
		w.Events().Push(ecs.Event{Type: component.TransitionEventType, Entity: e, Data: ev})
	}))
}
