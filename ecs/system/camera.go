package system

import (
	"log"

	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const minRigDistance = 1.0

// CameraSystem eases the rig toward its target. It reacts to locomotion
// transition events by retargeting distance and FOV; it never inspects the
// state machine directly.
type CameraSystem struct {
	target ecs.Entity
	warned bool
}

// NewCameraSystem follows target, normally the player entity.
func NewCameraSystem(target ecs.Entity) *CameraSystem {
	return &CameraSystem{target: target}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	rigEntity, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok || disabled(w, rigEntity) {
		return
	}
	rig, _ := ecs.Get(w, rigEntity, component.CameraRigComponent.Kind())

	targetTransform, ok := ecs.Get(w, cs.target, component.TransformComponent.Kind())
	if !ok {
		if !cs.warned {
			log.Printf("camera: target %s has no transform, rig idle", cs.target)
			cs.warned = true
		}
		return
	}

	for _, ev := range w.Events().Items() {
		if ev.Type != component.TransitionEventType || ev.Entity != cs.target {
			continue
		}
		if te, ok := ev.Data.(controller.TransitionEvent); ok {
			cs.respond(rig, te)
		}
	}

	if input, ok := ecs.Get(w, cs.target, component.InputComponent.Kind()); ok {
		cs.orbit(rig, input)
	}

	dt := common.FixedDt
	target := targetTransform.Position
	for i := range rig.Focus {
		rig.Focus[i] = common.ExpDecay(rig.Focus[i], target[i], rig.FollowRate, dt)
	}
	rig.Distance = common.ExpDecay(rig.Distance, rig.TargetDistance, rig.ZoomRate, dt)
	rig.FOV = common.ExpDecay(rig.FOV, rig.TargetFOV, rig.FOVRate, dt)

	if rig.DipTween != nil {
		v, done := rig.DipTween.Update(float32(dt))
		rig.Dip = float64(v)
		if done {
			rig.DipTween = nil
			rig.Dip = 0
		}
	}
}

// respond retargets the rig for the state just entered.
func (cs *CameraSystem) respond(rig *component.CameraRig, ev controller.TransitionEvent) {
	if profile, ok := rig.Profiles[ev.To]; ok {
		if profile.Distance > 0 {
			rig.TargetDistance = max(profile.Distance+rig.ZoomBias, minRigDistance)
		}
		if profile.FOV > 0 {
			rig.TargetFOV = profile.FOV
		}
	}
	if ev.To == controller.StateLanding && rig.DipDepth > 0 && rig.DipTime > 0 {
		rig.DipTween = gween.New(float32(rig.DipDepth), 0, float32(rig.DipTime), ease.OutQuad)
		rig.Dip = rig.DipDepth
	}
}

func (cs *CameraSystem) orbit(rig *component.CameraRig, input *component.Input) {
	rig.Yaw += input.Look.X()
	rig.Pitch = common.Clamp(rig.Pitch+input.Look.Y(), rig.MinPitch, rig.MaxPitch)
	if input.Zoom != 0 && rig.ZoomStep > 0 {
		bias := rig.ZoomBias - input.Zoom*rig.ZoomStep
		next := rig.TargetDistance - rig.ZoomBias + bias
		if next >= minRigDistance {
			rig.ZoomBias = bias
			rig.TargetDistance = next
		}
	}
}
