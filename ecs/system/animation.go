package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// AnimationSystem writes locomotion parameters into each AnimationTree.
type AnimationSystem struct {
	conditions map[controller.State]string
}

func NewAnimationSystem() *AnimationSystem {
	a := &AnimationSystem{conditions: map[controller.State]string{}}
	for _, s := range controller.States() {
		a.conditions[s] = fmt.Sprintf(component.ParamConditionFmt, s)
	}
	return a
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.AnimationTreeComponent.Kind(), component.LocomotionComponent.Kind(), component.CharacterBodyComponent.Kind(), func(e ecs.Entity, tree *component.AnimationTree, loco *component.Locomotion, body *component.CharacterBody) {
		if disabled(w, e) || loco.Machine == nil {
			return
		}

		yaw := 0.0
		if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			yaw = transform.Yaw
		}

		runSpeed := loco.Machine.Config().RunSpeed
		blend := mgl64.Vec2{}
		if runSpeed > 0 {
			blend = controller.ToCamera(mgl64.Vec3{body.Velocity.X(), 0, body.Velocity.Z()}, yaw).Mul(1 / runSpeed)
		}
		tree.Set(component.ParamBlendPosition, blend)
		tree.Set(component.ParamVerticalSpeed, body.Velocity.Y())

		current := loco.Machine.State()
		for _, s := range controller.States() {
			tree.Set(a.conditions[s], s == current)
		}
	})
}
