package system

import (
	"log"

	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

func disabled(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.DisabledComponent.Kind())
}

// disable logs reason once and makes e inert for every system.
func disable(w *ecs.World, e ecs.Entity, reason string) {
	if disabled(w, e) {
		return
	}
	log.Printf("%s; disabling entity %s", reason, e)
	if err := ecs.Add(w, e, component.DisabledComponent.Kind(), &component.Disabled{Reason: reason}); err != nil {
		log.Printf("system: disable %s: %v", e, err)
	}
}

// cameraRig returns the first camera rig in the world, if any.
func cameraRig(w *ecs.World) (*component.CameraRig, bool) {
	e, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CameraRigComponent.Kind())
}

// cameraYaw is the yaw camera-relative input is resolved against.
func cameraYaw(w *ecs.World) float64 {
	if rig, ok := cameraRig(w); ok {
		return rig.Yaw
	}
	return 0
}
