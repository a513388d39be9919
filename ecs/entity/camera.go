package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/prefabs"
)

// NewCamera builds the camera rig centred on focus. A nil spec loads
// camera.yaml.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, focus mgl64.Vec3) (ecs.Entity, error) {
	if spec == nil {
		loaded, err := prefabs.LoadCameraSpec()
		if err != nil {
			return 0, fmt.Errorf("camera: load spec: %w", err)
		}
		spec = loaded
	}

	rig, err := newRig(spec, focus)
	if err != nil {
		return 0, err
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraRigComponent.Kind(), rig); err != nil {
		return 0, fmt.Errorf("camera: add rig: %w", err)
	}
	return camera, nil
}

// ApplyCameraSpec retunes an existing rig, keeping its pose and user zoom.
func ApplyCameraSpec(w *ecs.World, camera ecs.Entity, spec *prefabs.CameraSpec) error {
	rig, ok := ecs.Get(w, camera, component.CameraRigComponent.Kind())
	if !ok {
		return fmt.Errorf("camera: %s has no rig", camera)
	}
	next, err := newRig(spec, rig.Focus)
	if err != nil {
		return err
	}
	next.Yaw = rig.Yaw
	next.Pitch = rig.Pitch
	next.Distance = rig.Distance
	next.FOV = rig.FOV
	next.ZoomBias = rig.ZoomBias
	next.TargetDistance = rig.TargetDistance
	next.TargetFOV = rig.TargetFOV
	*rig = *next
	return nil
}

func newRig(spec *prefabs.CameraSpec, focus mgl64.Vec3) (*component.CameraRig, error) {
	distance := orDefault(spec.Distance, 12)
	fov := orDefault(spec.FOV, 60)
	minPitch := orDefault(spec.MinPitch, -1.4)
	maxPitch := orDefault(spec.MaxPitch, -0.2)
	if minPitch > maxPitch {
		return nil, fmt.Errorf("camera: min pitch %v above max pitch %v", minPitch, maxPitch)
	}

	profiles := make(map[controller.State]component.RigProfile, len(spec.Profiles))
	for name, p := range spec.Profiles {
		s, ok := controller.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("camera: profile for unknown state %q", name)
		}
		profiles[s] = component.RigProfile{Distance: p.Distance, FOV: p.FOV}
	}

	return &component.CameraRig{
		Focus:             focus,
		Distance:          distance,
		TargetDistance:    distance,
		FOV:               fov,
		TargetFOV:         fov,
		Pitch:             math.Max(minPitch, math.Min(maxPitch, orDefault(spec.Pitch, -0.9))),
		MinPitch:          minPitch,
		MaxPitch:          maxPitch,
		FollowRate:        orDefault(spec.FollowRate, 8),
		ZoomRate:          orDefault(spec.ZoomRate, 4),
		FOVRate:           orDefault(spec.FOVRate, 4),
		ZoomStep:          orDefault(spec.ZoomStep, 1),
		PixelsPerUnit:     orDefault(spec.PixelsPerUnit, 48),
		ReferenceDistance: distance,
		ReferenceFOV:      fov,
		Profiles:          profiles,
		DipDepth:          spec.LandingDip,
		DipTime:           spec.LandingDipTime,
	}, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
