package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/tanema/gween"
)

// RigProfile is the distance/FOV pair the rig eases toward while a
// locomotion state is active.
type RigProfile struct {
	Distance float64
	FOV      float64
}

// CameraRig follows its target with exponential decay. Nothing here is a
// state machine; transition events only move the targets.
type CameraRig struct {
	Focus mgl64.Vec3

	Distance       float64
	TargetDistance float64
	FOV            float64
	TargetFOV      float64

	Yaw      float64
	Pitch    float64
	MinPitch float64
	MaxPitch float64

	FollowRate float64
	ZoomRate   float64
	FOVRate    float64
	ZoomStep   float64

	// PixelsPerUnit is the view scale at ReferenceDistance and ReferenceFOV.
	PixelsPerUnit     float64
	ReferenceDistance float64
	ReferenceFOV      float64

	Profiles map[controller.State]RigProfile
	// ZoomBias is the user zoom offset added to every profile distance.
	ZoomBias float64

	Dip      float64
	DipDepth float64
	DipTime  float64
	DipTween *gween.Tween
}

var CameraRigComponent = NewComponent[CameraRig]("camera_rig")

// Scale returns screen pixels per world unit for the current distance/FOV.
func (c *CameraRig) Scale() float64 {
	d := c.Distance
	if d <= 0 {
		d = c.ReferenceDistance
	}
	f := c.FOV
	if f <= 0 {
		f = c.ReferenceFOV
	}
	if d <= 0 || f <= 0 {
		return c.PixelsPerUnit
	}
	return c.PixelsPerUnit * (c.ReferenceDistance / d) * (c.ReferenceFOV / f)
}

// WorldToScreen projects a world point onto the top-down view. Screen up is
// the camera's flattened forward.
func (c *CameraRig) WorldToScreen(p mgl64.Vec3, screenW, screenH float64) mgl64.Vec2 {
	forward, right := controller.CameraBasis(c.Yaw)
	d := p.Sub(c.Focus)
	d[1] = 0
	s := c.Scale()
	return mgl64.Vec2{
		screenW/2 + d.Dot(right)*s,
		screenH/2 - d.Dot(forward)*s + c.Dip*s,
	}
}

// ScreenToGround casts a ray from a screen point onto the y=0 plane.
func (c *CameraRig) ScreenToGround(screen mgl64.Vec2, screenW, screenH float64) mgl64.Vec3 {
	forward, right := controller.CameraBasis(c.Yaw)
	s := c.Scale()
	if s <= 0 {
		return mgl64.Vec3{c.Focus.X(), 0, c.Focus.Z()}
	}
	dx := (screen.X() - screenW/2) / s
	dy := (screenH/2 - screen.Y() + c.Dip*s) / s
	p := c.Focus.Add(right.Mul(dx)).Add(forward.Mul(dy))
	p[1] = 0
	return p
}
