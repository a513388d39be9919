package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

const (
	defaultViewWidth  = 1280
	defaultViewHeight = 720
)

// GroundQuery answers whether a ground point can be walked to.
type GroundQuery interface {
	Walkable(p mgl64.Vec3) bool
}

// ClickToMoveSystem owns every ClickTarget: it applies pending cancels,
// turns clicks into destinations and steers toward them.
type ClickToMoveSystem struct {
	query  GroundQuery
	width  float64
	height float64
}

func NewClickToMoveSystem(query GroundQuery) *ClickToMoveSystem {
	return &ClickToMoveSystem{query: query, width: defaultViewWidth, height: defaultViewHeight}
}

// SetViewport updates the screen size clicks are projected from.
func (c *ClickToMoveSystem) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.width, c.height = float64(width), float64(height)
	}
}

func (c *ClickToMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	rig, hasRig := cameraRig(w)

	ecs.ForEach3(w, component.ClickTargetComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, target *component.ClickTarget, input *component.Input, transform *component.Transform) {
		if disabled(w, e) {
			return
		}

		if target.CancelRequested() {
			target.Clear()
		}

		if input.Clicked {
			if !hasRig {
				log.Printf("click_to_move: no camera rig to project click through")
			} else {
				c.acquire(target, rig.ScreenToGround(input.ClickScreen, c.width, c.height))
			}
		}

		if !target.HasTarget {
			return
		}

		delta := target.Destination.Sub(transform.Position)
		delta[1] = 0
		dist := delta.Len()
		if dist <= target.ArriveRadius || dist < 1e-6 {
			target.Clear()
			return
		}

		yaw := 0.0
		if hasRig {
			yaw = rig.Yaw
		}
		target.Steer(controller.ToCamera(delta.Mul(1/dist), yaw), dist)
	})
}

func (c *ClickToMoveSystem) acquire(target *component.ClickTarget, p mgl64.Vec3) {
	if c.query != nil && !c.query.Walkable(p) {
		log.Printf("click_to_move: no walkable ground at (%.2f, %.2f), keeping previous target", p.X(), p.Z())
		return
	}
	target.SetDestination(p)
}
