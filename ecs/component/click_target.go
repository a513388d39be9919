package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
)

const SourceClickToMove = "click_to_move"

// ClickTarget is the click-to-move input source. It owns its destination;
// arbitration can only ask it to cancel, and the click-to-move system drops
// the destination on its next update.
type ClickTarget struct {
	Destination  mgl64.Vec3
	HasTarget    bool
	ArriveRadius float64
	SprintAbove  float64 // distance beyond which the source asks to sprint; 0 disables

	cancelRequested bool
	move            mgl64.Vec2
	distance        float64
}

var ClickTargetComponent = NewComponent[ClickTarget]("click_target")

var _ controller.Source = (*ClickTarget)(nil)

func (c *ClickTarget) Name() string { return SourceClickToMove }

func (c *ClickTarget) Active() bool {
	return c.HasTarget && !c.cancelRequested && c.move.Len() > 0
}

// Sample walks toward the destination, sprinting while it is further away
// than SprintAbove.
func (c *ClickTarget) Sample() controller.Sample {
	sprint := c.SprintAbove > 0 && c.distance > c.SprintAbove
	return controller.Sample{
		Move:   c.move,
		Sprint: sprint,
		Walk:   !sprint,
	}
}

func (c *ClickTarget) Cancel() { c.cancelRequested = true }

// CancelRequested reports a pending cancel not yet applied.
func (c *ClickTarget) CancelRequested() bool { return c.cancelRequested }

// SetDestination acquires a new target and clears any pending cancel.
func (c *ClickTarget) SetDestination(p mgl64.Vec3) {
	c.Destination = p
	c.HasTarget = true
	c.cancelRequested = false
}

// Clear drops the target. Called by the owning system only.
func (c *ClickTarget) Clear() {
	c.HasTarget = false
	c.cancelRequested = false
	c.move = mgl64.Vec2{}
	c.distance = 0
}

// Steer records the camera-relative vector toward the destination and the
// remaining planar distance.
func (c *ClickTarget) Steer(move mgl64.Vec2, distance float64) {
	c.move = move
	c.distance = distance
}
