package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
)

// Input stores per-tick input for an entity. Device is the raw keyboard and
// gamepad sample; Resolved is what arbitration honoured this tick.
type Input struct {
	Device   controller.Sample
	Resolved controller.Sample

	// Look is the orbit delta in radians for this tick (yaw, pitch).
	Look mgl64.Vec2
	Zoom float64

	Clicked     bool
	ClickScreen mgl64.Vec2
}

var InputComponent = NewComponent[Input]("input")

// InputSources holds the arbiter and the secondary sources registered on it,
// in priority order.
type InputSources struct {
	Arbiter *controller.Arbiter
}

var InputSourcesComponent = NewComponent[InputSources]("input_sources")
