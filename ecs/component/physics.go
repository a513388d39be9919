package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// CharacterBody is the kinematic character. Velocity is written by the
// locomotion system only; the physics system sweeps it and reports OnFloor.
type CharacterBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius     float64
	Height     float64
	StepHeight float64

	Velocity    mgl64.Vec3
	OnFloor     bool
	FloorHeight float64
}

var CharacterBodyComponent = NewComponent[CharacterBody]("character_body")
