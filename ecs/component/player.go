package component

import (
	"image/color"

	"github.com/milk9111/charactercontroller/controller"
)

// Player carries the tuning the player entity was built with.
type Player struct {
	Name     string
	Config   controller.Config
	Deadzone float64
	Color    color.Color
}

var PlayerComponent = NewComponent[Player]("player")
