package component

import "github.com/milk9111/charactercontroller/controller"

// Locomotion wraps the state machine of one character and the output of its
// last tick.
type Locomotion struct {
	Machine *controller.Machine
	Last    controller.Output
}

var LocomotionComponent = NewComponent[Locomotion]("locomotion")

// TransitionEventType is the ecs.Event type pushed for every state change.
const TransitionEventType = "locomotion.transition"
