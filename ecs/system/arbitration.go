package system

import (
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// ArbitrationSystem resolves the device sample against the secondary sources
// and stores the winner in Input.Resolved.
type ArbitrationSystem struct{}

func NewArbitrationSystem() *ArbitrationSystem {
	return &ArbitrationSystem{}
}

func (a *ArbitrationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.InputSourcesComponent.Kind(), func(e ecs.Entity, input *component.Input, sources *component.InputSources) {
		if disabled(w, e) {
			return
		}
		if sources.Arbiter == nil {
			disable(w, e, "input: no arbiter")
			return
		}
		input.Resolved = sources.Arbiter.Resolve(input.Device)
	})
}
