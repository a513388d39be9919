package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// DeviceState is one poll of keyboard, gamepad and mouse.
type DeviceState struct {
	Move        mgl64.Vec2
	JumpPressed bool
	JumpHeld    bool
	Sprint      bool
	Walk        bool

	Look mgl64.Vec2
	Zoom float64

	Clicked     bool
	ClickScreen mgl64.Vec2
}

// DeviceReader polls the physical devices. The input package provides the
// ebiten implementation; tests and the headless simulator plug in their own.
type DeviceReader interface {
	Read() DeviceState
}

// DeviceFunc adapts a function to DeviceReader.
type DeviceFunc func() DeviceState

func (f DeviceFunc) Read() DeviceState { return f() }

type InputSystem struct {
	reader DeviceReader
}

// NewInputSystem polls reader once per tick. A nil reader contributes zero
// input.
func NewInputSystem(reader DeviceReader) *InputSystem {
	return &InputSystem{reader: reader}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var state DeviceState
	if i.reader != nil {
		state = i.reader.Read()
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Device = controller.Sample{
			Move:        state.Move,
			JumpPressed: state.JumpPressed,
			JumpHeld:    state.JumpHeld,
			Sprint:      state.Sprint,
			Walk:        state.Walk,
			Source:      controller.SourceDevice,
		}
		input.Look = state.Look
		input.Zoom = state.Zoom
		input.Clicked = state.Clicked
		input.ClickScreen = state.ClickScreen
	})
}
