package input

import "github.com/hajimehoshi/ebiten/v2"

// ActionID is a logical action the device can trigger.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionSprint
	ActionWalk
	ActionOrbitLeft
	ActionOrbitRight
	ActionPause
	ActionDebugPanel
	ActionCopyTuning
	ActionCount
)

// Binding lists the keys and standard gamepad buttons for one action.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Config holds the action table and analog tuning.
type Config struct {
	Bindings       map[ActionID]Binding
	AnalogDeadzone float64
	// MouseOrbit is radians of orbit per pixel of right-drag.
	MouseOrbit float64
	// StickOrbit is radians per second at full right-stick deflection.
	StickOrbit float64
	// KeyOrbit is radians per second while an orbit key is held.
	KeyOrbit float64
}

func DefaultConfig() Config {
	return Config{
		AnalogDeadzone: 0.2,
		MouseOrbit:     0.008,
		StickOrbit:     2.5,
		KeyOrbit:       1.8,
		Bindings: map[ActionID]Binding{
			ActionMoveForward: {Keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
			ActionMoveBack:    {Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
			ActionMoveLeft:    {Keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
			ActionMoveRight:   {Keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
			ActionJump: {
				Keys:                   []ebiten.Key{ebiten.KeySpace},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
			},
			ActionSprint: {
				Keys:                   []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftStick, ebiten.StandardGamepadButtonFrontBottomRight},
			},
			ActionWalk: {
				Keys:                   []ebiten.Key{ebiten.KeyControlLeft, ebiten.KeyControlRight},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomLeft},
			},
			ActionOrbitLeft:  {Keys: []ebiten.Key{ebiten.KeyQ}},
			ActionOrbitRight: {Keys: []ebiten.Key{ebiten.KeyE}},
			ActionPause: {
				Keys:                   []ebiten.Key{ebiten.KeyEscape},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
			},
			ActionDebugPanel: {Keys: []ebiten.Key{ebiten.KeyF1}},
			ActionCopyTuning: {Keys: []ebiten.Key{ebiten.KeyF2}},
		},
	}
}
