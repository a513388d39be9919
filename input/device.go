package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/charactercontroller/common"
	"github.com/milk9111/charactercontroller/ecs/system"
)

// Device polls keyboard, mouse and the first standard gamepad. It must be
// read from ebiten's Update.
type Device struct {
	cfg Config

	dragging   bool
	lastCursor mgl64.Vec2
}

var _ system.DeviceReader = (*Device)(nil)

func NewDevice(cfg Config) *Device {
	if cfg.Bindings == nil {
		cfg = DefaultConfig()
	}
	return &Device{cfg: cfg}
}

func (d *Device) Pressed(action ActionID) bool {
	b, ok := d.cfg.Bindings[action]
	if !ok {
		return false
	}
	for _, k := range b.Keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	if id, ok := gamepad(); ok {
		for _, btn := range b.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				return true
			}
		}
	}
	return false
}

func (d *Device) JustPressed(action ActionID) bool {
	b, ok := d.cfg.Bindings[action]
	if !ok {
		return false
	}
	for _, k := range b.Keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	if id, ok := gamepad(); ok {
		for _, btn := range b.StandardGamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
				return true
			}
		}
	}
	return false
}

func (d *Device) Read() system.DeviceState {
	state := system.DeviceState{
		Move:        d.move(),
		JumpPressed: d.JustPressed(ActionJump),
		JumpHeld:    d.Pressed(ActionJump),
		Sprint:      d.Pressed(ActionSprint),
		Walk:        d.Pressed(ActionWalk),
		Look:        d.look(),
	}

	_, wy := ebiten.Wheel()
	state.Zoom = wy

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		state.Clicked = true
		state.ClickScreen = mgl64.Vec2{float64(x), float64(y)}
	}
	return state
}

// move is camera-relative with +Y forward, clamped to unit length. The left
// stick overrides the keys once it leaves the deadzone.
func (d *Device) move() mgl64.Vec2 {
	var v mgl64.Vec2
	if d.Pressed(ActionMoveRight) {
		v[0]++
	}
	if d.Pressed(ActionMoveLeft) {
		v[0]--
	}
	if d.Pressed(ActionMoveForward) {
		v[1]++
	}
	if d.Pressed(ActionMoveBack) {
		v[1]--
	}

	if id, ok := gamepad(); ok {
		stick := mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if stick.Len() > d.cfg.AnalogDeadzone {
			v = stick
		}
	}

	if l := v.Len(); l > 1 {
		v = v.Mul(1 / l)
	}
	return v
}

func (d *Device) look() mgl64.Vec2 {
	var look mgl64.Vec2

	x, y := ebiten.CursorPosition()
	cursor := mgl64.Vec2{float64(x), float64(y)}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if d.dragging {
			delta := cursor.Sub(d.lastCursor)
			look = look.Add(delta.Mul(d.cfg.MouseOrbit))
		}
		d.dragging = true
	} else {
		d.dragging = false
	}
	d.lastCursor = cursor

	if d.Pressed(ActionOrbitLeft) {
		look[0] -= d.cfg.KeyOrbit * common.FixedDt
	}
	if d.Pressed(ActionOrbitRight) {
		look[0] += d.cfg.KeyOrbit * common.FixedDt
	}

	if id, ok := gamepad(); ok {
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > d.cfg.AnalogDeadzone {
			look = look.Add(mgl64.Vec2{rx, ry}.Mul(d.cfg.StickOrbit * common.FixedDt))
		}
	}
	return look
}

// gamepad returns the first connected standard gamepad. No gamepad simply
// contributes nothing.
func gamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	for _, id := range ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}
