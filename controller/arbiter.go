package controller

import "github.com/go-gl/mathgl/mgl64"

// SourceDevice names samples that came from keyboard or gamepad.
const SourceDevice = "device"

// Sample is one tick of arbitrated input. Move is camera-relative with +Y
// pointing forward.
type Sample struct {
	Move        mgl64.Vec2
	JumpPressed bool
	JumpHeld    bool
	Sprint      bool
	Walk        bool
	Source      string
}

// Magnitude returns the length of the movement vector.
func (s Sample) Magnitude() float64 {
	return s.Move.Len()
}

// Source is a secondary input source competing with the device. A source
// owns its own target; the arbiter only ever cancels it.
type Source interface {
	Name() string
	// Active reports whether the source currently requests movement.
	Active() bool
	Sample() Sample
	// Cancel asks the source to drop its target on its next update.
	Cancel()
}

// Arbiter resolves one authoritative sample per tick. Device input always
// preempts secondary sources, which are consulted in registration order.
type Arbiter struct {
	Deadzone float64
	sources  []Source
}

func NewArbiter(deadzone float64, sources ...Source) *Arbiter {
	a := &Arbiter{Deadzone: deadzone}
	for _, s := range sources {
		a.Register(s)
	}
	return a
}

// Register appends a source at the lowest priority so far.
func (a *Arbiter) Register(s Source) {
	if a == nil || s == nil {
		return
	}
	a.sources = append(a.sources, s)
}

func (a *Arbiter) Sources() []Source {
	if a == nil {
		return nil
	}
	return append([]Source(nil), a.sources...)
}

// Resolve picks the sample honoured this tick. A device vector whose
// magnitude is strictly above the deadzone wins outright and cancels every
// active secondary source. Device buttons are always kept; a winning
// secondary source may add its own.
func (a *Arbiter) Resolve(device Sample) Sample {
	device.Source = SourceDevice
	if a == nil {
		return device
	}

	if device.Move.Len() > a.Deadzone {
		for _, s := range a.sources {
			if s.Active() {
				s.Cancel()
			}
		}
		return device
	}

	out := device
	out.Move = mgl64.Vec2{}
	for _, s := range a.sources {
		if !s.Active() {
			continue
		}
		won := s.Sample()
		out.Move = won.Move
		out.JumpPressed = out.JumpPressed || won.JumpPressed
		out.JumpHeld = out.JumpHeld || won.JumpHeld
		out.Sprint = out.Sprint || won.Sprint
		out.Walk = out.Walk || won.Walk
		out.Source = s.Name()
		return out
	}
	return out
}
