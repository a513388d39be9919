package controller

// JumpKind identifies which unit of the budget a jump consumed.
type JumpKind uint8

const (
	JumpNone JumpKind = iota
	JumpGround
	JumpAir
)

func (k JumpKind) String() string {
	switch k {
	case JumpGround:
		return "ground"
	case JumpAir:
		return "air"
	}
	return "none"
}

// timers below this are treated as expired so float drift cannot keep a
// window open for an extra tick
const timerEpsilon = 1e-9

// JumpBudget tracks jump availability: one ground jump, a number of air
// jumps, the coyote window and the input buffer.
type JumpBudget struct {
	cfg JumpConfig

	groundJump bool
	airJumps   int
	coyote     float64
	buffer     float64
	grounded   bool
}

// NewJumpBudget returns a full budget for a grounded character.
func NewJumpBudget(cfg JumpConfig) *JumpBudget {
	b := &JumpBudget{cfg: cfg, grounded: true}
	b.restore()
	return b
}

func (b *JumpBudget) restore() {
	b.groundJump = true
	b.airJumps = b.cfg.MaxAirJumps
	b.coyote = 0
}

// Land restores the budget for a landing the floor probe never saw leave,
// such as a jump that stayed on the floor through the grace window.
func (b *JumpBudget) Land() {
	b.grounded = true
	b.restore()
}

// SetConfig swaps tuning, clamping the live counters to the new maximums.
func (b *JumpBudget) SetConfig(cfg JumpConfig) {
	b.cfg = cfg
	if b.airJumps > cfg.MaxAirJumps {
		b.airJumps = cfg.MaxAirJumps
	}
	if b.coyote > cfg.CoyoteTime {
		b.coyote = cfg.CoyoteTime
	}
	if b.buffer > cfg.BufferTime {
		b.buffer = cfg.BufferTime
	}
}

// Tick advances timers and handles ground contact edges.
func (b *JumpBudget) Tick(dt float64, grounded bool) {
	switch {
	case b.grounded && !grounded:
		// the edge tick is already airborne time
		if b.groundJump {
			b.coyote = countdown(b.cfg.CoyoteTime, dt)
			if b.coyote == 0 {
				b.groundJump = false
			}
		}
	case !b.grounded && grounded:
		b.restore()
	case !grounded && b.coyote > 0:
		b.coyote = countdown(b.coyote, dt)
		if b.coyote == 0 {
			b.groundJump = false
		}
	}
	b.grounded = grounded

	if b.buffer > 0 {
		b.buffer = countdown(b.buffer, dt)
	}
}

func countdown(t, dt float64) float64 {
	t -= dt
	if t < timerEpsilon {
		return 0
	}
	return t
}

// Press records a jump request; it stays armed for the buffer window.
func (b *JumpBudget) Press() {
	b.buffer = b.cfg.BufferTime
	if b.buffer == 0 {
		// a zero window still has to survive the tick it was pressed in
		b.buffer = timerEpsilon * 2
	}
}

func (b *JumpBudget) CanJump() bool {
	return b.groundJump && (b.grounded || b.coyote > 0)
}

func (b *JumpBudget) CanAirJump() bool {
	return !b.grounded && b.coyote == 0 && b.airJumps > 0
}

// Buffered reports whether a press is waiting to be consumed.
func (b *JumpBudget) Buffered() bool {
	return b.buffer > 0
}

// TryConsume spends one unit of budget for a buffered press. It returns the
// upward impulse and which unit was spent, or JumpNone when nothing was
// pressed or nothing is available.
func (b *JumpBudget) TryConsume() (float64, JumpKind) {
	if !b.Buffered() {
		return 0, JumpNone
	}
	switch {
	case b.CanJump():
		b.groundJump = false
		b.coyote = 0
		b.buffer = 0
		return b.cfg.JumpVelocity, JumpGround
	case b.CanAirJump():
		b.airJumps--
		b.buffer = 0
		return b.cfg.AirJumpVelocity, JumpAir
	}
	return 0, JumpNone
}

// JumpSnapshot is a read-only view of the budget for debug output.
type JumpSnapshot struct {
	GroundJump bool    `yaml:"ground_jump"`
	AirJumps   int     `yaml:"air_jumps"`
	Coyote     float64 `yaml:"coyote"`
	Buffer     float64 `yaml:"buffer"`
	Grounded   bool    `yaml:"grounded"`
}

func (b *JumpBudget) Snapshot() JumpSnapshot {
	return JumpSnapshot{
		GroundJump: b.groundJump,
		AirJumps:   b.airJumps,
		Coyote:     b.coyote,
		Buffer:     b.buffer,
		Grounded:   b.grounded,
	}
}
