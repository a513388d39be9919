package controller

import (
	"fmt"
	"log"
)

// TransitionEvent is delivered to listeners after a state change completes.
type TransitionEvent struct {
	From State
	To   State
	// TimeInPrevious is how long the previous state was held, in seconds.
	TimeInPrevious float64
	Tick           uint64
}

// Listener observes state transitions.
type Listener interface {
	OnTransition(TransitionEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(TransitionEvent)

func (f ListenerFunc) OnTransition(ev TransitionEvent) { f(ev) }

// Input is what the machine consumes each tick.
type Input struct {
	Sample   Sample
	Grounded bool
	Dt       float64
}

// Output is what the caller applies to the body after a tick.
type Output struct {
	State State
	// JumpImpulse is the upward velocity to set when Jumped is not JumpNone.
	JumpImpulse float64
	Jumped      JumpKind
}

// Machine is the locomotion state machine. It holds exactly one state and
// a single transition table evaluated once per tick.
type Machine struct {
	cfg    Config
	budget *JumpBudget
	logger *log.Logger

	state       State
	timeInState float64
	tick        uint64

	listeners []Listener
}

// NewMachine validates cfg and returns a machine idling on the ground.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: new machine: %w", err)
	}
	return &Machine{
		cfg:    cfg,
		budget: NewJumpBudget(cfg.Jump),
		logger: log.Default(),
		state:  StateIdle,
	}, nil
}

// SetLogger replaces the logger used for warnings.
func (m *Machine) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// SetConfig swaps tuning at runtime. The current state is kept.
func (m *Machine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("controller: set config: %w", err)
	}
	m.cfg = cfg
	m.budget.SetConfig(cfg.Jump)
	return nil
}

func (m *Machine) Config() Config       { return m.cfg }
func (m *Machine) State() State         { return m.state }
func (m *Machine) TimeInState() float64 { return m.timeInState }
func (m *Machine) Budget() *JumpBudget  { return m.budget }
func (m *Machine) Subscribe(l Listener) { m.listeners = append(m.listeners, l) }
func (m *Machine) ListenerCount() int   { return len(m.listeners) }
func (m *Machine) Ticks() uint64        { return m.tick }

// ChangeState exits the current state, resets the state timer, then enters
// next and notifies listeners. Re-entering the same state is allowed.
func (m *Machine) ChangeState(next State) {
	if next >= stateCount {
		m.logger.Printf("locomotion: ignoring transition to invalid state %d", next)
		return
	}
	ev := TransitionEvent{From: m.state, To: next, TimeInPrevious: m.timeInState, Tick: m.tick}
	m.timeInState = 0
	m.state = next
	for _, l := range m.listeners {
		l.OnTransition(ev)
	}
}

// ChangeStateByName is the string entry point used by scripts and the debug
// panel. Unknown names are a logged no-op.
func (m *Machine) ChangeStateByName(name string) bool {
	s, ok := ParseState(name)
	if !ok {
		m.logger.Printf("locomotion: unknown state %q, keeping %s", name, m.state)
		return false
	}
	m.ChangeState(s)
	return true
}

// Update runs one tick: timers first, then the transition table. At most
// one transition fires per tick.
func (m *Machine) Update(in Input) Output {
	m.tick++
	m.timeInState += in.Dt
	m.budget.Tick(in.Dt, in.Grounded)
	if in.Sample.JumpPressed {
		m.budget.Press()
	}

	out := Output{}
	m.transition(in, &out)
	out.State = m.state
	return out
}

func (m *Machine) transition(in Input, out *Output) {
	s := m.state

	if !in.Grounded && s.Grounded() {
		m.ChangeState(StateAirborne)
		return
	}

	// grace expiry always passes through Airborne, floor or not
	if s == StateJumping && m.timeInState >= m.cfg.JumpGrace {
		m.ChangeState(StateAirborne)
		return
	}

	if in.Grounded && s == StateAirborne {
		// a buffered press fires on the touchdown tick
		m.budget.Land()
		if m.tryJump(out) {
			return
		}
		m.ChangeState(StateLanding)
		return
	}

	if m.tryJump(out) {
		return
	}

	switch s {
	case StateLanding:
		if m.timeInState >= m.cfg.LandingRecovery {
			m.ChangeState(m.groundedTarget(in.Sample, StateIdle))
		}
	case StateIdle, StateWalking, StateRunning:
		if next := m.groundedTarget(in.Sample, s); next != s {
			m.ChangeState(next)
		}
	}
}

func (m *Machine) tryJump(out *Output) bool {
	impulse, kind := m.budget.TryConsume()
	if kind == JumpNone {
		return false
	}
	out.JumpImpulse = impulse
	out.Jumped = kind
	m.ChangeState(StateJumping)
	return true
}

// groundedTarget maps movement onto Idle/Walking/Running. current is used
// for the run hysteresis band.
func (m *Machine) groundedTarget(in Sample, current State) State {
	mag := in.Magnitude()
	if mag <= m.cfg.WalkThreshold {
		return StateIdle
	}
	if in.Walk {
		return StateWalking
	}
	if in.Sprint {
		return StateRunning
	}
	runAt := m.cfg.RunThreshold
	if current == StateRunning {
		runAt -= m.cfg.RunHysteresis
	}
	if mag > runAt {
		return StateRunning
	}
	return StateWalking
}
