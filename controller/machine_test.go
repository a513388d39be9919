package controller

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine(DefaultConfig())
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	return m
}

func moving(x, y float64) Sample {
	return Sample{Move: mgl64.Vec2{x, y}}
}

func TestMachineGroundedMovement(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		start  State
		want   State
	}{
		{"idle_to_walk", moving(0, 0.5), StateIdle, StateWalking},
		{"idle_stays_at_threshold", moving(0.3, 0), StateIdle, StateIdle},
		{"idle_to_run_full_stick", moving(0, 1), StateIdle, StateRunning},
		{"sprint_promotes_walk", Sample{Move: mgl64.Vec2{0, 0.5}, Sprint: true}, StateWalking, StateRunning},
		{"walk_flag_caps_speed", Sample{Move: mgl64.Vec2{0, 1}, Walk: true}, StateRunning, StateWalking},
		{"run_hysteresis_holds", moving(0, 0.82), StateRunning, StateRunning},
		{"run_drops_below_band", moving(0, 0.7), StateRunning, StateWalking},
		{"walk_to_idle", moving(0, 0), StateWalking, StateIdle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMachine(t)
			if tc.start != StateIdle {
				m.ChangeState(tc.start)
			}
			out := m.Update(Input{Sample: tc.sample, Grounded: true, Dt: tickDt})
			if out.State != tc.want {
				t.Fatalf("state = %s, want %s", out.State, tc.want)
			}
		})
	}
}

func TestMachineLosesFloorGoesAirborne(t *testing.T) {
	for _, s := range []State{StateIdle, StateWalking, StateRunning, StateLanding} {
		t.Run(s.String(), func(t *testing.T) {
			m := newTestMachine(t)
			m.ChangeState(s)
			// movement and a jump press must not preempt the floor rule
			in := Input{Sample: Sample{Move: mgl64.Vec2{0, 1}, Sprint: true, JumpPressed: true}, Grounded: false, Dt: tickDt}
			if out := m.Update(in); out.State != StateAirborne {
				t.Fatalf("state = %s, want airborne", out.State)
			}
		})
	}
}

func TestMachineGroundJump(t *testing.T) {
	m := newTestMachine(t)
	out := m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: true, Dt: tickDt})
	if out.State != StateJumping {
		t.Fatalf("state = %s, want jumping", out.State)
	}
	if out.Jumped != JumpGround || out.JumpImpulse != m.Config().Jump.JumpVelocity {
		t.Fatalf("jump output = %+v", out)
	}
	if m.Budget().Snapshot().GroundJump {
		t.Fatalf("ground jump should be spent")
	}
}

func TestMachineJumpGraceForcesAirborne(t *testing.T) {
	m := newTestMachine(t)
	var seen []State
	m.Subscribe(ListenerFunc(func(ev TransitionEvent) { seen = append(seen, ev.To) }))
	m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: true, Dt: tickDt})

	// still touching the floor: must not land during the grace window
	ticks := 0
	for m.State() == StateJumping {
		m.Update(Input{Grounded: true, Dt: tickDt})
		ticks++
		if ticks > 20 {
			t.Fatalf("jump grace never elapsed")
		}
	}
	if got := float64(ticks) * tickDt; got < m.Config().JumpGrace-1e-9 {
		t.Fatalf("left jumping after %v seconds, grace is %v", got, m.Config().JumpGrace)
	}
	if m.State() != StateAirborne {
		t.Fatalf("grace expiry on the floor must go airborne, got %s", m.State())
	}

	m.Update(Input{Grounded: true, Dt: tickDt})
	want := []State{StateJumping, StateAirborne, StateLanding}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", seen, want)
		}
	}
	if !m.Budget().Snapshot().GroundJump {
		t.Fatalf("landing must restore the ground jump")
	}
}

func TestMachineBufferedJumpFiresOnTouchdown(t *testing.T) {
	tests := []struct {
		name        string
		ticksBefore int
		wantJump    bool
	}{
		{"one_tick_before", 1, true},
		{"eight_ticks_before", 8, true},
		{"outside_buffer", 12, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Jump.MaxAirJumps = 0
			m, err := NewMachine(cfg)
			if err != nil {
				t.Fatalf("new machine: %v", err)
			}

			// fall off a ledge and let the coyote window close
			for i := 0; i < 15; i++ {
				m.Update(Input{Grounded: false, Dt: tickDt})
			}
			if m.State() != StateAirborne || m.Budget().CanJump() {
				t.Fatalf("setup: state %s, can jump %v", m.State(), m.Budget().CanJump())
			}

			out := m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: false, Dt: tickDt})
			if out.Jumped != JumpNone {
				t.Fatalf("jumped in the air with no budget: %+v", out)
			}
			for i := 1; i < tc.ticksBefore; i++ {
				m.Update(Input{Grounded: false, Dt: tickDt})
			}

			out = m.Update(Input{Grounded: true, Dt: tickDt})
			if got := out.Jumped == JumpGround; got != tc.wantJump {
				t.Fatalf("touchdown jump = %v, want %v (state %s)", out.Jumped, tc.wantJump, out.State)
			}
			if tc.wantJump {
				if out.State != StateJumping || out.JumpImpulse != cfg.Jump.JumpVelocity {
					t.Fatalf("touchdown output = %+v", out)
				}
				return
			}
			if out.State != StateLanding {
				t.Fatalf("state = %s, want landing", out.State)
			}
			if out = m.Update(Input{Grounded: true, Dt: tickDt}); out.Jumped != JumpNone {
				t.Fatalf("expired press fired late: %+v", out)
			}
		})
	}
}

func TestMachineFullJumpCycle(t *testing.T) {
	m := newTestMachine(t)
	var seen []State
	m.Subscribe(ListenerFunc(func(ev TransitionEvent) { seen = append(seen, ev.To) }))

	m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: true, Dt: tickDt})
	for i := 0; i < 30; i++ {
		m.Update(Input{Grounded: false, Dt: tickDt})
	}
	m.Update(Input{Grounded: true, Dt: tickDt})
	for i := 0; i < 10; i++ {
		m.Update(Input{Sample: moving(0, 0.5), Grounded: true, Dt: tickDt})
	}

	want := []State{StateJumping, StateAirborne, StateLanding, StateWalking}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", seen, want)
		}
	}
}

func TestMachineLandingRecovery(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   State
	}{
		{"idle", Sample{}, StateIdle},
		{"walk", moving(0, 0.5), StateWalking},
		{"sprint", Sample{Move: mgl64.Vec2{0, 0.5}, Sprint: true}, StateRunning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.ChangeState(StateAirborne)
			m.Update(Input{Grounded: true, Dt: tickDt})
			if m.State() != StateLanding {
				t.Fatalf("expected landing, got %s", m.State())
			}
			m.Update(Input{Sample: tc.sample, Grounded: true, Dt: tickDt})
			if m.State() != StateLanding {
				t.Fatalf("left landing before recovery elapsed")
			}
			for i := 0; i < 10; i++ {
				m.Update(Input{Sample: tc.sample, Grounded: true, Dt: tickDt})
			}
			if m.State() != tc.want {
				t.Fatalf("state = %s, want %s", m.State(), tc.want)
			}
		})
	}
}

func TestMachineAirJumpAndBudgetRestore(t *testing.T) {
	m := newTestMachine(t)
	cfg := m.Config()

	// walk off a ledge and wait out the coyote window
	m.ChangeState(StateWalking)
	m.Update(Input{Sample: moving(0, 0.5), Grounded: false, Dt: tickDt})
	for i := 0; i < 20; i++ {
		m.Update(Input{Grounded: false, Dt: tickDt})
	}
	if m.Budget().CanJump() {
		t.Fatalf("coyote jump still available after %v", cfg.Jump.CoyoteTime)
	}

	out := m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: false, Dt: tickDt})
	if out.Jumped != JumpAir || out.JumpImpulse != cfg.Jump.AirJumpVelocity {
		t.Fatalf("expected air jump, got %+v", out)
	}
	out = m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: false, Dt: tickDt})
	if out.Jumped != JumpNone {
		t.Fatalf("air jumps exhausted but jumped again: %+v", out)
	}

	for i := 0; i < 20; i++ {
		m.Update(Input{Grounded: false, Dt: tickDt})
	}
	m.Update(Input{Grounded: true, Dt: tickDt})
	snap := m.Budget().Snapshot()
	if !snap.GroundJump || snap.AirJumps != cfg.Jump.MaxAirJumps {
		t.Fatalf("budget not restored on landing: %+v", snap)
	}
}

func TestMachineCoyoteJump(t *testing.T) {
	m := newTestMachine(t)
	m.ChangeState(StateRunning)
	m.Update(Input{Grounded: false, Dt: tickDt})
	m.Update(Input{Grounded: false, Dt: tickDt})

	out := m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: false, Dt: tickDt})
	if out.Jumped != JumpGround {
		t.Fatalf("expected coyote ground jump, got %+v", out)
	}
}

func TestMachineChangeStateResetsTimer(t *testing.T) {
	m := newTestMachine(t)
	for i := 0; i < 5; i++ {
		m.Update(Input{Grounded: true, Dt: tickDt})
	}
	var ev TransitionEvent
	m.Subscribe(ListenerFunc(func(e TransitionEvent) { ev = e }))

	m.ChangeState(StateWalking)
	if m.TimeInState() != 0 {
		t.Fatalf("timer not reset on change: %v", m.TimeInState())
	}
	if ev.From != StateIdle || ev.To != StateWalking || ev.TimeInPrevious <= 0 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if m.State() != StateWalking {
		t.Fatalf("machine holds %s after change", m.State())
	}
}

func TestMachineChangeStateByName(t *testing.T) {
	var buf bytes.Buffer
	m := newTestMachine(t)
	m.SetLogger(log.New(&buf, "", 0))

	if !m.ChangeStateByName("Running") || m.State() != StateRunning {
		t.Fatalf("expected running, got %s", m.State())
	}
	if m.ChangeStateByName("crouching") {
		t.Fatalf("unknown state accepted")
	}
	if m.State() != StateRunning {
		t.Fatalf("unknown state changed the machine to %s", m.State())
	}
	if !strings.Contains(buf.String(), "crouching") {
		t.Fatalf("expected warning to be logged, got %q", buf.String())
	}
}

func TestNewMachineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunThreshold = 0.2
	if _, err := NewMachine(cfg); err == nil {
		t.Fatalf("expected error for run threshold below walk threshold")
	}
}
