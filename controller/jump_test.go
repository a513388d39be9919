package controller

import "testing"

const tickDt = 1.0 / 60.0

func testJumpConfig() JumpConfig {
	return JumpConfig{
		JumpVelocity:    9,
		AirJumpVelocity: 7,
		MaxAirJumps:     2,
		CoyoteTime:      0.1,
		BufferTime:      0.1,
	}
}

func TestJumpBudgetRestoresOnLanding(t *testing.T) {
	cases := []struct {
		name  string
		jumps int // presses while airborne
	}{
		{"no_jumps", 0},
		{"one_air_jump", 1},
		{"all_air_jumps", 2},
		{"more_presses_than_budget", 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testJumpConfig()
			b := NewJumpBudget(cfg)
			b.Tick(tickDt, true)

			b.Press()
			if _, kind := b.TryConsume(); kind != JumpGround {
				t.Fatalf("expected ground jump, got %v", kind)
			}
			b.Tick(tickDt, false)
			for i := 0; i < 20; i++ {
				b.Tick(tickDt, false)
			}
			for i := 0; i < c.jumps; i++ {
				b.Press()
				b.TryConsume()
				b.Tick(tickDt, false)
			}

			b.Tick(tickDt, true)
			snap := b.Snapshot()
			if !snap.GroundJump || snap.AirJumps != cfg.MaxAirJumps {
				t.Fatalf("expected full budget after landing, got %+v", snap)
			}
			if snap.Coyote != 0 {
				t.Fatalf("expected coyote cleared on landing, got %v", snap.Coyote)
			}
		})
	}
}

func TestJumpBudgetCoyoteExpires(t *testing.T) {
	tests := []struct {
		name   string
		coyote float64
	}{
		{"tick_multiple", 0.1},
		{"default", DefaultConfig().Jump.CoyoteTime},
		{"shorter_than_tick", 0.01},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testJumpConfig()
			cfg.CoyoteTime = tc.coyote
			b := NewJumpBudget(cfg)

			// the tick that leaves the floor already counts
			b.Tick(tickDt, false)
			elapsed := tickDt
			prev := b.Snapshot().Coyote
			if prev >= tc.coyote {
				t.Fatalf("edge tick did not count down: coyote %v", prev)
			}

			for b.Snapshot().Coyote > 0 {
				if elapsed >= tc.coyote-1e-9 {
					t.Fatalf("coyote still %v after %v seconds, limit %v", b.Snapshot().Coyote, elapsed, tc.coyote)
				}
				b.Tick(tickDt, false)
				elapsed += tickDt
				cur := b.Snapshot().Coyote
				if cur >= prev {
					t.Fatalf("coyote timer not strictly decreasing: %v -> %v", prev, cur)
				}
				prev = cur
			}

			if b.CanJump() {
				t.Fatalf("ground jump must be revoked once coyote expires")
			}
			for i := 0; i < 10; i++ {
				b.Tick(tickDt, false)
				if b.CanJump() {
					t.Fatalf("ground jump reappeared while airborne")
				}
			}
			if !b.CanAirJump() {
				t.Fatalf("expected air jump once coyote expired")
			}
		})
	}
}

func TestJumpBudgetCoyoteOpenRightAfterLeavingFloor(t *testing.T) {
	b := NewJumpBudget(testJumpConfig())
	b.Tick(tickDt, false)
	if !b.CanJump() {
		t.Fatalf("expected jump allowed inside coyote window")
	}
}

func TestJumpBudgetAirJumpBlockedDuringCoyote(t *testing.T) {
	b := NewJumpBudget(testJumpConfig())
	b.Tick(tickDt, false)
	if b.CanAirJump() {
		t.Fatalf("air jump must wait for the coyote window to close")
	}
	b.Press()
	v, kind := b.TryConsume()
	if kind != JumpGround || v != 9 {
		t.Fatalf("expected coyote ground jump at 9, got %v %v", kind, v)
	}
	if b.Snapshot().Coyote != 0 {
		t.Fatalf("ground jump must clear coyote")
	}
	b.Press()
	v, kind = b.TryConsume()
	if kind != JumpAir || v != 7 {
		t.Fatalf("expected air jump at 7, got %v %v", kind, v)
	}
}

func TestJumpBudgetNoCoyoteAfterGroundJump(t *testing.T) {
	b := NewJumpBudget(testJumpConfig())
	b.Press()
	if _, kind := b.TryConsume(); kind != JumpGround {
		t.Fatalf("expected ground jump")
	}
	b.Tick(tickDt, false)
	if b.Snapshot().Coyote != 0 {
		t.Fatalf("coyote must not start when the ground jump is spent")
	}
}

func TestJumpBudgetBuffer(t *testing.T) {
	tests := []struct {
		name       string
		ticksAloft int
		wantJump   bool
	}{
		{"inside_window", 3, true},
		{"outside_window", 12, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testJumpConfig()
			cfg.MaxAirJumps = 0
			b := NewJumpBudget(cfg)
			b.Press()
			b.TryConsume()
			b.Tick(tickDt, false)

			b.Press()
			if _, kind := b.TryConsume(); kind != JumpNone {
				t.Fatalf("no jump should be available in the air")
			}
			for i := 0; i < tc.ticksAloft; i++ {
				b.Tick(tickDt, false)
			}
			b.Tick(tickDt, true)
			_, kind := b.TryConsume()
			if (kind == JumpGround) != tc.wantJump {
				t.Fatalf("buffered jump on landing = %v, want %v", kind, tc.wantJump)
			}
		})
	}
}

func TestJumpBudgetSetConfigClamps(t *testing.T) {
	b := NewJumpBudget(testJumpConfig())
	cfg := testJumpConfig()
	cfg.MaxAirJumps = 1
	b.SetConfig(cfg)
	if got := b.Snapshot().AirJumps; got != 1 {
		t.Fatalf("expected air jumps clamped to 1, got %d", got)
	}
}
