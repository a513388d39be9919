package controller

import "testing"

func TestConfigWithDefaultsZeroableFields(t *testing.T) {
	d := DefaultConfig()

	tests := []struct {
		name string
		in   float64
		want func(Config) float64
		def  float64
		set  func(*Config, float64)
	}{
		{"run_hysteresis", 0, func(c Config) float64 { return c.RunHysteresis }, d.RunHysteresis, func(c *Config, v float64) { c.RunHysteresis = v }},
		{"landing_recovery", 0, func(c Config) float64 { return c.LandingRecovery }, d.LandingRecovery, func(c *Config, v float64) { c.LandingRecovery = v }},
		{"jump_grace", 0, func(c Config) float64 { return c.JumpGrace }, d.JumpGrace, func(c *Config, v float64) { c.JumpGrace = v }},
		{"air_control", 0, func(c Config) float64 { return c.AirControl }, d.AirControl, func(c *Config, v float64) { c.AirControl = v }},
		{"coyote_time", 0, func(c Config) float64 { return c.Jump.CoyoteTime }, d.Jump.CoyoteTime, func(c *Config, v float64) { c.Jump.CoyoteTime = v }},
		{"buffer_time", 0, func(c Config) float64 { return c.Jump.BufferTime }, d.Jump.BufferTime, func(c *Config, v float64) { c.Jump.BufferTime = v }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var zero Config
			tt.set(&zero, 0)
			if got := tt.want(zero.WithDefaults()); got != tt.def {
				t.Fatalf("zero should take default %v, got %v", tt.def, got)
			}

			var none Config
			tt.set(&none, -1)
			cfg := none.WithDefaults()
			if got := tt.want(cfg); got != 0 {
				t.Fatalf("negative should mean zero, got %v", got)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("zeroed config should validate: %v", err)
			}

			var set Config
			tt.set(&set, 0.07)
			if got := tt.want(set.WithDefaults()); got != 0.07 {
				t.Fatalf("explicit value should be kept, got %v", got)
			}
		})
	}
}

func TestJumpConfigMaxAirJumpsSentinel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultConfig().Jump.MaxAirJumps},
		{-1, 0},
		{3, 3},
	}
	for _, tt := range tests {
		got := JumpConfig{MaxAirJumps: tt.in}.WithDefaults().MaxAirJumps
		if got != tt.want {
			t.Fatalf("MaxAirJumps %d: want %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestMachineZeroGraceLeavesJumpingNextTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpGrace = -1
	m, err := NewMachine(cfg.WithDefaults())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	m.Update(Input{Sample: Sample{JumpPressed: true}, Grounded: true, Dt: tickDt})
	if m.State() != StateJumping {
		t.Fatalf("expected Jumping after press, got %v", m.State())
	}
	m.Update(Input{Grounded: true, Dt: tickDt})
	if m.State() != StateAirborne {
		t.Fatalf("zero grace should release Jumping on the next tick, got %v", m.State())
	}
}
