package controller

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("controller: invalid config")

// JumpConfig tunes the jump budget. Durations are in seconds.
type JumpConfig struct {
	JumpVelocity    float64 // default 9
	AirJumpVelocity float64 // default 7.5
	MaxAirJumps     int     // default 1; negative disables air jumps
	CoyoteTime      float64 // default 0.12; negative means none
	BufferTime      float64 // default 0.15; negative means none
}

// Config tunes the locomotion state machine and per-tick motion.
type Config struct {
	WalkThreshold   float64 // default 0.3
	RunThreshold    float64 // default 0.85
	RunHysteresis   float64 // default 0.05; negative means none
	LandingRecovery float64 // default 0.1; negative means none
	JumpGrace       float64 // default 0.1; negative means none

	WalkSpeed        float64 // default 3.5
	RunSpeed         float64 // default 7
	Acceleration     float64 // default 40
	Deceleration     float64 // default 50
	AirControl       float64 // default 0.4; negative means none
	Gravity          float64 // default 24
	TerminalVelocity float64 // default 40

	Jump JumpConfig
}

// DefaultConfig returns the canonical tuning.
func DefaultConfig() Config {
	return Config{
		WalkThreshold:    0.3,
		RunThreshold:     0.85,
		RunHysteresis:    0.05,
		LandingRecovery:  0.1,
		JumpGrace:        0.1,
		WalkSpeed:        3.5,
		RunSpeed:         7,
		Acceleration:     40,
		Deceleration:     50,
		AirControl:       0.4,
		Gravity:          24,
		TerminalVelocity: 40,
		Jump: JumpConfig{
			JumpVelocity:    9,
			AirJumpVelocity: 7.5,
			MaxAirJumps:     1,
			CoyoteTime:      0.12,
			BufferTime:      0.15,
		},
	}
}

// WithDefaults fills zero fields from DefaultConfig. Fields where zero is a
// meaningful value take a negative number to mean zero.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.WalkThreshold, d.WalkThreshold)
	fill(&c.RunThreshold, d.RunThreshold)
	fillOrNone(&c.RunHysteresis, d.RunHysteresis)
	fillOrNone(&c.LandingRecovery, d.LandingRecovery)
	fillOrNone(&c.JumpGrace, d.JumpGrace)
	fill(&c.WalkSpeed, d.WalkSpeed)
	fill(&c.RunSpeed, d.RunSpeed)
	fill(&c.Acceleration, d.Acceleration)
	fill(&c.Deceleration, d.Deceleration)
	fillOrNone(&c.AirControl, d.AirControl)
	fill(&c.Gravity, d.Gravity)
	fill(&c.TerminalVelocity, d.TerminalVelocity)
	c.Jump = c.Jump.WithDefaults()
	return c
}

// WithDefaults fills zero fields from DefaultConfig.
func (c JumpConfig) WithDefaults() JumpConfig {
	d := DefaultConfig().Jump
	if c.JumpVelocity == 0 {
		c.JumpVelocity = d.JumpVelocity
	}
	if c.AirJumpVelocity == 0 {
		c.AirJumpVelocity = d.AirJumpVelocity
	}
	if c.MaxAirJumps == 0 {
		c.MaxAirJumps = d.MaxAirJumps
	} else if c.MaxAirJumps < 0 {
		c.MaxAirJumps = 0
	}
	fillOrNone(&c.CoyoteTime, d.CoyoteTime)
	fillOrNone(&c.BufferTime, d.BufferTime)
	return c
}

// fillOrNone applies def to a zero field and turns a negative one into an
// explicit zero.
func fillOrNone(v *float64, def float64) {
	switch {
	case *v == 0:
		*v = def
	case *v < 0:
		*v = 0
	}
}

func (c Config) Validate() error {
	switch {
	case c.WalkThreshold < 0 || c.WalkThreshold >= 1:
		return fmt.Errorf("%w: walk threshold %v outside [0,1)", ErrInvalidConfig, c.WalkThreshold)
	case c.RunThreshold <= c.WalkThreshold:
		return fmt.Errorf("%w: run threshold %v must exceed walk threshold %v", ErrInvalidConfig, c.RunThreshold, c.WalkThreshold)
	case c.RunHysteresis < 0 || c.RunThreshold-c.RunHysteresis <= c.WalkThreshold:
		return fmt.Errorf("%w: run hysteresis %v collapses the walk band", ErrInvalidConfig, c.RunHysteresis)
	case c.LandingRecovery < 0 || c.JumpGrace < 0:
		return fmt.Errorf("%w: negative recovery or grace duration", ErrInvalidConfig)
	case c.WalkSpeed <= 0 || c.RunSpeed < c.WalkSpeed:
		return fmt.Errorf("%w: speeds walk=%v run=%v", ErrInvalidConfig, c.WalkSpeed, c.RunSpeed)
	case c.Gravity <= 0 || c.TerminalVelocity <= 0:
		return fmt.Errorf("%w: gravity and terminal velocity must be positive", ErrInvalidConfig)
	case c.AirControl < 0 || c.AirControl > 1:
		return fmt.Errorf("%w: air control %v outside [0,1]", ErrInvalidConfig, c.AirControl)
	}
	return c.Jump.Validate()
}

func (c JumpConfig) Validate() error {
	switch {
	case c.JumpVelocity <= 0 || c.AirJumpVelocity <= 0:
		return fmt.Errorf("%w: jump velocities must be positive", ErrInvalidConfig)
	case c.MaxAirJumps < 0:
		return fmt.Errorf("%w: max air jumps %d", ErrInvalidConfig, c.MaxAirJumps)
	case c.CoyoteTime < 0 || c.BufferTime < 0:
		return fmt.Errorf("%w: negative coyote or buffer time", ErrInvalidConfig)
	}
	return nil
}
