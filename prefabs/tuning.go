package prefabs

import (
	"fmt"

	"github.com/milk9111/charactercontroller/controller"
	"gopkg.in/yaml.v3"
)

// ControllerConfig converts the movement and jump sections, filling zero
// fields with defaults, and validates the result.
func (p *PlayerSpec) ControllerConfig() (controller.Config, error) {
	m, j := p.Movement, p.Jump
	cfg := controller.Config{
		WalkThreshold:    m.WalkThreshold,
		RunThreshold:     m.RunThreshold,
		RunHysteresis:    m.RunHysteresis,
		LandingRecovery:  m.LandingRecovery,
		JumpGrace:        m.JumpGrace,
		WalkSpeed:        m.WalkSpeed,
		RunSpeed:         m.RunSpeed,
		Acceleration:     m.Acceleration,
		Deceleration:     m.Deceleration,
		AirControl:       m.AirControl,
		Gravity:          m.Gravity,
		TerminalVelocity: m.TerminalVelocity,
		Jump: controller.JumpConfig{
			JumpVelocity:    j.JumpVelocity,
			AirJumpVelocity: j.AirJumpVelocity,
			MaxAirJumps:     j.MaxAirJumps,
			CoyoteTime:      j.CoyoteTime,
			BufferTime:      j.BufferTime,
		},
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: player %q: %w", p.Name, err)
	}
	return cfg, nil
}

// SetTuning writes cfg back into the movement and jump sections. Zero
// durations, zero air control and zero air jumps are written as -1 because
// zero means "default" on load.
func (p *PlayerSpec) SetTuning(cfg controller.Config) {
	p.Movement = MovementSpec{
		WalkThreshold:    cfg.WalkThreshold,
		RunThreshold:     cfg.RunThreshold,
		RunHysteresis:    orNone(cfg.RunHysteresis),
		LandingRecovery:  orNone(cfg.LandingRecovery),
		JumpGrace:        orNone(cfg.JumpGrace),
		WalkSpeed:        cfg.WalkSpeed,
		RunSpeed:         cfg.RunSpeed,
		Acceleration:     cfg.Acceleration,
		Deceleration:     cfg.Deceleration,
		AirControl:       orNone(cfg.AirControl),
		Gravity:          cfg.Gravity,
		TerminalVelocity: cfg.TerminalVelocity,
	}
	airJumps := cfg.Jump.MaxAirJumps
	if airJumps == 0 {
		airJumps = -1
	}
	p.Jump = JumpSpec{
		JumpVelocity:    cfg.Jump.JumpVelocity,
		AirJumpVelocity: cfg.Jump.AirJumpVelocity,
		MaxAirJumps:     airJumps,
		CoyoteTime:      orNone(cfg.Jump.CoyoteTime),
		BufferTime:      orNone(cfg.Jump.BufferTime),
	}
}

func orNone(v float64) float64 {
	if v == 0 {
		return -1
	}
	return v
}

// MarshalTuning renders cfg as the movement/jump sections of player.yaml.
func MarshalTuning(cfg controller.Config) ([]byte, error) {
	var p PlayerSpec
	p.SetTuning(cfg)
	out := struct {
		Movement MovementSpec `yaml:"movement"`
		Jump     JumpSpec     `yaml:"jump"`
	}{p.Movement, p.Jump}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	return data, nil
}
