package prefabs

import (
	"testing"

	"github.com/milk9111/charactercontroller/controller"
	"gopkg.in/yaml.v3"
)

func TestTuningKeepsZeroValues(t *testing.T) {
	cfg := controller.DefaultConfig()
	cfg.RunHysteresis = 0
	cfg.LandingRecovery = 0
	cfg.JumpGrace = 0
	cfg.AirControl = 0
	cfg.Jump.MaxAirJumps = 0
	cfg.Jump.CoyoteTime = 0
	cfg.Jump.BufferTime = 0

	data, err := MarshalTuning(cfg)
	if err != nil {
		t.Fatalf("MarshalTuning: %v", err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("unmarshal tuning: %v", err)
	}
	got, err := spec.ControllerConfig()
	if err != nil {
		t.Fatalf("ControllerConfig: %v", err)
	}
	if got != cfg {
		t.Fatalf("zeroed tuning did not survive a save:\nwant %+v\ngot  %+v", cfg, got)
	}
}

func TestControllerConfigDefaults(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}

	var empty PlayerSpec
	cfg, err := empty.ControllerConfig()
	if err != nil {
		t.Fatalf("empty spec: %v", err)
	}
	if cfg != controller.DefaultConfig() {
		t.Fatalf("empty spec should give defaults, got %+v", cfg)
	}

	if _, err := spec.ControllerConfig(); err != nil {
		t.Fatalf("shipped player.yaml: %v", err)
	}
}
