package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is player.yaml. Durations are seconds, speeds world units per
// second. Zero fields fall back to controller.DefaultConfig.
type PlayerSpec struct {
	Name      string          `yaml:"name"`
	Transform TransformSpec   `yaml:"transform"`
	Body      BodySpec        `yaml:"body"`
	Input     InputSpec       `yaml:"input"`
	Movement  MovementSpec    `yaml:"movement"`
	Jump      JumpSpec        `yaml:"jump"`
	ClickMove ClickToMoveSpec `yaml:"click_to_move"`
	Script    string          `yaml:"script"`
	Color     *YAMLColor      `yaml:"color"`
}

type BodySpec struct {
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	StepHeight float64 `yaml:"step_height"`
}

type InputSpec struct {
	Deadzone float64 `yaml:"deadzone"`
	// Sources lists secondary sources in priority order.
	Sources []string `yaml:"sources"`
}

type MovementSpec struct {
	WalkThreshold    float64 `yaml:"walk_threshold"`
	RunThreshold     float64 `yaml:"run_threshold"`
	RunHysteresis    float64 `yaml:"run_hysteresis"`
	LandingRecovery  float64 `yaml:"landing_recovery"`
	JumpGrace        float64 `yaml:"jump_grace"`
	WalkSpeed        float64 `yaml:"walk_speed"`
	RunSpeed         float64 `yaml:"run_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	Deceleration     float64 `yaml:"deceleration"`
	AirControl       float64 `yaml:"air_control"`
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
}

type JumpSpec struct {
	JumpVelocity    float64 `yaml:"jump_velocity"`
	AirJumpVelocity float64 `yaml:"air_jump_velocity"`
	MaxAirJumps     int     `yaml:"max_air_jumps"`
	CoyoteTime      float64 `yaml:"coyote_time"`
	BufferTime      float64 `yaml:"buffer_time"`
}

type ClickToMoveSpec struct {
	ArriveRadius float64 `yaml:"arrive_radius"`
	SprintAbove  float64 `yaml:"sprint_above"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name           string                 `yaml:"name"`
	Distance       float64                `yaml:"distance"`
	FOV            float64                `yaml:"fov"`
	Pitch          float64                `yaml:"pitch"`
	MinPitch       float64                `yaml:"min_pitch"`
	MaxPitch       float64                `yaml:"max_pitch"`
	FollowRate     float64                `yaml:"follow_rate"`
	ZoomRate       float64                `yaml:"zoom_rate"`
	FOVRate        float64                `yaml:"fov_rate"`
	ZoomStep       float64                `yaml:"zoom_step"`
	PixelsPerUnit  float64                `yaml:"pixels_per_unit"`
	LandingDip     float64                `yaml:"landing_dip"`
	LandingDipTime float64                `yaml:"landing_dip_time"`
	Profiles       map[string]ProfileSpec `yaml:"profiles"`
}

type ProfileSpec struct {
	Distance float64 `yaml:"distance"`
	FOV      float64 `yaml:"fov"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LevelSpec is a flat XZ arena with walls and raised platforms.
type LevelSpec struct {
	Name      string         `yaml:"name"`
	Bounds    BoundsSpec     `yaml:"bounds"`
	Spawn     TransformSpec  `yaml:"spawn"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
}

type BoundsSpec struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// ObstacleSpec is a box; Top 0 or "wall: true" makes it an impassable wall.
type ObstacleSpec struct {
	X     float64    `yaml:"x"`
	Z     float64    `yaml:"z"`
	W     float64    `yaml:"w"`
	D     float64    `yaml:"d"`
	Top   float64    `yaml:"top"`
	Wall  bool       `yaml:"wall"`
	Color *YAMLColor `yaml:"color"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level.yaml"
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the color back in #rrggbbaa form.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
