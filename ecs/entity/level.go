package entity

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/prefabs"
)

var (
	defaultWallColor     = color.NRGBA{R: 0x5c, G: 0x5c, B: 0x6e, A: 0xff}
	defaultPlatformColor = color.NRGBA{R: 0xa4, G: 0x90, B: 0x7c, A: 0xff}
)

// Level is the set of entities a level spec produced.
type Level struct {
	Name      string
	Bounds    ecs.Entity
	Obstacles []ecs.Entity
	Spawn     mgl64.Vec3
}

// NewLevel builds bounds and obstacles. A nil spec loads level.yaml.
func NewLevel(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if spec == nil {
		loaded, err := prefabs.LoadLevelSpec("")
		if err != nil {
			return nil, fmt.Errorf("level: load spec: %w", err)
		}
		spec = loaded
	}

	b := spec.Bounds
	if b.MaxX <= b.MinX || b.MaxZ <= b.MinZ {
		return nil, fmt.Errorf("level %q: empty bounds", spec.Name)
	}

	level := &Level{
		Name:  spec.Name,
		Spawn: mgl64.Vec3{spec.Spawn.X, spec.Spawn.Y, spec.Spawn.Z},
	}

	level.Bounds = ecs.CreateEntity(w)
	if err := ecs.Add(w, level.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX: b.MinX, MinZ: b.MinZ, MaxX: b.MaxX, MaxZ: b.MaxZ,
	}); err != nil {
		return nil, fmt.Errorf("level %q: add bounds: %w", spec.Name, err)
	}

	for i, o := range spec.Obstacles {
		if o.W <= 0 || o.D <= 0 {
			return nil, fmt.Errorf("level %q: obstacle %d has no footprint", spec.Name, i)
		}
		obstacle := &component.Obstacle{
			MinX:  o.X,
			MinZ:  o.Z,
			MaxX:  o.X + o.W,
			MaxZ:  o.Z + o.D,
			Top:   o.Top,
			Color: defaultPlatformColor,
		}
		if o.Wall || o.Top <= 0 {
			obstacle.Top = math.Inf(1)
			obstacle.Color = defaultWallColor
		}
		if o.Color != nil && o.Color.Color != nil {
			obstacle.Color = o.Color.Color
		}

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.ObstacleComponent.Kind(), obstacle); err != nil {
			return nil, fmt.Errorf("level %q: add obstacle %d: %w", spec.Name, i, err)
		}
		level.Obstacles = append(level.Obstacles, e)
	}

	return level, nil
}

// Destroy removes every entity of the level.
func (l *Level) Destroy(w *ecs.World) {
	if l == nil {
		return
	}
	ecs.DestroyEntity(w, l.Bounds)
	for _, e := range l.Obstacles {
		ecs.DestroyEntity(w, e)
	}
	l.Obstacles = nil
}
