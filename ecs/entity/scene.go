package entity

import (
	"fmt"

	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/prefabs"
)

// SceneOptions picks the prefabs a scene is built from. Empty names load the
// defaults; nil specs are read from disk or the embedded copies.
type SceneOptions struct {
	Level  string
	Script string
	Player *prefabs.PlayerSpec
	Camera *prefabs.CameraSpec
}

// Scene is a level with the player spawned in it and the camera on the
// player.
type Scene struct {
	Level  *Level
	Player ecs.Entity
	Camera ecs.Entity
}

func NewScene(w *ecs.World, opts SceneOptions) (*Scene, error) {
	levelSpec, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("scene: load level %q: %w", opts.Level, err)
	}
	level, err := NewLevel(w, levelSpec)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	spawn := level.Spawn
	player, err := NewPlayer(w, PlayerOptions{
		Spec:   opts.Player,
		Spawn:  &spawn,
		Script: opts.Script,
	})
	if err != nil {
		level.Destroy(w)
		return nil, fmt.Errorf("scene: %w", err)
	}

	camera, err := NewCamera(w, opts.Camera, spawn)
	if err != nil {
		ecs.DestroyEntity(w, player)
		level.Destroy(w)
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Scene{Level: level, Player: player, Camera: camera}, nil
}

// ReloadLevel swaps the level geometry in place. The player keeps its
// position.
func (s *Scene) ReloadLevel(w *ecs.World, spec *prefabs.LevelSpec) error {
	level, err := NewLevel(w, spec)
	if err != nil {
		return err
	}
	s.Level.Destroy(w)
	s.Level = level
	return nil
}
