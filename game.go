package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/input"
	"github.com/milk9111/charactercontroller/prefabs"
	"github.com/milk9111/charactercontroller/view"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type GameOptions struct {
	Level  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int

	world    *ecs.World
	scene    *entity.Scene
	pipeline *system.Pipeline
	device   *input.Device
	renderer *view.Renderer
	watcher  *prefabs.Watcher

	levelName string

	paused  bool
	quit    bool
	debug   bool
	pauseUI *ebitenui.UI
	debugUI *DebugUI

	clipboardReady bool
}

func NewGame(opts GameOptions) (*Game, error) {
	w := ecs.NewWorld()
	scene, err := entity.NewScene(w, entity.SceneOptions{Level: opts.Level, Script: opts.Script})
	if err != nil {
		return nil, err
	}

	device := input.NewDevice(input.DefaultConfig())
	pipeline := system.NewPipeline(device, prefabs.LoadScript, scene.Player)
	pipeline.ClickToMove.SetViewport(baseWidth, baseHeight)

	g := &Game{
		world:     w,
		scene:     scene,
		pipeline:  pipeline,
		device:    device,
		renderer:  view.NewRenderer(),
		levelName: opts.Level,
		debug:     opts.Debug,
	}
	g.renderer.ShowPhysics = opts.Debug
	g.pauseUI = NewPauseUI(g)
	g.debugUI = NewDebugUI(g)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, tuning export disabled: %v", err)
	} else {
		g.clipboardReady = true
	}

	if opts.Watch {
		g.startWatcher()
	}

	return g, nil
}

func (g *Game) startWatcher() {
	dirs := []string{"prefabs", filepath.Join("prefabs", "scripts")}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			log.Printf("hot reload disabled: %s not found", dir)
			return
		}
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = watcher
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	if g.device.JustPressed(input.ActionPause) {
		g.paused = !g.paused
	}
	if g.device.JustPressed(input.ActionDebugPanel) {
		g.debug = !g.debug
		g.renderer.ShowPhysics = g.debug
	}
	if g.device.JustPressed(input.ActionCopyTuning) {
		g.copyTuning()
	}

	g.applyReloads()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pipeline.Update(g.world)

	if g.debug {
		g.debugUI.Refresh()
		g.debugUI.UI.Update()
	}
	return nil
}

// applyReloads picks up prefab edits between ticks. A file that fails to
// parse or validate is logged and the previous values stay live.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, err := range drainErrors(g.watcher) {
		log.Printf("watch: %v", err)
	}
	for _, change := range g.watcher.Poll() {
		name := change.Name()
		switch change.Kind {
		case prefabs.ChangeScript:
			g.pipeline.Script.Reload(name)
			log.Printf("reload: script %s", name)
		case prefabs.ChangeSpec:
			if err := g.reloadSpec(name); err != nil {
				log.Printf("reload: %s: %v; keeping previous values", name, err)
				continue
			}
			log.Printf("reload: %s", name)
		}
	}
}

func (g *Game) reloadSpec(name string) error {
	switch name {
	case "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		return entity.ApplyTuning(g.world, g.scene.Player, spec)
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		return entity.ApplyCameraSpec(g.world, g.scene.Camera, spec)
	}

	if !sameLevel(name, g.levelName) {
		return nil
	}
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return err
	}
	return g.scene.ReloadLevel(g.world, spec)
}

func sameLevel(file, level string) bool {
	if level == "" {
		level = "level"
	}
	base := file[:len(file)-len(filepath.Ext(file))]
	return base == level || file == level
}

func drainErrors(w *prefabs.Watcher) []error {
	var out []error
	for {
		select {
		case err := <-w.Errors:
			out = append(out, err)
		default:
			return out
		}
	}
}

// copyTuning puts the live movement and jump tuning on the clipboard as
// player.yaml fragments.
func (g *Game) copyTuning() {
	player, ok := ecs.Get(g.world, g.scene.Player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	data, err := prefabs.MarshalTuning(player.Config)
	if err != nil {
		log.Printf("copy tuning: %v", err)
		return
	}
	if !g.clipboardReady {
		fmt.Print(string(data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("copied tuning to clipboard")
}

// forceState queues a state change for the player, applied by the
// locomotion system on its next update.
func (g *Game) forceState(name string) {
	if err := ecs.Add(g.world, g.scene.Player, component.PlayerStateInterruptComponent.Kind(), &component.PlayerStateInterrupt{State: name}); err != nil {
		log.Printf("force state %s: %v", name, err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.pipeline.Physics.Space())

	if g.debug {
		g.debugUI.UI.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
