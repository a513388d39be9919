// Command sim runs the character controller headless with a script driving
// the player, logging every locomotion transition.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"github.com/milk9111/charactercontroller/ecs/entity"
	"github.com/milk9111/charactercontroller/ecs/system"
	"github.com/milk9111/charactercontroller/prefabs"
	"gopkg.in/yaml.v3"
)

type options struct {
	Level  string
	Script string
	Ticks  int
}

type summary struct {
	Ticks       int                     `yaml:"ticks"`
	State       string                  `yaml:"state"`
	Start       [3]float64              `yaml:"start"`
	Position    [3]float64              `yaml:"position"`
	Transitions int                     `yaml:"transitions"`
	Budget      controller.JumpSnapshot `yaml:"budget"`
}

func main() {
	var opts options
	flag.StringVar(&opts.Level, "level", "", "level prefab in prefabs/ (basename, .yaml optional)")
	flag.StringVar(&opts.Script, "script", "patrol", "input script in prefabs/scripts/")
	flag.IntVar(&opts.Ticks, "ticks", 600, "number of fixed ticks to simulate")
	quiet := flag.Bool("q", false, "only print the summary")
	flag.Parse()

	var logw io.Writer = os.Stderr
	if *quiet {
		logw = io.Discard
	}
	out, err := run(opts, log.New(logw, "", log.LstdFlags))
	if err != nil {
		log.Fatal(err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		log.Fatal(err)
	}
}

// run builds the scene and steps the pipeline opts.Ticks times, logging each
// transition to logger.
func run(opts options, logger *log.Logger) (summary, error) {
	w := ecs.NewWorld()
	scene, err := entity.NewScene(w, entity.SceneOptions{Level: opts.Level, Script: opts.Script})
	if err != nil {
		return summary{}, err
	}
	pipeline := system.NewPipeline(nil, prefabs.LoadScript, scene.Player)

	loco, ok := ecs.Get(w, scene.Player, component.LocomotionComponent.Kind())
	if !ok {
		return summary{}, fmt.Errorf("sim: player %s has no state machine", scene.Player)
	}
	transitions := 0
	loco.Machine.Subscribe(controller.ListenerFunc(func(ev controller.TransitionEvent) {
		transitions++
		logger.Printf("tick %d: %s -> %s after %.2fs", ev.Tick, ev.From, ev.To, ev.TimeInPrevious)
	}))

	out := summary{Ticks: opts.Ticks}
	out.Start = playerPosition(w, scene.Player)
	for i := 0; i < opts.Ticks; i++ {
		pipeline.Update(w)
	}

	out.State = loco.Machine.State().String()
	out.Position = playerPosition(w, scene.Player)
	out.Transitions = transitions
	out.Budget = loco.Machine.Budget().Snapshot()
	return out, nil
}

func playerPosition(w *ecs.World, e ecs.Entity) [3]float64 {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return [3]float64{}
	}
	return [3]float64{t.Position.X(), t.Position.Y(), t.Position.Z()}
}
