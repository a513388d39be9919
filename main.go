package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charactercontroller/common"
)

func main() {
	debug := flag.Bool("debug", false, "start with the debug panel and physics overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level prefab in prefabs/ (basename, .yaml optional)")
	script := flag.String("script", "", "input script in prefabs/scripts/ driving the player")
	noWatch := flag.Bool("nowatch", false, "disable hot reload of prefabs")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("character controller")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(GameOptions{
		Level:  *levelName,
		Script: *script,
		Debug:  *debug,
		Watch:  !*noWatch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
