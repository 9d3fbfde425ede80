package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/suika/common"
	"golang.design/x/clipboard"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (physics overlay, FPS)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	hot := flag.Bool("hot", false, "watch prefabs/ on disk and rebuild the game when a file changes")
	seed := flag.Uint64("seed", 0, "seed for the spawn sequence (0 picks a random seed)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("suika")
	ebiten.SetTPS(common.TPS)

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardOK = false
	}

	game, err := NewGame(Options{
		Debug:     *debug,
		Hot:       *hot,
		Seed:      *seed,
		Clipboard: clipboardOK,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
