package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/suika/assets"
	"github.com/milk9111/suika/common"
	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/input"
	"github.com/milk9111/suika/physics"
	"github.com/milk9111/suika/pit"
	"github.com/milk9111/suika/prefabs"
	"github.com/milk9111/suika/render"
)

const tick = time.Second / common.TPS

type Options struct {
	Debug     bool
	Hot       bool
	Seed      uint64
	Clipboard bool
}

type Game struct {
	opts Options

	setup    *pit.Setup
	world    *physics.World
	ctrl     *game.Controller
	input    *input.Ebiten
	renderer *render.Renderer
	sounds   *assets.Sounds
	watcher  *prefabs.Watcher

	gameOverUI *ebitenui.UI
	gameOver   bool
}

var _ game.Listener = (*Game)(nil)

func NewGame(opts Options) (*Game, error) {
	setup, err := pit.Load()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		input:  input.NewEbiten(),
		sounds: assets.NewSounds(),
	}
	g.renderer = render.New(theme(setup), setup.Catalog, assets.NewImages())
	if err := g.start(setup); err != nil {
		return nil, err
	}

	if opts.Hot {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// start builds a fresh world and controller for setup and spawns the first
// piece.
func (g *Game) start(setup *pit.Setup) error {
	world, err := setup.NewWorld()
	if err != nil {
		return err
	}
	var rng *rand.Rand
	if g.opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(g.opts.Seed, g.opts.Seed))
	}
	ctrl, err := game.NewController(setup.Game, setup.Catalog, world, game.Options{
		Input:    g.input,
		Listener: g,
		Rule:     setup.Rule,
		Rand:     rng,
	})
	if err != nil {
		return err
	}

	g.setup = setup
	g.world = world
	g.ctrl = ctrl
	g.ctrl.Start()
	return nil
}

func (g *Game) reload() {
	setup, err := pit.Load()
	if err != nil {
		log.Printf("prefabs: reload rejected: %v", err)
		return
	}
	if err := g.start(setup); err != nil {
		log.Printf("prefabs: reload rejected: %v", err)
		return
	}
	g.input.Reset()
	g.renderer.Reconfigure(theme(setup), setup.Catalog)
	g.closeGameOver()
	log.Printf("prefabs: reloaded")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	if changed, err := g.watcher.Changed(); err != nil {
		log.Printf("prefabs: watch: %v", err)
	} else if changed {
		g.reload()
	}

	if g.gameOver {
		g.gameOverUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.closeGameOver()
		}
		return nil
	}

	if err := g.ctrl.Update(tick); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, render.Frame{
		World:   g.world,
		Session: g.ctrl.Session(),
		Debug:   g.opts.Debug,
	})
	if g.gameOver {
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) ScoreChanged(int) {}

func (g *Game) Merged(tier int, _ game.Vec) {
	g.sounds.Merge(tier)
}

// GameOver pauses the simulation behind the dialog until the player closes it.
func (g *Game) GameOver(finalScore int) {
	log.Printf("game over: score %d", finalScore)
	g.gameOverUI = NewGameOverUI(g, finalScore)
	g.gameOver = true
}

func (g *Game) closeGameOver() {
	g.gameOver = false
	g.gameOverUI = nil
}

func theme(s *pit.Setup) render.Theme {
	return render.Theme{
		Background: s.Background,
		Wall:       s.Wall,
		Line:       s.Line,
	}
}
