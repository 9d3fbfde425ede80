// Command simulate plays the game headlessly with a random bot against the
// real physics and prints a summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/suika/common"
	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/pit"
	"github.com/milk9111/suika/rules"
)

func main() {
	ticks := flag.Int("ticks", common.TPS*60*10, "number of 1/TPS ticks to simulate")
	seed := flag.Uint64("seed", 1, "seed for spawns and bot input")
	every := flag.Int("every", 45, "ticks between bot drops")
	script := flag.String("script", "", "score script in prefabs/scripts (overrides game.yaml)")
	flag.Parse()

	setup, err := pit.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *script != "" {
		rule, err := rules.Load(*script, setup.Game.MergeAward)
		if err != nil {
			log.Fatal(err)
		}
		setup.Rule = rule
	}

	world, err := setup.NewWorld()
	if err != nil {
		log.Fatal(err)
	}

	t := &tally{}
	ctrl, err := game.NewController(setup.Game, setup.Catalog, world, game.Options{
		Input: &bot{
			rng:      rand.New(rand.NewPCG(*seed, *seed+1)),
			bounds:   setup.Game.Bounds,
			interval: *every,
		},
		Listener: t,
		Rule:     setup.Rule,
		Rand:     rand.New(rand.NewPCG(*seed, *seed)),
	})
	if err != nil {
		log.Fatal(err)
	}
	ctrl.Start()

	dt := time.Second / common.TPS
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if err := ctrl.Update(dt); err != nil {
			log.Fatalf("tick %d: %v", i, err)
		}
	}

	top := setup.Catalog.At(min(t.topTier, setup.Catalog.Len()-1)).Label
	fmt.Printf("simulated %v in %v\n", time.Duration(*ticks)*dt, time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s  best %d  merges %d  game overs %d  largest %s  pieces %d\n",
		game.ScoreText(ctrl.Session().Score), t.best, t.merges, t.gameOvers, top, len(world.Pieces()))
}
