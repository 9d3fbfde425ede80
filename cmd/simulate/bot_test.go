package main

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/suika/game"
)

func TestBotDropsOnInterval(t *testing.T) {
	b := &bot{
		rng:      rand.New(rand.NewPCG(3, 4)),
		bounds:   game.Bounds{Left: 30, Right: 590},
		interval: 3,
	}
	for i := 1; i <= 30; i++ {
		events := b.Poll()
		if i%3 != 0 {
			if len(events) != 0 {
				t.Fatalf("poll %d: unexpected events %v", i, events)
			}
			continue
		}
		if len(events) != 2 || events[0].Kind != game.InputPointerMove || events[1].Kind != game.InputDrop {
			t.Fatalf("poll %d: events = %v", i, events)
		}
		if x := events[0].X; x < 30 || x > 590 {
			t.Fatalf("poll %d: x = %v outside bounds", i, x)
		}
	}
}

func TestTally(t *testing.T) {
	var tl tally
	tl.ScoreChanged(10)
	tl.ScoreChanged(0)
	tl.Merged(2, game.Vec{})
	tl.Merged(0, game.Vec{})
	tl.GameOver(10)

	if tl.best != 10 || tl.merges != 2 || tl.topTier != 3 || tl.gameOvers != 1 {
		t.Fatalf("tally = %+v", tl)
	}
}
