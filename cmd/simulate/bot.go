package main

import (
	"math/rand/v2"

	"github.com/milk9111/suika/game"
)

// bot drops a piece at a random x every interval polls.
type bot struct {
	rng      *rand.Rand
	bounds   game.Bounds
	interval int
	polls    int
}

var _ game.InputSource = (*bot)(nil)

func (b *bot) Poll() []game.InputEvent {
	b.polls++
	if b.interval > 0 && b.polls%b.interval != 0 {
		return nil
	}
	x := b.bounds.Left + b.rng.Float64()*(b.bounds.Right-b.bounds.Left)
	return []game.InputEvent{game.PointerMove(x), game.Drop()}
}

// tally records what happened over a run.
type tally struct {
	merges    int
	gameOvers int
	best      int
	topTier   int
}

var _ game.Listener = (*tally)(nil)

func (t *tally) ScoreChanged(score int) {
	t.best = max(t.best, score)
}

func (t *tally) Merged(tier int, _ game.Vec) {
	t.merges++
	t.topTier = max(t.topTier, tier+1)
}

func (t *tally) GameOver(int) {
	t.gameOvers++
}
