package game

// Listener observes session changes. Calls happen on the controller's
// goroutine, from inside Update, HandleInput or ResolveCollisions.
type Listener interface {
	ScoreChanged(score int)
	// Merged is called after two pieces of tier merged at point at.
	Merged(tier int, at Vec)
	// GameOver is called with the score captured when the loss line was
	// crossed, right before the session resets.
	GameOver(finalScore int)
}

type NopListener struct{}

func (NopListener) ScoreChanged(int) {}
func (NopListener) Merged(int, Vec)  {}
func (NopListener) GameOver(int)     {}

// ScoreRule decides how many points a merge of tier is worth.
type ScoreRule interface {
	Award(tier int, label string, score int) int
}

// FixedAward awards the same number of points for every merge.
type FixedAward int

func (f FixedAward) Award(int, string, int) int {
	return int(f)
}
