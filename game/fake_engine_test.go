package game

type fakeBody struct {
	label   string
	pos     Vec
	radius  float64
	dormant bool
	wakes   int
}

func (b *fakeBody) Label() string     { return b.label }
func (b *fakeBody) Position() Vec     { return b.pos }
func (b *fakeBody) SetPosition(p Vec) { b.pos = p }
func (b *fakeBody) Dormant() bool     { return b.dormant }

func (b *fakeBody) Wake() {
	b.dormant = false
	b.wakes++
}

// fakeEngine is an in-memory world with no simulation; tests inject
// collision pairs directly.
type fakeEngine struct {
	bodies  []*fakeBody
	statics []*fakeBody
	pending []CollisionPair
	created []*fakeBody
	steps   int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		statics: []*fakeBody{{label: DefaultSensorLabel}},
	}
}

func (e *fakeEngine) sensor() *fakeBody {
	return e.statics[0]
}

func (e *fakeEngine) NewCircle(def BodyDef) Body {
	b := &fakeBody{label: def.Label, pos: def.Position, radius: def.Radius, dormant: def.Dormant}
	e.created = append(e.created, b)
	return b
}

func (e *fakeEngine) Add(b Body) {
	e.bodies = append(e.bodies, b.(*fakeBody))
}

func (e *fakeEngine) Remove(bodies ...Body) {
	for _, b := range bodies {
		for i, have := range e.bodies {
			if Body(have) == b {
				e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
				break
			}
		}
	}
}

func (e *fakeEngine) Contains(b Body) bool {
	for _, s := range e.statics {
		if Body(s) == b {
			return true
		}
	}
	for _, have := range e.bodies {
		if Body(have) == b {
			return true
		}
	}
	return false
}

func (e *fakeEngine) Clear() {
	e.bodies = nil
	e.pending = nil
}

func (e *fakeEngine) Step(float64) {
	e.steps++
}

func (e *fakeEngine) DrainCollisions() []CollisionPair {
	out := e.pending
	e.pending = nil
	return out
}

// place adds an active body of the given label directly to the world.
func (e *fakeEngine) place(label string, x, y float64) *fakeBody {
	b := &fakeBody{label: label, pos: Vec{X: x, Y: y}}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *fakeEngine) count(label string) int {
	n := 0
	for _, b := range e.bodies {
		if b.label == label {
			n++
		}
	}
	return n
}

type recordingListener struct {
	scores    []int
	merges    []int
	gameOvers []int
}

func (l *recordingListener) ScoreChanged(score int) { l.scores = append(l.scores, score) }
func (l *recordingListener) Merged(tier int, _ Vec) { l.merges = append(l.merges, tier) }
func (l *recordingListener) GameOver(final int)     { l.gameOvers = append(l.gameOvers, final) }
