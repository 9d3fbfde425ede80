package physics

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/suika/fruit"
	"github.com/milk9111/suika/game"
)

const tick = time.Second / 60

func pitConfig() Config {
	return Config{
		Gravity:     1000,
		Density:     0.001,
		Friction:    0.1,
		Ground:      Rect{X: 310, Y: 820, Width: 620, Height: 60},
		LeftWall:    Rect{X: 15, Y: 395, Width: 30, Height: 790},
		RightWall:   Rect{X: 605, Y: 395, Width: 30, Height: 790},
		LossLine:    Rect{X: 310, Y: 150, Width: 620, Height: 2},
		SensorLabel: game.DefaultSensorLabel,
	}
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(pitConfig())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func stepFor(w *World, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		w.Step(tick.Seconds())
	}
}

func addCircle(w *World, label string, x, y, r float64, dormant bool) *Piece {
	b := w.NewCircle(game.BodyDef{
		Label:       label,
		Position:    game.Vec{X: x, Y: y},
		Radius:      r,
		Dormant:     dormant,
		Restitution: 0.2,
	})
	w.Add(b)
	return b.(*Piece)
}

func TestNewWorldRejectsDensity(t *testing.T) {
	cfg := pitConfig()
	cfg.Density = 0
	if _, err := NewWorld(cfg); err == nil {
		t.Fatal("expected error for zero density")
	}
}

func TestDormantPieceHoldsStill(t *testing.T) {
	w := newTestWorld(t)
	p := addCircle(w, "a", 300, 400, 20, true)

	stepFor(w, time.Second)
	if got := p.Position(); got.X != 300 || got.Y != 400 {
		t.Fatalf("dormant piece moved to %+v", got)
	}

	p.Wake()
	if p.Dormant() {
		t.Fatal("piece still dormant after Wake")
	}
	stepFor(w, 200*time.Millisecond)
	if got := p.Position(); got.Y <= 400 {
		t.Fatalf("woken piece did not fall: y=%v", got.Y)
	}
}

func TestPieceRestsOnGround(t *testing.T) {
	w := newTestWorld(t)
	p := addCircle(w, "a", 300, 600, 20, false)

	stepFor(w, 3*time.Second)
	groundTop := pitConfig().Ground.Y - pitConfig().Ground.Height/2
	y := p.Position().Y
	if y > groundTop-19 || y < groundTop-21 {
		t.Fatalf("piece y=%v, want resting near %v", y, groundTop-20)
	}
}

func TestSetPositionMovesDormantPiece(t *testing.T) {
	w := newTestWorld(t)
	p := addCircle(w, "a", 300, 50, 20, true)

	p.SetPosition(game.Vec{X: 120, Y: 50})
	stepFor(w, 100*time.Millisecond)
	if got := p.Position(); got.X != 120 || got.Y != 50 {
		t.Fatalf("position = %+v, want {120 50}", got)
	}
}

func TestFruitCollisionRecorded(t *testing.T) {
	w := newTestWorld(t)
	low := addCircle(w, "a", 300, 740, 20, false)
	high := addCircle(w, "a", 300, 600, 20, false)

	var pairs []game.CollisionPair
	for i := 0; i < 180 && len(pairs) == 0; i++ {
		w.Step(tick.Seconds())
		pairs = append(pairs, w.DrainCollisions()...)
	}
	if len(pairs) == 0 {
		t.Fatal("no collision recorded")
	}
	pair := pairs[0]
	if !((pair.A == low && pair.B == high) || (pair.A == high && pair.B == low)) {
		t.Fatalf("unexpected pair %+v", pair)
	}
	if len(pair.Contacts) == 0 {
		t.Fatal("pair has no contact points")
	}
	if got := w.DrainCollisions(); len(got) != 0 {
		t.Fatalf("drain not reset: %d pairs", len(got))
	}
}

func TestSensorCollisionRecorded(t *testing.T) {
	w := newTestWorld(t)
	p := addCircle(w, "a", 300, 100, 10, false)

	var sensorPair *game.CollisionPair
	for i := 0; i < 60 && sensorPair == nil; i++ {
		w.Step(tick.Seconds())
		for _, pair := range w.DrainCollisions() {
			if pair.A.Label() == game.DefaultSensorLabel || pair.B.Label() == game.DefaultSensorLabel {
				pair := pair
				sensorPair = &pair
			}
		}
	}
	if sensorPair == nil {
		t.Fatal("piece crossed the loss line without a sensor pair")
	}
	if sensorPair.A != p && sensorPair.B != p {
		t.Fatalf("sensor pair does not involve the piece: %+v", sensorPair)
	}
	if !w.Contains(sensorPair.B) && !w.Contains(sensorPair.A) {
		t.Fatal("world does not report the piece as contained")
	}
}

func TestRemoveAndContains(t *testing.T) {
	w := newTestWorld(t)
	a := addCircle(w, "a", 100, 400, 20, false)
	b := addCircle(w, "b", 200, 400, 20, false)

	if !w.Contains(a) || !w.Contains(b) {
		t.Fatal("added pieces not contained")
	}
	w.Remove(a)
	w.Remove(a)
	if w.Contains(a) {
		t.Fatal("removed piece still contained")
	}
	if got := len(w.Pieces()); got != 1 {
		t.Fatalf("pieces = %d, want 1", got)
	}

	w.Remove(w.sensor)
	if !w.Contains(w.sensor) {
		t.Fatal("static sensor was removed")
	}
}

func TestClearKeepsStaticGeometry(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 5; i++ {
		addCircle(w, "a", 100+float64(i)*50, 400, 20, false)
	}
	w.Clear()
	if got := len(w.Pieces()); got != 0 {
		t.Fatalf("pieces after Clear = %d", got)
	}
	if got := len(w.Walls()); got != 3 {
		t.Fatalf("walls = %d, want 3", got)
	}

	p := addCircle(w, "a", 300, 600, 20, false)
	stepFor(w, 3*time.Second)
	if y := p.Position().Y; y > 790 {
		t.Fatalf("piece fell through the ground after Clear: y=%v", y)
	}
}

func TestControllerMergesOnChipmunk(t *testing.T) {
	catalog, err := fruit.NewCatalog([]fruit.Tier{
		{Label: "a", Radius: 20},
		{Label: "b", Radius: 30},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	w := newTestWorld(t)
	cfg := game.DefaultConfig()
	cfg.SpawnPool = 1

	ctrl, err := game.NewController(cfg, catalog, w, game.Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	ctrl.Start()

	run := func(d time.Duration) {
		t.Helper()
		for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
			if err := ctrl.Update(tick); err != nil {
				t.Fatalf("Update: %v", err)
			}
		}
	}

	ctrl.HandleInput(game.Drop())
	run(600 * time.Millisecond)
	ctrl.HandleInput(game.Drop())
	run(3 * time.Second)

	if got := ctrl.Session().Score; got != cfg.MergeAward {
		t.Fatalf("score = %d, want %d", got, cfg.MergeAward)
	}
	labels := map[string]int{}
	for _, p := range w.Pieces() {
		labels[p.Label()]++
	}
	if labels["b"] != 1 || labels["a"] != 1 {
		t.Fatalf("pieces = %v, want one merged b and one held a", labels)
	}
}
