package pit

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/prefabs"
)

func loadSpecs(t *testing.T) (*prefabs.FruitsSpec, *prefabs.PitSpec, *prefabs.GameSpec) {
	t.Helper()
	fruits, err := prefabs.LoadFruitsSpec()
	if err != nil {
		t.Fatalf("LoadFruitsSpec: %v", err)
	}
	p, err := prefabs.LoadPitSpec()
	if err != nil {
		t.Fatalf("LoadPitSpec: %v", err)
	}
	g, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	return fruits, p, g
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Catalog.Len(); got != 11 {
		t.Fatalf("catalog len = %d, want 11", got)
	}
	if s.Game.Bounds != (game.Bounds{Left: 30, Right: 590}) {
		t.Fatalf("bounds = %+v", s.Game.Bounds)
	}
	if s.Game.Spawn != (game.Vec{X: 300, Y: 50}) {
		t.Fatalf("spawn = %+v", s.Game.Spawn)
	}
	if s.Game.DropDelay != 500*time.Millisecond || s.Game.GameOverDelay != time.Second {
		t.Fatalf("delays = %v / %v", s.Game.DropDelay, s.Game.GameOverDelay)
	}
	if _, ok := s.Rule.(game.FixedAward); !ok {
		t.Fatalf("rule = %T, want FixedAward", s.Rule)
	}
	if s.Physics.SensorLabel != game.DefaultSensorLabel {
		t.Fatalf("sensor label = %q", s.Physics.SensorLabel)
	}

	w, err := s.NewWorld()
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if got := len(w.Walls()); got != 3 {
		t.Fatalf("walls = %d, want 3", got)
	}
}

func TestFromSpecsScript(t *testing.T) {
	fruits, p, g := loadSpecs(t)
	g.ScoreScript = "tiered_award.tengo"

	s, err := FromSpecs(fruits, p, g)
	if err != nil {
		t.Fatalf("FromSpecs: %v", err)
	}
	if got := s.Rule.Award(2, "02_grape", 0); got != 40 {
		t.Fatalf("award = %d, want 40", got)
	}

	g.ScoreScript = "missing.tengo"
	if _, err := FromSpecs(fruits, p, g); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestFromSpecsRejectsSensorClash(t *testing.T) {
	fruits, p, g := loadSpecs(t)
	fruits.Tiers[0].Label = game.DefaultSensorLabel

	_, err := FromSpecs(fruits, p, g)
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}
