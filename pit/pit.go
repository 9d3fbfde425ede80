// Package pit assembles one playable configuration from the prefab specs:
// the fruit catalog, controller settings, physics geometry, colours and the
// score rule.
package pit

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/suika/fruit"
	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/physics"
	"github.com/milk9111/suika/prefabs"
	"github.com/milk9111/suika/rules"
	"golang.org/x/image/colornames"
)

type Setup struct {
	Catalog *fruit.Catalog
	Game    game.Config
	Physics physics.Config
	Rule    game.ScoreRule

	Background color.Color
	Wall       color.Color
	Line       color.Color
}

// Load reads fruits.yaml, pit.yaml and game.yaml, disk copies first.
func Load() (*Setup, error) {
	fruits, err := prefabs.LoadFruitsSpec()
	if err != nil {
		return nil, err
	}
	pitSpec, err := prefabs.LoadPitSpec()
	if err != nil {
		return nil, err
	}
	gameSpec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	return FromSpecs(fruits, pitSpec, gameSpec)
}

func FromSpecs(fruits *prefabs.FruitsSpec, p *prefabs.PitSpec, g *prefabs.GameSpec) (*Setup, error) {
	catalog, err := fruits.Catalog()
	if err != nil {
		return nil, err
	}

	left, right := p.InnerBounds()
	cfg := game.Config{
		Spawn:         game.Vec{X: p.Spawn.X, Y: p.Spawn.Y},
		Bounds:        game.Bounds{Left: left, Right: right},
		SensorLabel:   game.DefaultSensorLabel,
		MergeAward:    g.MergeAward,
		DropDelay:     g.DropDelay,
		GameOverDelay: g.GameOverDelay,
		NudgeInterval: g.NudgeInterval,
		NudgeStep:     g.NudgeStep,
		SpawnPool:     g.SpawnPool,
		Restitution:   g.Restitution,
	}
	if err := cfg.Validate(catalog); err != nil {
		return nil, err
	}

	var rule game.ScoreRule = game.FixedAward(g.MergeAward)
	if g.ScoreScript != "" {
		script, err := rules.Load(g.ScoreScript, g.MergeAward)
		if err != nil {
			return nil, err
		}
		log.Printf("pit: score rule %s", script.Name())
		rule = script
	}

	return &Setup{
		Catalog: catalog,
		Game:    cfg,
		Physics: physics.Config{
			Gravity:     p.Gravity,
			Density:     g.Density,
			Friction:    g.Friction,
			Ground:      rect(p.Ground),
			LeftWall:    rect(p.LeftWall),
			RightWall:   rect(p.RightWall),
			LossLine:    rect(p.LossLine),
			SensorLabel: cfg.SensorLabel,
		},
		Rule:       rule,
		Background: p.Background.Or(colornames.Beige),
		Wall:       p.WallColor.Or(colornames.Burlywood),
		Line:       p.LineColor.Or(colornames.Burlywood),
	}, nil
}

// NewWorld builds an empty physics world for the setup.
func (s *Setup) NewWorld() (*physics.World, error) {
	w, err := physics.NewWorld(s.Physics)
	if err != nil {
		return nil, fmt.Errorf("pit: %w", err)
	}
	return w, nil
}

func rect(r prefabs.RectSpec) physics.Rect {
	return physics.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
