package prefabs

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	fruits, err := LoadFruitsSpec()
	if err != nil {
		t.Fatalf("LoadFruitsSpec: %v", err)
	}
	catalog, err := fruits.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if catalog.Len() < 5 {
		t.Fatalf("expected at least five tiers, got %d", catalog.Len())
	}

	pit, err := LoadPitSpec()
	if err != nil {
		t.Fatalf("LoadPitSpec: %v", err)
	}
	left, right := pit.InnerBounds()
	if left != 30 || right != 590 {
		t.Fatalf("inner bounds = %v, %v; want 30, 590", left, right)
	}

	g, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if g.DropDelay != 500*time.Millisecond || g.GameOverDelay != time.Second || g.NudgeInterval != 5*time.Millisecond {
		t.Fatalf("unexpected timings: %+v", g)
	}
	if g.MergeAward != 10 {
		t.Fatalf("merge award = %d", g.MergeAward)
	}
}

func TestEmbeddedScriptsLoad(t *testing.T) {
	for _, name := range []string{"award.tengo", "scripts/award.tengo", "prefabs/scripts/tiered_award.tengo"} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScript(name); err != nil {
				t.Fatalf("LoadScript(%q): %v", name, err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#F7F4C8"`, want: color.NRGBA{R: 0xF7, G: 0xF4, B: 0xC8, A: 0xFF}},
		{in: `"26AA1E80"`, want: color.NRGBA{R: 0x26, G: 0xAA, B: 0x1E, A: 0x80}},
		{in: `"#FFF"`, wantErr: true},
		{in: `"#GGGGGG"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("got %v, want %v", got.Color, c.want)
			}
		})
	}
}

func TestPitSpecValidate(t *testing.T) {
	base := func() PitSpec {
		return PitSpec{
			Ground:    RectSpec{X: 310, Y: 820, Width: 620, Height: 60},
			LeftWall:  RectSpec{X: 15, Y: 395, Width: 30, Height: 790},
			RightWall: RectSpec{X: 605, Y: 395, Width: 30, Height: 790},
			LossLine:  RectSpec{X: 310, Y: 150, Width: 620, Height: 2},
			Spawn:     PointSpec{X: 300, Y: 50},
		}
	}
	cases := []struct {
		name   string
		mutate func(p *PitSpec)
		ok     bool
	}{
		{"valid", func(p *PitSpec) {}, true},
		{"overlapping_walls", func(p *PitSpec) { p.RightWall.X = 20 }, false},
		{"spawn_outside", func(p *PitSpec) { p.Spawn.X = 700 }, false},
		{"line_below_ground", func(p *PitSpec) { p.LossLine.Y = 800 }, false},
		{"line_above_spawn", func(p *PitSpec) { p.LossLine.Y = 10 }, false},
		{"flat_ground", func(p *PitSpec) { p.Ground.Height = 0 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := base()
			c.mutate(&p)
			err := p.Validate()
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestGameSpecValidate(t *testing.T) {
	valid := GameSpec{
		MergeAward:    10,
		DropDelay:     500 * time.Millisecond,
		GameOverDelay: time.Second,
		NudgeInterval: 5 * time.Millisecond,
		NudgeStep:     2,
		SpawnPool:     5,
		Density:       0.001,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	cases := map[string]func(g *GameSpec){
		"negative_award": func(g *GameSpec) { g.MergeAward = -1 },
		"negative_delay": func(g *GameSpec) { g.DropDelay = -time.Millisecond },
		"zero_interval":  func(g *GameSpec) { g.NudgeInterval = 0 },
		"zero_step":      func(g *GameSpec) { g.NudgeStep = 0 },
		"empty_pool":     func(g *GameSpec) { g.SpawnPool = 0 },
		"zero_density":   func(g *GameSpec) { g.Density = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			g := valid
			mutate(&g)
			if err := g.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}
