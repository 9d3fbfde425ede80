package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/suika/fruit"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	FruitsFile = "fruits.yaml"
	PitFile    = "pit.yaml"
	GameFile   = "game.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type FruitSpec struct {
	Label  string    `yaml:"label"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
	Sprite string    `yaml:"sprite"`
}

type FruitsSpec struct {
	Tiers []FruitSpec `yaml:"tiers"`
}

func LoadFruitsSpec() (*FruitsSpec, error) {
	spec, err := LoadSpec[FruitsSpec](FruitsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Catalog converts the tier list into a validated fruit catalog.
func (s *FruitsSpec) Catalog() (*fruit.Catalog, error) {
	if s == nil {
		return nil, fruit.ErrEmptyCatalog
	}
	tiers := make([]fruit.Tier, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		tiers = append(tiers, fruit.Tier{
			Label:  t.Label,
			Radius: t.Radius,
			Color:  t.Color.Color,
			Sprite: t.Sprite,
		})
	}
	return fruit.NewCatalog(tiers)
}

// RectSpec is an axis-aligned box given by its centre and size.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r RectSpec) Left() float64   { return r.X - r.Width/2 }
func (r RectSpec) Right() float64  { return r.X + r.Width/2 }
func (r RectSpec) Top() float64    { return r.Y - r.Height/2 }
func (r RectSpec) Bottom() float64 { return r.Y + r.Height/2 }

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PitSpec struct {
	Background YAMLColor `yaml:"background"`
	WallColor  YAMLColor `yaml:"wall_color"`
	LineColor  YAMLColor `yaml:"line_color"`
	Gravity    float64   `yaml:"gravity"`
	Ground     RectSpec  `yaml:"ground"`
	LeftWall   RectSpec  `yaml:"left_wall"`
	RightWall  RectSpec  `yaml:"right_wall"`
	LossLine   RectSpec  `yaml:"loss_line"`
	Spawn      PointSpec `yaml:"spawn"`
}

func LoadPitSpec() (*PitSpec, error) {
	spec, err := LoadSpec[PitSpec](PitFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PitFile, err)
	}
	return &spec, nil
}

// InnerBounds returns the x range between the inner faces of the walls.
func (p *PitSpec) InnerBounds() (left, right float64) {
	return p.LeftWall.Right(), p.RightWall.Left()
}

func (p *PitSpec) Validate() error {
	for name, r := range map[string]RectSpec{
		"ground":     p.Ground,
		"left_wall":  p.LeftWall,
		"right_wall": p.RightWall,
		"loss_line":  p.LossLine,
	} {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: %s has non-positive size", ErrInvalidSpec, name)
		}
	}
	left, right := p.InnerBounds()
	if left >= right {
		return fmt.Errorf("%w: walls overlap (inner %v >= %v)", ErrInvalidSpec, left, right)
	}
	if p.Spawn.X < left || p.Spawn.X > right {
		return fmt.Errorf("%w: spawn x %v outside walls", ErrInvalidSpec, p.Spawn.X)
	}
	if p.LossLine.Y <= p.Spawn.Y || p.LossLine.Y >= p.Ground.Top() {
		return fmt.Errorf("%w: loss line must sit between spawn point and ground", ErrInvalidSpec)
	}
	return nil
}

type GameSpec struct {
	MergeAward    int           `yaml:"merge_award"`
	DropDelay     time.Duration `yaml:"drop_delay"`
	GameOverDelay time.Duration `yaml:"game_over_delay"`
	NudgeInterval time.Duration `yaml:"nudge_interval"`
	NudgeStep     float64       `yaml:"nudge_step"`
	SpawnPool     int           `yaml:"spawn_pool"`
	Restitution   float64       `yaml:"restitution"`
	Friction      float64       `yaml:"friction"`
	Density       float64       `yaml:"density"`
	ScoreScript   string        `yaml:"score_script"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", GameFile, err)
	}
	return &spec, nil
}

func (g *GameSpec) Validate() error {
	switch {
	case g.MergeAward < 0:
		return fmt.Errorf("%w: merge_award must not be negative", ErrInvalidSpec)
	case g.DropDelay < 0 || g.GameOverDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidSpec)
	case g.NudgeInterval <= 0:
		return fmt.Errorf("%w: nudge_interval must be positive", ErrInvalidSpec)
	case g.NudgeStep <= 0:
		return fmt.Errorf("%w: nudge_step must be positive", ErrInvalidSpec)
	case g.SpawnPool < 1:
		return fmt.Errorf("%w: spawn_pool must be at least 1", ErrInvalidSpec)
	case g.Density <= 0:
		return fmt.Errorf("%w: density must be positive", ErrInvalidSpec)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the colour, or fallback when none was configured.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
