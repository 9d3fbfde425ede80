package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/suika/common"
	"github.com/milk9111/suika/fruit"
)

var ErrInvalidConfig = errors.New("game: invalid config")

// DefaultSensorLabel is the label carried by the loss line sensor.
const DefaultSensorLabel = "loss_line"

// Bounds is the horizontal range between the pit's inner wall faces.
type Bounds struct {
	Left, Right float64
}

// Clamp keeps a circle of radius r centred at x inside the bounds.
func (b Bounds) Clamp(x, r float64) float64 {
	return common.Clamp(x, b.Left+r, b.Right-r)
}

type Config struct {
	Spawn         Vec
	Bounds        Bounds
	SensorLabel   string
	MergeAward    int
	DropDelay     time.Duration
	GameOverDelay time.Duration
	NudgeInterval time.Duration
	NudgeStep     float64
	// SpawnPool limits random spawns to the smallest SpawnPool tiers.
	SpawnPool   int
	Restitution float64
}

// DefaultConfig returns the reference tuning for a 620 unit wide pit with
// 30 unit walls.
func DefaultConfig() Config {
	return Config{
		Spawn:         Vec{X: 300, Y: 50},
		Bounds:        Bounds{Left: 30, Right: 590},
		SensorLabel:   DefaultSensorLabel,
		MergeAward:    10,
		DropDelay:     500 * time.Millisecond,
		GameOverDelay: time.Second,
		NudgeInterval: 5 * time.Millisecond,
		NudgeStep:     2,
		SpawnPool:     5,
		Restitution:   0.2,
	}
}

func (c Config) Validate(catalog *fruit.Catalog) error {
	switch {
	case catalog.Len() == 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, fruit.ErrEmptyCatalog)
	case c.Bounds.Left >= c.Bounds.Right:
		return fmt.Errorf("%w: bounds %v >= %v", ErrInvalidConfig, c.Bounds.Left, c.Bounds.Right)
	case c.SensorLabel == "":
		return fmt.Errorf("%w: empty sensor label", ErrInvalidConfig)
	case c.NudgeInterval <= 0 || c.NudgeStep <= 0:
		return fmt.Errorf("%w: nudge interval and step must be positive", ErrInvalidConfig)
	case c.DropDelay < 0 || c.GameOverDelay < 0:
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	case c.SpawnPool < 1:
		return fmt.Errorf("%w: spawn pool %d", ErrInvalidConfig, c.SpawnPool)
	}
	if _, clash := catalog.Index(c.SensorLabel); clash {
		return fmt.Errorf("%w: sensor label %q is also a tier label", ErrInvalidConfig, c.SensorLabel)
	}
	return nil
}

// ScoreText renders the score readout.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}
