package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/milk9111/suika/fruit"
)

// ErrMalformedCollision reports a collision pair that violates the engine
// contract: a missing body, an unlabelled body, or a merge without contact
// points. There is no sensible recovery for it.
var ErrMalformedCollision = errors.New("game: malformed collision event")

// Session is the per-game mutable state. It is owned by one Controller.
type Session struct {
	Score int
	// Held is the dormant piece the player is positioning, nil while a drop
	// is in flight.
	Held Body
	// HeldTier is the catalog index of the most recently spawned piece, -1
	// before the first spawn.
	HeldTier        int
	InputLocked     bool
	GameOverPending bool

	nudge    TimerID
	nudgeDir Direction
	drop     TimerID
	gameOver TimerID
}

// Nudging reports the direction of the active repeating nudge, if any.
func (s Session) Nudging() (Direction, bool) {
	return s.nudgeDir, s.nudge != 0
}

type Options struct {
	Input    InputSource
	Listener Listener
	// Rule overrides the fixed merge award from Config.
	Rule ScoreRule
	Rand *rand.Rand
}

// Controller orchestrates one game: it spawns pieces, applies player input to
// the held piece, resolves merges and the loss condition, and keeps the
// score. All methods must be called from one goroutine.
type Controller struct {
	cfg      Config
	catalog  *fruit.Catalog
	engine   Engine
	input    InputSource
	listener Listener
	rule     ScoreRule
	rng      *rand.Rand
	timers   Timers
	session  Session
}

func NewController(cfg Config, catalog *fruit.Catalog, engine Engine, opts Options) (*Controller, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrInvalidConfig)
	}
	if err := cfg.Validate(catalog); err != nil {
		return nil, err
	}
	if cfg.SpawnPool > catalog.Len() {
		cfg.SpawnPool = catalog.Len()
	}

	c := &Controller{
		cfg:      cfg,
		catalog:  catalog,
		engine:   engine,
		input:    opts.Input,
		listener: opts.Listener,
		rule:     opts.Rule,
		rng:      opts.Rand,
		session:  Session{HeldTier: -1},
	}
	if c.listener == nil {
		c.listener = NopListener{}
	}
	if c.rule == nil {
		c.rule = FixedAward(cfg.MergeAward)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c, nil
}

// Start publishes the initial score and spawns the first held piece.
func (c *Controller) Start() {
	c.listener.ScoreChanged(c.session.Score)
	c.SpawnNext()
}

func (c *Controller) Session() Session {
	return c.session
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Update runs one simulation tick: input, physics step, collision
// resolution, then timers.
func (c *Controller) Update(dt time.Duration) error {
	if c.input != nil {
		for _, ev := range c.input.Poll() {
			c.HandleInput(ev)
		}
	}
	c.engine.Step(dt.Seconds())
	if err := c.ResolveCollisions(c.engine.DrainCollisions()); err != nil {
		return err
	}
	c.timers.Advance(dt)
	return nil
}

// Advance runs the scheduled continuations that fall due within dt without
// stepping physics.
func (c *Controller) Advance(dt time.Duration) {
	c.timers.Advance(dt)
}

// SpawnNext creates the next dormant held piece at the spawn point. The tier
// is drawn uniformly from the spawn pool and never repeats the previous held
// tier unless the pool has a single tier.
func (c *Controller) SpawnNext() Body {
	idx := c.pickTier()
	tier := c.catalog.At(idx)
	body := c.engine.NewCircle(BodyDef{
		Label:       tier.Label,
		Position:    c.cfg.Spawn,
		Radius:      tier.Radius,
		Color:       tier.Color,
		Sprite:      tier.Sprite,
		Dormant:     true,
		Restitution: c.cfg.Restitution,
	})
	c.engine.Add(body)
	c.session.Held = body
	c.session.HeldTier = idx
	return body
}

func (c *Controller) pickTier() int {
	pool := c.cfg.SpawnPool
	for {
		i := c.rng.IntN(pool)
		if pool < 2 || i != c.session.HeldTier {
			return i
		}
	}
}

func (c *Controller) HandleInput(ev InputEvent) {
	switch ev.Kind {
	case InputNudgeStart:
		c.startNudge(ev.Dir)
	case InputNudgeStop:
		c.stopNudge(ev.Dir)
	case InputPointerMove:
		c.movePointer(ev.X)
	case InputDrop:
		c.drop()
	}
}

func (c *Controller) startNudge(dir Direction) {
	if dir != Left && dir != Right {
		return
	}
	if c.session.InputLocked || c.session.nudge != 0 {
		return
	}
	c.session.nudgeDir = dir
	c.session.nudge = c.timers.Every(c.cfg.NudgeInterval, func() {
		c.nudgeTick(dir)
	})
}

func (c *Controller) stopNudge(dir Direction) {
	if c.session.nudge == 0 || dir != c.session.nudgeDir {
		return
	}
	c.timers.Cancel(c.session.nudge)
	c.session.nudge = 0
}

func (c *Controller) nudgeTick(dir Direction) {
	held := c.session.Held
	if held == nil || c.session.InputLocked {
		return
	}
	p := held.Position()
	p.X = c.cfg.Bounds.Clamp(p.X+float64(dir)*c.cfg.NudgeStep, c.heldRadius())
	held.SetPosition(p)
}

func (c *Controller) movePointer(x float64) {
	held := c.session.Held
	if held == nil || c.session.InputLocked {
		return
	}
	p := held.Position()
	p.X = c.cfg.Bounds.Clamp(x, c.heldRadius())
	held.SetPosition(p)
}

func (c *Controller) heldRadius() float64 {
	if c.session.HeldTier < 0 {
		return 0
	}
	return c.catalog.At(c.session.HeldTier).Radius
}

func (c *Controller) drop() {
	held := c.session.Held
	if held == nil || c.session.InputLocked {
		return
	}
	c.session.InputLocked = true
	held.Wake()
	c.session.Held = nil
	c.session.drop = c.timers.After(c.cfg.DropDelay, func() {
		c.session.drop = 0
		c.SpawnNext()
		c.session.InputLocked = false
	})
}

// ResolveCollisions applies the merge and loss rules to each pair in order.
// Equal-label pairs merge only when both bodies are still in the world and
// neither is dormant, so the held piece never merges until it is dropped.
// It stops at the first malformed pair.
func (c *Controller) ResolveCollisions(pairs []CollisionPair) error {
	for i, pair := range pairs {
		if err := validatePair(pair); err != nil {
			return fmt.Errorf("game: collision %d: %w", i, err)
		}
		if err := c.resolveMerge(pair); err != nil {
			return fmt.Errorf("game: collision %d: %w", i, err)
		}
		c.resolveLoss(pair)
	}
	return nil
}

func validatePair(pair CollisionPair) error {
	if pair.A == nil || pair.B == nil {
		return fmt.Errorf("%w: missing body", ErrMalformedCollision)
	}
	if pair.A.Label() == "" || pair.B.Label() == "" {
		return fmt.Errorf("%w: unlabelled body", ErrMalformedCollision)
	}
	return nil
}

func (c *Controller) resolveMerge(pair CollisionPair) error {
	label := pair.A.Label()
	if label != pair.B.Label() || pair.A == pair.B {
		return nil
	}
	idx, ok := c.catalog.Index(label)
	if !ok {
		return nil
	}
	// A piece may touch several equal pieces in one step; only the first
	// pair that reaches it merges.
	if !c.engine.Contains(pair.A) || !c.engine.Contains(pair.B) {
		return nil
	}
	if pair.A.Dormant() || pair.B.Dormant() {
		return nil
	}
	if len(pair.Contacts) == 0 {
		return fmt.Errorf("%w: %q merge without contact points", ErrMalformedCollision, label)
	}

	at := pair.Contacts[0]
	c.engine.Remove(pair.A, pair.B)
	if next, ok := c.catalog.Successor(idx); ok {
		body := c.engine.NewCircle(BodyDef{
			Label:       next.Label,
			Position:    at,
			Radius:      next.Radius,
			Color:       next.Color,
			Sprite:      next.Sprite,
			Restitution: c.cfg.Restitution,
		})
		c.engine.Add(body)
	}

	if award := c.rule.Award(idx, label, c.session.Score); award > 0 {
		c.session.Score += award
	}
	c.listener.ScoreChanged(c.session.Score)
	c.listener.Merged(idx, at)
	return nil
}

func (c *Controller) resolveLoss(pair CollisionPair) {
	sensor := c.cfg.SensorLabel
	if pair.A.Label() != sensor && pair.B.Label() != sensor {
		return
	}
	if c.session.InputLocked || c.session.GameOverPending {
		return
	}
	final := c.session.Score
	c.session.GameOverPending = true
	c.session.gameOver = c.timers.After(c.cfg.GameOverDelay, func() {
		c.session.gameOver = 0
		c.listener.GameOver(final)
		c.Reset()
	})
}

// Reset starts a fresh game: score zero, every piece removed, pending drop
// and game-over continuations cancelled, and one new held piece.
func (c *Controller) Reset() {
	if c.session.gameOver != 0 {
		c.timers.Cancel(c.session.gameOver)
		c.session.gameOver = 0
	}
	c.session.GameOverPending = false
	if c.session.drop != 0 {
		c.timers.Cancel(c.session.drop)
		c.session.drop = 0
	}
	c.session.InputLocked = false
	c.session.Score = 0
	c.listener.ScoreChanged(c.session.Score)
	c.engine.Clear()
	c.session.Held = nil
	c.SpawnNext()
}
