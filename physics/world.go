package physics

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/suika/game"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypeFruit
)

const (
	spaceIterations = 20
	staticFriction  = 0.8
	// Chipmunk multiplies the elasticity of both shapes, so walls at 1 leave
	// a piece's restitution unchanged when it bounces off them.
	staticElasticity = 1.0
)

var ErrInvalidConfig = errors.New("physics: invalid config")

// Rect is an axis-aligned box given by its centre and size.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) bb() cp.BB {
	return cp.BB{
		L: r.X - r.Width/2,
		B: r.Y - r.Height/2,
		R: r.X + r.Width/2,
		T: r.Y + r.Height/2,
	}
}

type Config struct {
	Gravity float64
	// Density converts a piece's area into mass.
	Density  float64
	Friction float64

	Ground    Rect
	LeftWall  Rect
	RightWall Rect
	LossLine  Rect
	// SensorLabel is the label the loss line reports in collision pairs.
	SensorLabel string
}

// World owns the Chipmunk space, the static pit geometry and every piece.
// It implements game.Engine.
type World struct {
	cfg     Config
	space   *cp.Space
	walls   []Rect
	sensor  *Piece
	pieces  []*Piece
	byShape map[*cp.Shape]*Piece
	pending []game.CollisionPair
}

var _ game.Engine = (*World)(nil)

func NewWorld(cfg Config) (*World, error) {
	if cfg.Density <= 0 {
		return nil, fmt.Errorf("%w: density %v", ErrInvalidConfig, cfg.Density)
	}
	if cfg.SensorLabel == "" {
		cfg.SensorLabel = game.DefaultSensorLabel
	}

	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	w := &World{
		cfg:     cfg,
		space:   space,
		byShape: make(map[*cp.Shape]*Piece),
	}
	w.buildStaticShapes()
	w.setupHandlers()
	return w, nil
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Walls returns the solid static boxes: ground first, then the walls.
func (w *World) Walls() []Rect {
	return append([]Rect(nil), w.walls...)
}

func (w *World) LossLine() Rect {
	return w.cfg.LossLine
}

// Pieces returns the pieces in insertion order.
func (w *World) Pieces() []*Piece {
	return append([]*Piece(nil), w.pieces...)
}

func (w *World) buildStaticShapes() {
	for _, r := range []Rect{w.cfg.Ground, w.cfg.LeftWall, w.cfg.RightWall} {
		shape := cp.NewBox2(w.space.StaticBody, r.bb(), 0)
		shape.SetFriction(staticFriction)
		shape.SetElasticity(staticElasticity)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
		w.walls = append(w.walls, r)
	}

	shape := cp.NewBox2(w.space.StaticBody, w.cfg.LossLine.bb(), 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSensor)
	w.space.AddShape(shape)

	w.sensor = &Piece{
		body:   w.space.StaticBody,
		shape:  shape,
		label:  w.cfg.SensorLabel,
		static: true,
		center: game.Vec{X: w.cfg.LossLine.X, Y: w.cfg.LossLine.Y},
		world:  w,
	}
	w.byShape[shape] = w.sensor
}

func (w *World) setupHandlers() {
	record := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		world.recordBegin(arb)
		return true
	}

	fruitHandler := w.space.NewCollisionHandler(collisionTypeFruit, collisionTypeFruit)
	fruitHandler.UserData = w
	fruitHandler.BeginFunc = record

	sensorHandler := w.space.NewCollisionHandler(collisionTypeFruit, collisionTypeSensor)
	sensorHandler.UserData = w
	sensorHandler.BeginFunc = record
}

// recordBegin runs inside Step while the space is locked, so it only queues
// the pair. Removal and creation happen once the step has finished.
func (w *World) recordBegin(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	set := arb.ContactPointSet()
	contacts := make([]game.Vec, 0, set.Count)
	for i := 0; i < set.Count; i++ {
		p := set.Points[i].PointA
		contacts = append(contacts, game.Vec{X: p.X, Y: p.Y})
	}
	w.pending = append(w.pending, game.CollisionPair{
		A:        w.lookup(shapeA),
		B:        w.lookup(shapeB),
		Contacts: contacts,
	})
}

func (w *World) lookup(shape *cp.Shape) game.Body {
	if p, ok := w.byShape[shape]; ok {
		return p
	}
	return nil
}

// NewCircle builds a piece without adding it to the space.
func (w *World) NewCircle(def game.BodyDef) game.Body {
	r := def.Radius
	mass := w.cfg.Density * math.Pi * r * r
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
	body.SetPosition(cp.Vector{X: def.Position.X, Y: def.Position.Y})

	shape := cp.NewCircle(body, r, cp.Vector{})
	// Mass lives on the shape so a kinematic piece regains it when woken.
	shape.SetMass(mass)
	shape.SetFriction(w.cfg.Friction)
	shape.SetElasticity(def.Restitution)
	shape.SetCollisionType(collisionTypeFruit)

	c := def.Color
	if c == nil {
		c = color.White
	}
	return &Piece{
		body:    body,
		shape:   shape,
		label:   def.Label,
		radius:  r,
		color:   c,
		sprite:  def.Sprite,
		dormant: def.Dormant,
	}
}

func (w *World) Add(b game.Body) {
	p, ok := b.(*Piece)
	if !ok || p == nil || p.static || p.world != nil {
		return
	}
	w.space.AddBody(p.body)
	w.space.AddShape(p.shape)
	if p.dormant {
		p.body.SetType(cp.BODY_KINEMATIC)
	}
	p.world = w
	w.byShape[p.shape] = p
	w.pieces = append(w.pieces, p)
}

func (w *World) Remove(bodies ...game.Body) {
	for _, b := range bodies {
		p, ok := b.(*Piece)
		if !ok || p == nil || p.static || p.world != w {
			continue
		}
		w.detach(p)
		for i, have := range w.pieces {
			if have == p {
				w.pieces = append(w.pieces[:i], w.pieces[i+1:]...)
				break
			}
		}
	}
}

func (w *World) detach(p *Piece) {
	w.space.RemoveShape(p.shape)
	w.space.RemoveBody(p.body)
	delete(w.byShape, p.shape)
	p.world = nil
}

func (w *World) Contains(b game.Body) bool {
	p, ok := b.(*Piece)
	return ok && p != nil && p.world == w
}

// Clear removes every piece. Ground, walls and the loss line stay.
func (w *World) Clear() {
	for _, p := range w.pieces {
		w.detach(p)
	}
	w.pieces = nil
	w.pending = nil
}

func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

func (w *World) DrainCollisions() []game.CollisionPair {
	out := w.pending
	w.pending = nil
	return out
}
