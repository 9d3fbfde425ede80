package game

import "image/color"

// Vec is a point or displacement in playfield coordinates (y grows downward).
type Vec struct {
	X, Y float64
}

// Body is a physical circle (or static shape) owned by the engine's world.
type Body interface {
	Label() string
	Position() Vec
	// SetPosition teleports the body. It is not physics driven.
	SetPosition(p Vec)
	// Wake makes a dormant body subject to gravity and collisions.
	Wake()
	Dormant() bool
}

// BodyDef describes a circular piece for Engine.NewCircle.
type BodyDef struct {
	Label       string
	Position    Vec
	Radius      float64
	Color       color.Color
	Sprite      string
	Dormant     bool
	Restitution float64
}

// CollisionPair is one collision-begin notification. Contacts holds the
// contact points reported for the pair, first point first.
type CollisionPair struct {
	A, B     Body
	Contacts []Vec
}

// Engine is the physics capability the controller drives. Implementations
// step on the caller's goroutine and buffer collision-begin pairs until they
// are drained.
type Engine interface {
	NewCircle(def BodyDef) Body
	Add(b Body)
	Remove(bodies ...Body)
	Contains(b Body) bool
	// Clear removes every piece and keeps static geometry (ground, walls,
	// loss sensor).
	Clear()
	Step(dt float64)
	DrainCollisions() []CollisionPair
}
