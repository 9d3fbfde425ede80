package physics

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/suika/game"
)

// Piece is a fruit circle or the static loss sensor. It implements game.Body.
type Piece struct {
	body    *cp.Body
	shape   *cp.Shape
	label   string
	radius  float64
	color   color.Color
	sprite  string
	dormant bool
	static  bool
	center  game.Vec
	world   *World
}

var _ game.Body = (*Piece)(nil)

func (p *Piece) Label() string {
	return p.label
}

func (p *Piece) Position() game.Vec {
	if p.static {
		return p.center
	}
	v := p.body.Position()
	return game.Vec{X: v.X, Y: v.Y}
}

func (p *Piece) SetPosition(v game.Vec) {
	if p.static {
		return
	}
	p.body.SetPosition(cp.Vector{X: v.X, Y: v.Y})
	if p.dormant {
		p.body.SetVelocity(0, 0)
	}
}

// Wake turns a dormant kinematic piece into a dynamic one.
func (p *Piece) Wake() {
	if !p.dormant {
		return
	}
	p.dormant = false
	p.body.SetType(cp.BODY_DYNAMIC)
	p.body.Activate()
}

func (p *Piece) Dormant() bool {
	return p.dormant
}

func (p *Piece) Radius() float64 {
	return p.radius
}

func (p *Piece) Angle() float64 {
	if p.static {
		return 0
	}
	return p.body.Angle()
}

func (p *Piece) Color() color.Color {
	return p.color
}

func (p *Piece) Sprite() string {
	return p.sprite
}
