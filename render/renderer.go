package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/suika/assets"
	"github.com/milk9111/suika/common"
	"github.com/milk9111/suika/fruit"
	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/physics"
	"golang.org/x/image/colornames"
)

const (
	lossDash = 12.0
	lossGap  = 8.0

	panelX      = 660.0
	chainTop    = 140.0
	chainRow    = 62.0
	scoreSize   = 32
	labelSize   = 16
	initialSize = 14
)

// Theme holds the pit colours.
type Theme struct {
	Background color.Color
	Wall       color.Color
	Line       color.Color
}

// Frame is everything drawn in one Draw call.
type Frame struct {
	World   *physics.World
	Session game.Session
	Debug   bool
}

type Renderer struct {
	theme   Theme
	catalog *fruit.Catalog
	images  *assets.Images

	scoreFace   text.Face
	labelFace   text.Face
	initialFace text.Face
}

func New(theme Theme, catalog *fruit.Catalog, images *assets.Images) *Renderer {
	return &Renderer{
		theme:       theme,
		catalog:     catalog,
		images:      images,
		scoreFace:   assets.Face(scoreSize),
		labelFace:   assets.Face(labelSize),
		initialFace: assets.Face(initialSize),
	}
}

// Reconfigure swaps the theme and catalog after a prefab reload.
func (r *Renderer) Reconfigure(theme Theme, catalog *fruit.Catalog) {
	r.theme = theme
	r.catalog = catalog
	r.images.Forget()
}

func (r *Renderer) Draw(screen *ebiten.Image, f Frame) {
	screen.Fill(r.theme.Background)
	if f.World == nil {
		return
	}

	r.drawPit(screen, f.World)
	if held, ok := f.Session.Held.(*physics.Piece); ok && !f.Session.InputLocked {
		r.drawGuide(screen, held, f.World)
	}
	for _, p := range f.World.Pieces() {
		r.drawPiece(screen, p)
	}

	r.drawScore(screen, f.Session.Score)
	r.drawChain(screen)

	if f.Debug {
		DebugDraw(screen, f.World.Space())
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  pieces: %d", ebiten.ActualFPS(), len(f.World.Pieces())), int(panelX), common.BaseHeight-20)
	}
}

func (r *Renderer) drawPit(screen *ebiten.Image, w *physics.World) {
	for _, rect := range w.Walls() {
		fillRect(screen, rect, r.theme.Wall)
	}
	line := w.LossLine()
	y := float32(line.Y)
	for _, d := range dashes(line.X-line.Width/2, line.X+line.Width/2, lossDash, lossGap) {
		vector.StrokeLine(screen, float32(d[0]), y, float32(d[1]), y, float32(line.Height), r.theme.Line, false)
	}
}

func (r *Renderer) drawGuide(screen *ebiten.Image, held *physics.Piece, w *physics.World) {
	pos := held.Position()
	bottom := float64(common.BaseHeight)
	if walls := w.Walls(); len(walls) > 0 {
		ground := walls[0]
		bottom = ground.Y - ground.Height/2
	}
	c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	vector.StrokeLine(screen, float32(pos.X), float32(pos.Y+held.Radius()), float32(pos.X), float32(bottom), 2, c, true)
}

func (r *Renderer) drawPiece(screen *ebiten.Image, p *physics.Piece) {
	pos := p.Position()
	if img := r.images.Get(p.Sprite()); img != nil {
		b := img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())
		scale := 2 * p.Radius() / max(w, h)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Rotate(p.Angle())
		op.GeoM.Translate(pos.X, pos.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		return
	}

	x, y, rad := float32(pos.X), float32(pos.Y), float32(p.Radius())
	vector.DrawFilledCircle(screen, x, y, rad, p.Color(), true)
	vector.StrokeCircle(screen, x, y, rad, 2, shade(p.Color(), 0.7), true)
	r.drawCentered(screen, initial(p.Label()), r.initialFace, pos.X, pos.Y, shade(p.Color(), 0.4))
}

func (r *Renderer) drawScore(screen *ebiten.Image, score int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(panelX, 40)
	op.ColorScale.ScaleWithColor(colornames.Black)
	text.Draw(screen, game.ScoreText(score), r.scoreFace, op)
}

// drawChain lists every tier from smallest to largest on the side panel.
func (r *Renderer) drawChain(screen *ebiten.Image) {
	if r.catalog == nil {
		return
	}
	cx := panelX + 30
	for i := 0; i < r.catalog.Len(); i++ {
		tier := r.catalog.At(i)
		cy := chainTop + float64(i)*chainRow
		rad := chipRadius(tier.Radius)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(rad), tier.Color, true)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(rad), 1.5, shade(tier.Color, 0.7), true)

		op := &text.DrawOptions{}
		_, h := text.Measure(displayName(tier.Label), r.labelFace, 0)
		op.GeoM.Translate(cx+40, cy-h/2)
		op.ColorScale.ScaleWithColor(colornames.Dimgray)
		text.Draw(screen, displayName(tier.Label), r.labelFace, op)
	}
}

func (r *Renderer) drawCentered(screen *ebiten.Image, s string, face text.Face, x, y float64, c color.Color) {
	if s == "" {
		return
	}
	w, h := text.Measure(s, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x-w/2, y-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func fillRect(screen *ebiten.Image, r physics.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X-r.Width/2), float32(r.Y-r.Height/2), float32(r.Width), float32(r.Height), c, false)
}
