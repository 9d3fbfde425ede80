package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/suika/common"
	"github.com/milk9111/suika/game"
)

const stickDeadzone = 0.3

// Ebiten reads keyboard, mouse and the first gamepad. It implements
// game.InputSource and must be polled from Game.Update.
type Ebiten struct {
	translator Translator
}

var _ game.InputSource = (*Ebiten)(nil)

func NewEbiten() *Ebiten {
	return &Ebiten{}
}

func (e *Ebiten) Poll() []game.InputEvent {
	return e.translator.Next(read())
}

// Reset drops the remembered nudge direction, used when the session is
// rebuilt while a key is still down.
func (e *Ebiten) Reset() {
	e.translator.Reset()
}

func read() Snapshot {
	var s Snapshot

	s.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	s.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	s.DropPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		s.Left = s.Left || leftX < -stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		s.Right = s.Right || leftX > stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		s.DropPressed = s.DropPressed ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	s.CursorX, s.CursorY = ebiten.CursorPosition()
	s.CursorInside = s.CursorX >= 0 && s.CursorX < common.BaseWidth &&
		s.CursorY >= 0 && s.CursorY < common.BaseHeight
	return s
}
