package input

import "github.com/milk9111/suika/game"

// Snapshot is the raw device state for one frame.
type Snapshot struct {
	// Left and Right are true while a nudge key, d-pad button or the left
	// stick is held in that direction.
	Left, Right bool
	// DropPressed is true on the frame a drop key or button went down.
	DropPressed bool
	CursorX     int
	CursorY     int
	// CursorInside is false when the cursor is outside the window.
	CursorInside bool
}

// Translator turns per-frame snapshots into edge events for the controller.
// Holding both directions counts as holding neither.
type Translator struct {
	held       game.Direction
	holding    bool
	lastCursor int
	seenCursor bool
}

func (t *Translator) Next(s Snapshot) []game.InputEvent {
	var events []game.InputEvent

	dir, holding := heldDirection(s.Left, s.Right)
	if t.holding && (!holding || dir != t.held) {
		events = append(events, game.NudgeStop(t.held))
	}
	if holding && (!t.holding || dir != t.held) {
		events = append(events, game.NudgeStart(dir))
	}
	t.held, t.holding = dir, holding

	if s.CursorInside {
		if t.seenCursor && s.CursorX != t.lastCursor {
			events = append(events, game.PointerMove(float64(s.CursorX)))
		}
		t.lastCursor = s.CursorX
		t.seenCursor = true
	}

	if s.DropPressed {
		events = append(events, game.Drop())
	}
	return events
}

// Reset forgets the held direction without emitting a stop.
func (t *Translator) Reset() {
	t.held, t.holding = 0, false
}

func heldDirection(left, right bool) (game.Direction, bool) {
	switch {
	case left && !right:
		return game.Left, true
	case right && !left:
		return game.Right, true
	default:
		return 0, false
	}
}
