package game

import "fmt"

type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

type InputKind int

const (
	InputNudgeStart InputKind = iota + 1
	InputNudgeStop
	InputPointerMove
	InputDrop
)

// InputEvent is one player command. Dir is set for nudges, X for pointer
// moves.
type InputEvent struct {
	Kind InputKind
	Dir  Direction
	X    float64
}

func NudgeStart(dir Direction) InputEvent { return InputEvent{Kind: InputNudgeStart, Dir: dir} }
func NudgeStop(dir Direction) InputEvent  { return InputEvent{Kind: InputNudgeStop, Dir: dir} }
func PointerMove(x float64) InputEvent    { return InputEvent{Kind: InputPointerMove, X: x} }
func Drop() InputEvent                    { return InputEvent{Kind: InputDrop} }

// InputSource yields the input events gathered since the previous poll.
type InputSource interface {
	Poll() []InputEvent
}

// InputQueue is an InputSource fed programmatically.
type InputQueue struct {
	events []InputEvent
}

func (q *InputQueue) Push(events ...InputEvent) {
	if q == nil {
		return
	}
	q.events = append(q.events, events...)
}

func (q *InputQueue) Poll() []InputEvent {
	if q == nil || len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
