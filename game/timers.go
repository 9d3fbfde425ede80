package game

import "time"

// TimerID identifies a scheduled continuation. The zero value is never
// issued.
type TimerID uint64

type timer struct {
	id    TimerID
	due   time.Duration
	every time.Duration
	seq   uint64
	fn    func()
}

// Timers runs delayed and repeating continuations on a virtual clock that only
// moves when Advance is called, so callbacks run on the caller's goroutine
// and never preempt each other. Timers due at the same instant fire in the
// order they were scheduled.
type Timers struct {
	now     time.Duration
	nextID  TimerID
	seq     uint64
	pending []*timer
}

// Now returns the virtual time. Inside a callback it is the callback's due
// time.
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules fn to run once, d after now.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	return t.schedule(d, 0, fn)
}

// Every schedules fn to run every d, starting d after now.
func (t *Timers) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		d = time.Nanosecond
	}
	return t.schedule(d, d, fn)
}

func (t *Timers) schedule(d, every time.Duration, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.seq++
	t.pending = append(t.pending, &timer{
		id:    t.nextID,
		due:   t.now + d,
		every: every,
		seq:   t.seq,
		fn:    fn,
	})
	return t.nextID
}

// Cancel stops a pending timer. It reports whether the timer was pending.
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.remove(i)
			return true
		}
	}
	return false
}

// Active reports whether id is still scheduled.
func (t *Timers) Active(id TimerID) bool {
	if id == 0 {
		return false
	}
	for _, tm := range t.pending {
		if tm.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Advance moves the clock forward by dt and runs every continuation that
// falls due, including ones scheduled by callbacks within the window.
func (t *Timers) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := t.now + dt
	for {
		i := t.earliest(target)
		if i < 0 {
			break
		}
		tm := t.pending[i]
		t.now = tm.due
		if tm.every > 0 {
			tm.due += tm.every
			t.seq++
			tm.seq = t.seq
		} else {
			t.remove(i)
		}
		tm.fn()
	}
	t.now = target
}

func (t *Timers) earliest(limit time.Duration) int {
	best := -1
	for i, tm := range t.pending {
		if tm.due > limit {
			continue
		}
		if best < 0 || tm.due < t.pending[best].due || (tm.due == t.pending[best].due && tm.seq < t.pending[best].seq) {
			best = i
		}
	}
	return best
}

func (t *Timers) remove(i int) {
	last := len(t.pending) - 1
	copy(t.pending[i:], t.pending[i+1:])
	t.pending[last] = nil
	t.pending = t.pending[:last]
}
