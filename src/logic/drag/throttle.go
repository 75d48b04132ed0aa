package drag

import "time"

// Throttle rate-limits pointer moves. The first call fires at once; calls
// inside the interval collapse into one trailing call carrying the latest
// coordinates, released by Flush once the interval has passed.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	fn       func(x, y int)

	open    bool // inside an interval
	opened  time.Time
	pending bool
	px, py  int
}

func NewThrottle(interval time.Duration, now func() time.Time, fn func(x, y int)) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now, fn: fn}
}

// Call fires at once when no interval is open. An overdue trailing call is
// dropped in favour of x, y.
func (t *Throttle) Call(x, y int) {
	if t.overdue() {
		t.open = false
		t.pending = false
	}
	if !t.open {
		t.fire(x, y)
		return
	}
	t.pending = true
	t.px, t.py = x, y
}

// Flush releases the trailing call when its interval is over. Call it once
// per frame.
func (t *Throttle) Flush() {
	t.expire()
}

// Pending reports whether a trailing call is waiting.
func (t *Throttle) Pending() bool { return t.pending }

// Reset drops any trailing call and closes the interval.
func (t *Throttle) Reset() {
	t.open = false
	t.pending = false
}

func (t *Throttle) overdue() bool {
	return t.open && t.now().Sub(t.opened) >= t.interval
}

func (t *Throttle) expire() {
	if !t.overdue() {
		return
	}
	t.open = false
	if t.pending {
		t.pending = false
		t.fire(t.px, t.py)
	}
}

func (t *Throttle) fire(x, y int) {
	t.open = true
	t.opened = t.now()
	t.fn(x, y)
}
