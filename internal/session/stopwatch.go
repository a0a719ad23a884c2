package session

import "time"

// Stopwatch measures how long a question stays on screen. Callers pass the
// current time in, so it holds no clock of its own. Time spent paused is
// not counted.
type Stopwatch struct {
	start    time.Time
	pausedAt time.Time
	running  bool
}

// Begin starts timing at now, discarding any previous start or pause.
func (w *Stopwatch) Begin(now time.Time) {
	w.start = now
	w.pausedAt = time.Time{}
	w.running = true
}

// Pause freezes the measurement at now until Resume.
func (w *Stopwatch) Pause(now time.Time) {
	if w.running && !w.Paused() {
		w.pausedAt = now
	}
}

// Resume continues timing, leaving out the span since Pause.
func (w *Stopwatch) Resume(now time.Time) {
	if !w.Paused() {
		return
	}
	if d := now.Sub(w.pausedAt); d > 0 {
		w.start = w.start.Add(d)
	}
	w.pausedAt = time.Time{}
}

// Paused reports whether Pause was called without a matching Resume.
func (w *Stopwatch) Paused() bool {
	return !w.pausedAt.IsZero()
}

// Elapsed returns the time measured so far without stopping.
func (w *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !w.running {
		return 0
	}
	if w.Paused() {
		now = w.pausedAt
	}
	return max(now.Sub(w.start), 0)
}

// End stops timing and returns the elapsed duration. It returns 0 and false
// when Begin was not called. Clock skew never yields a negative duration.
func (w *Stopwatch) End(now time.Time) (time.Duration, bool) {
	if !w.running {
		return 0, false
	}
	d := w.Elapsed(now)
	w.running = false
	w.pausedAt = time.Time{}
	return d, true
}

// Running reports whether Begin was called without a matching End.
func (w *Stopwatch) Running() bool {
	return w.running
}
