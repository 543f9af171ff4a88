package core

import "time"

// maxCatchUp bounds how many ticks Due hands out after a stall. Any backlog
// beyond it is dropped.
const maxCatchUp = 4

// FixedStep turns wall-clock time into a steady number of simulation ticks.
type FixedStep struct {
	step    time.Duration
	pending time.Duration
	last    time.Time
	now     func() time.Time
}

// NewFixedStep constructs a FixedStep targeting the given TPS. The first tick
// is due immediately.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.pending = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Due reports how many ticks have become due since the previous call and
// consumes them.
func (f *FixedStep) Due() int {
	f.advance()
	n := int(f.pending / f.step)
	if n > maxCatchUp {
		n = maxCatchUp
		f.pending = 0
		return n
	}
	f.pending -= time.Duration(n) * f.step
	return n
}

func (f *FixedStep) advance() {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.pending += now.Sub(f.last)
	f.last = now
}
