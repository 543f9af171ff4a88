package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStep(tps int) (*FixedStep, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	fs := NewFixedStep(tps)
	fs.now = clk.now
	return fs, clk
}

func TestFixedStepFirstCallSteps(t *testing.T) {
	fs, _ := newTestStep(10)
	if fs.Due() != 1 {
		t.Fatal("expected the first call to step immediately")
	}
	if fs.Due() != 0 {
		t.Fatal("expected no second step without time passing")
	}
}

func TestFixedStepWaitsForInterval(t *testing.T) {
	fs, clk := newTestStep(10)
	fs.Due()
	clk.advance(50 * time.Millisecond)
	if fs.Due() != 0 {
		t.Fatal("expected no step before the interval elapsed")
	}
	clk.advance(50 * time.Millisecond)
	if fs.Due() != 1 {
		t.Fatal("expected a step after the interval elapsed")
	}
}

func TestFixedStepDueCountsAndCaps(t *testing.T) {
	fs, clk := newTestStep(100)
	if got := fs.Due(); got != 1 {
		t.Fatalf("first Due = %d, want 1", got)
	}
	clk.advance(35 * time.Millisecond)
	if got := fs.Due(); got != 3 {
		t.Fatalf("Due after 35ms = %d, want 3", got)
	}
	clk.advance(5 * time.Millisecond)
	if got := fs.Due(); got != 1 {
		t.Fatalf("leftover time should carry over, Due = %d", got)
	}
	clk.advance(time.Second)
	if got := fs.Due(); got != maxCatchUp {
		t.Fatalf("stall should be capped at %d, got %d", maxCatchUp, got)
	}
	if got := fs.Due(); got != 0 {
		t.Fatalf("backlog should be dropped after a cap, got %d", got)
	}
}

func TestFixedStepSetTPS(t *testing.T) {
	fs, _ := newTestStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("default interval = %v", fs.Interval())
	}
	fs.SetTPS(20)
	if fs.Interval() != 50*time.Millisecond {
		t.Fatalf("interval = %v", fs.Interval())
	}
}
