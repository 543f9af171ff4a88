// Package control holds the driver-independent loop state shared by the
// window and terminal front ends: pause, single stepping, resets and gravity
// input.
package control

import (
	"time"

	"tilt-sand/internal/core"
	"tilt-sand/internal/sims/sand"
)

// Action is a user intent decoded from a key press.
type Action int

const (
	None Action = iota
	Quit
	Pause
	StepOnce
	Reset
	Reseed
	RotateLeft
	RotateRight
	Compass
	ToggleView
)

// Command is an action plus its argument. Digit is only read for Compass.
type Command struct {
	Action Action
	Digit  int
}

// Tiltable is a simulation whose pull direction can be changed between ticks.
type Tiltable interface {
	RotateGravity(delta float64)
	SetGravityAngle(angle float64)
	GravityAngle() float64
	RotateStep() float64
}

// Session tracks pause state and routes commands to the simulation.
type Session struct {
	sim  core.Sim
	tilt Tiltable

	Seed    int64
	Paused  bool
	Rotated bool

	tickOnce bool
	clock    func() int64
}

// NewSession wraps sim. Gravity commands are ignored when sim cannot tilt.
func NewSession(sim core.Sim, seed int64) *Session {
	s := &Session{sim: sim, Seed: seed, clock: func() int64 { return time.Now().UnixNano() }}
	if t, ok := sim.(Tiltable); ok {
		s.tilt = t
	}
	return s
}

// Sim returns the wrapped simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// ViewAngle returns the clockwise rotation a renderer should apply so that
// gravity points down the screen, or 0 when the rotated view is off.
func (s *Session) ViewAngle() float64 {
	if !s.Rotated || s.tilt == nil {
		return 0
	}
	return s.tilt.GravityAngle()
}

// Apply executes cmd and reports whether the driver should exit.
func (s *Session) Apply(cmd Command) bool {
	switch cmd.Action {
	case Quit:
		return true
	case Pause:
		s.Paused = !s.Paused
	case StepOnce:
		s.tickOnce = true
	case Reset:
		s.reset(s.Seed)
	case Reseed:
		s.reset(s.clock())
	case RotateLeft:
		if s.tilt != nil {
			s.tilt.RotateGravity(s.tilt.RotateStep())
		}
	case RotateRight:
		if s.tilt != nil {
			s.tilt.RotateGravity(-s.tilt.RotateStep())
		}
	case Compass:
		if s.tilt == nil {
			break
		}
		if angle, ok := sand.NumpadAngle(cmd.Digit); ok {
			s.tilt.SetGravityAngle(angle)
		}
	case ToggleView:
		s.Rotated = !s.Rotated
	}
	return false
}

// Advance steps the simulation unless paused, honouring a pending single
// step. It reports whether a tick ran.
func (s *Session) Advance() bool {
	if s.Paused && !s.tickOnce {
		return false
	}
	s.sim.Step()
	s.tickOnce = false
	return true
}

func (s *Session) reset(seed int64) {
	s.Seed = seed
	s.sim.Reset(seed)
	s.tickOnce = false
}
