// Package audio plays a short click whenever a grain comes to rest.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 40 * time.Millisecond
)

// Clicker owns the speaker and mixes landing clicks into it. All methods are
// safe to call before Initialize succeeds; they do nothing.
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	pitch       float64
}

// NewClicker returns an uninitialised clicker.
func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}, pitch: 1800}
}

// Initialize opens the audio device.
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Click queues one landing click.
func (c *Clicker) Click() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.mixer.Add(Click(sampleRate, c.pitch))
}

// Cleanup silences pending clicks.
func (c *Clicker) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.mixer.Clear()
	c.initialized = false
}

// Click returns a finite streamer holding one decaying click.
func Click(sr beep.SampleRate, freq float64) beep.Streamer {
	return beep.Take(sr.N(clickDuration), &ClickGenerator{sr: sr, freq: freq})
}

// ClickGenerator produces a sine burst with a fast exponential decay.
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// Stream implements beep.Streamer.
func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.25 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t/0.008)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *ClickGenerator) Err() error {
	return nil
}
