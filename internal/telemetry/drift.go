// Package telemetry measures how faithfully grains follow the gravity vector
// and records per-tick traces for offline analysis.
package telemetry

import (
	"fmt"
	"math"
	"slices"

	"tilt-sand/internal/sims/sand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DriftSample compares the ideal and actual displacement of a lone grain.
type DriftSample struct {
	Angle       float64 `csv:"angle"`
	Accumulator string  `csv:"accumulator"`
	Ticks       int     `csv:"ticks"`
	ExpectedDR  float64 `csv:"expected_dr"`
	ExpectedDC  float64 `csv:"expected_dc"`
	ActualDR    int     `csv:"actual_dr"`
	ActualDC    int     `csv:"actual_dc"`
	Error       float64 `csv:"error"`
}

// MeasureDrift drops one grain in the middle of an open field large enough
// that it never reaches an edge, ticks it and reports how far it ended from
// ticks times the gravity vector.
func MeasureDrift(angle float64, ticks int, mode sand.AccumulatorMode) (DriftSample, error) {
	if ticks <= 0 {
		return DriftSample{}, fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	if _, err := sand.NewAccumulator(mode); err != nil {
		return DriftSample{}, err
	}
	side := 2*ticks + 3
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = side, side
	cfg.Enclosure = sand.EnclosureConfig{Kind: sand.EnclosureNone}
	cfg.Params.GravityAngle = angle
	cfg.Params.Accumulator = mode
	cfg.Params.Fallback = false
	cfg.Params.Spawn = false
	cfg.Params.InitialParticles = 0

	w := sand.NewWithConfig(cfg)
	start := sand.Point{R: side / 2, C: side / 2}
	w.AddParticle(start)
	for i := 0; i < ticks; i++ {
		w.Tick()
	}
	end := w.Particles()[0].Pos

	v := w.Gravity().Vec()
	s := DriftSample{
		Angle:       w.Gravity().Angle(),
		Accumulator: string(w.Config().Params.Accumulator),
		Ticks:       ticks,
		ExpectedDR:  float64(ticks) * v.Y,
		ExpectedDC:  float64(ticks) * v.X,
		ActualDR:    end.R - start.R,
		ActualDC:    end.C - start.C,
	}
	s.Error = math.Hypot(float64(s.ActualDR)-s.ExpectedDR, float64(s.ActualDC)-s.ExpectedDC)
	return s, nil
}

// Angles returns 0, step, 2*step ... below 360.
func Angles(step float64) []float64 {
	if step <= 0 {
		step = 1
	}
	var out []float64
	for a := 0.0; a < 360; a += step {
		out = append(out, a)
	}
	return out
}

// Sweep measures drift for every angle.
func Sweep(angles []float64, ticks int, mode sand.AccumulatorMode) ([]DriftSample, error) {
	out := make([]DriftSample, 0, len(angles))
	for _, a := range angles {
		s, err := MeasureDrift(a, ticks, mode)
		if err != nil {
			return nil, fmt.Errorf("angle %g: %w", a, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Summary aggregates the error column of a sweep.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	P90   float64
	Max   float64
}

// Summarize computes error statistics over samples.
func Summarize(samples []DriftSample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	errs := make([]float64, len(samples))
	for i, s := range samples {
		errs[i] = s.Error
	}
	sorted := slices.Clone(errs)
	slices.Sort(sorted)
	sum := Summary{
		Count: len(errs),
		Mean:  stat.Mean(errs, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:   floats.Max(errs),
	}
	if len(errs) > 1 {
		sum.Std = stat.StdDev(errs, nil)
	}
	return sum
}

// Errors returns the error column, in sweep order, for plotting.
func Errors(samples []DriftSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Error
	}
	return out
}
