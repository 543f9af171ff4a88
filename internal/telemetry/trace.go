package telemetry

import (
	"fmt"
	"io"

	"tilt-sand/internal/sims/sand"

	"github.com/gocarina/gocsv"
)

// TraceRow is the summary of one tick.
type TraceRow struct {
	Tick      int     `csv:"tick"`
	Angle     float64 `csv:"angle"`
	Particles int     `csv:"particles"`
	Moved     int     `csv:"moved"`
	Settled   int     `csv:"settled"`
	Flips     int     `csv:"flips"`
}

// Trace runs ticks steps of w and records each one.
func Trace(w *sand.World, ticks int) []TraceRow {
	rows := make([]TraceRow, 0, max(ticks, 0))
	for i := 0; i < ticks; i++ {
		stats := w.Tick()
		rows = append(rows, TraceRow{
			Tick:      w.TickCount(),
			Angle:     w.GravityAngle(),
			Particles: w.ParticleCount(),
			Moved:     stats.Moved,
			Settled:   stats.Settled,
			Flips:     w.Flips(),
		})
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV[T any](w io.Writer, rows []T) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
