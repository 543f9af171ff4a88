package ui

import (
	"math"
	"strconv"

	"tilt-sand/internal/core"
)

const (
	defaultFloatStep = 0.05
	unknownValue     = "--"
)

// ControlRow is one HUD line: the declared control and the value last read
// from the simulation.
type ControlRow struct {
	Def   core.ParameterControl
	Text  string
	Known bool

	num  float64
	flag bool
}

// Controls tracks the adjustable parameters of a simulation independently of
// how they are drawn.
type Controls struct {
	rows   []ControlRow
	ints   core.IntParameterSetter
	floats core.FloatParameterSetter
	bools  core.BoolParameterSetter
}

// NewControls collects the controls and setters a simulation exposes.
func NewControls(sim core.Sim) *Controls {
	c := &Controls{}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, def := range provider.ParameterControls() {
			c.rows = append(c.rows, ControlRow{Def: def, Text: unknownValue})
		}
	}
	c.ints, _ = sim.(core.IntParameterSetter)
	c.floats, _ = sim.(core.FloatParameterSetter)
	c.bools, _ = sim.(core.BoolParameterSetter)
	return c
}

// Len returns the number of rows.
func (c *Controls) Len() int { return len(c.rows) }

// Row returns row i.
func (c *Controls) Row(i int) ControlRow { return c.rows[i] }

// Refresh re-reads every row's value from the snapshot.
func (c *Controls) Refresh(snap core.ParameterSnapshot) {
	for i := range c.rows {
		row := &c.rows[i]
		row.Known = false
		row.Text = unknownValue
		param, ok := snap.Lookup(row.Def.Key)
		if !ok {
			continue
		}
		switch row.Def.Type {
		case core.ParamTypeInt, core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			row.num = v
			row.Text = formatNumber(row.Def, v)
		case core.ParamTypeBool:
			v, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			row.flag = v
			row.Text = onOff(v)
		case core.ParamTypeString:
			if param.Value == "" {
				continue
			}
			row.Text = param.Value
		default:
			continue
		}
		row.Known = true
	}
}

// CanAdjust reports whether pressing the button in direction dir (-1 or +1)
// on row i would change anything.
func (c *Controls) CanAdjust(i, dir int) bool {
	_, ok := c.target(i, dir)
	return ok
}

// Adjust applies one step in direction dir to row i and reports whether the
// simulation accepted it.
func (c *Controls) Adjust(i, dir int) bool {
	next, ok := c.target(i, dir)
	if !ok {
		return false
	}
	row := &c.rows[i]
	var accepted bool
	switch row.Def.Type {
	case core.ParamTypeInt:
		accepted = c.ints.SetIntParameter(row.Def.Key, int(next))
	case core.ParamTypeFloat:
		accepted = c.floats.SetFloatParameter(row.Def.Key, next)
	case core.ParamTypeBool:
		accepted = c.bools.SetBoolParameter(row.Def.Key, next > 0)
	}
	if !accepted {
		return false
	}
	if row.Def.Type == core.ParamTypeBool {
		row.flag = next > 0
		row.Text = onOff(row.flag)
	} else {
		row.num = next
		row.Text = formatNumber(row.Def, next)
	}
	return true
}

// target computes the value one step away, encoding booleans as 0 and 1.
func (c *Controls) target(i, dir int) (float64, bool) {
	if i < 0 || i >= len(c.rows) || dir == 0 {
		return 0, false
	}
	row := c.rows[i]
	if !row.Known {
		return 0, false
	}
	switch row.Def.Type {
	case core.ParamTypeInt:
		if c.ints == nil {
			return 0, false
		}
		step := math.Max(1, math.Round(row.Def.Step))
		return clampStep(row.Def, row.num, row.num+float64(dir)*step)
	case core.ParamTypeFloat:
		if c.floats == nil {
			return 0, false
		}
		step := row.Def.Step
		if step <= 0 {
			step = defaultFloatStep
		}
		return clampStep(row.Def, row.num, row.num+float64(dir)*step)
	case core.ParamTypeBool:
		want := dir > 0
		if c.bools == nil || want == row.flag {
			return 0, false
		}
		if want {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func clampStep(def core.ParameterControl, cur, next float64) (float64, bool) {
	if def.HasMin && next < def.Min {
		next = def.Min
	}
	if def.HasMax && next > def.Max {
		next = def.Max
	}
	if math.Abs(next-cur) < 1e-9 {
		return 0, false
	}
	return next, true
}

func formatNumber(def core.ParameterControl, v float64) string {
	if def.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := def.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
