package sand

import (
	"strconv"

	"tilt-sand/internal/core"
)

// Parameters reports the current configuration for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.grid.W()),
				intParam("h", "Height", w.grid.H()),
				int64Param("seed", "Seed", w.cfg.Seed),
				stringParam("enclosure", "Enclosure", w.cfg.Enclosure.Kind),
				intParam("particles", "Particles", len(w.particles)),
				intParam("tick", "Tick", w.tick),
			},
		},
		{
			Name: "Gravity",
			Params: []core.Parameter{
				floatParam("gravity_angle", "Gravity angle", w.gravity.Angle()),
				floatParam("rotate_step", "Rotate step", params.RotateStep),
			},
		},
		{
			Name: "Stepping",
			Params: []core.Parameter{
				stringParam("accumulator", "Accumulator", string(w.resolver.Accumulator().Mode())),
				stringParam("resolve", "Resolve", string(w.resolver.Mode())),
				boolParam("fallback", "Diagonal fallback", w.resolver.Fallback()),
			},
		},
		{
			Name: "Spawning",
			Params: []core.Parameter{
				boolParam("spawn", "Spawn", params.Spawn),
				intParam("max_particles", "Max particles", params.MaxParticles),
				boolParam("auto_flip", "Auto flip", params.AutoFlip),
				intParam("flip_delay", "Flip delay", params.FlipDelay),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable settings.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "gravity_angle", Label: "Gravity", Type: core.ParamTypeFloat, Step: w.cfg.Params.RotateStep},
		{Key: "rotate_step", Label: "Rotate step", Type: core.ParamTypeFloat, Step: 5, Min: 1, Max: 90, HasMin: true, HasMax: true},
		{Key: "accumulator", Label: "Accumulator", Type: core.ParamTypeString},
		{Key: "resolve", Label: "Resolve", Type: core.ParamTypeString},
		{Key: "fallback", Label: "Fallback", Type: core.ParamTypeBool},
		{Key: "spawn", Label: "Spawn", Type: core.ParamTypeBool},
		{Key: "max_particles", Label: "Max grains", Type: core.ParamTypeInt, Step: 10, Min: 0, HasMin: true},
		{Key: "auto_flip", Label: "Auto flip", Type: core.ParamTypeBool},
		{Key: "flip_delay", Label: "Flip delay", Type: core.ParamTypeInt, Step: 5, Min: 0, HasMin: true},
	}
}

// SetIntParameter implements core.IntParameterSetter.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "max_particles":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.MaxParticles = value
	case "flip_delay":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.FlipDelay = value
	default:
		return false
	}
	return true
}

// SetFloatParameter implements core.FloatParameterSetter.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "gravity_angle":
		w.SetGravityAngle(value)
	case "rotate_step":
		if value < 1 {
			value = 1
		}
		if value > 90 {
			value = 90
		}
		w.cfg.Params.RotateStep = value
	default:
		return false
	}
	return true
}

// SetBoolParameter implements core.BoolParameterSetter.
func (w *World) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "fallback":
		w.cfg.Params.Fallback = value
		w.resolver.SetFallback(value)
	case "spawn":
		w.cfg.Params.Spawn = value
	case "auto_flip":
		w.cfg.Params.AutoFlip = value
		w.restTicks = 0
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
