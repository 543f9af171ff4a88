package app

import (
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	ConfigPath string
	Overrides  Overrides
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	Rotated    bool
	LogLevel   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Overrides: Overrides{}, Scale: 12, TPS: 30, HUDWidth: 260, LogLevel: "info"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	if c.Overrides == nil {
		c.Overrides = Overrides{}
	}
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation preset to run")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file layered over the preset")
	fs.Var(c.Overrides, "set", "key=value passed to the simulation factory (repeatable)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset, 0 keeps the configured seed")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels, 0 hides it")
	fs.BoolVar(&c.Rotated, "rotated", c.Rotated, "rotate the view so gravity points down")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

// Overrides collects repeated key=value flags.
type Overrides map[string]string

// String implements flag.Value.
func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for _, k := range slices.Sorted(maps.Keys(o)) {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (o Overrides) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	o[k] = strings.TrimSpace(v)
	return nil
}
