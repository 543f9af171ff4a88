package sand

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Params holds the tunable behaviour of the automaton.
type Params struct {
	GravityAngle float64         `yaml:"gravity_angle"`
	RotateStep   float64         `yaml:"rotate_step"`
	Accumulator  AccumulatorMode `yaml:"accumulator"`
	Resolve      ResolveMode     `yaml:"resolve"`
	Fallback     bool            `yaml:"fallback"`

	Spawn            bool `yaml:"spawn"`
	MaxParticles     int  `yaml:"max_particles"`
	InitialParticles int  `yaml:"initial_particles"`
	Colors           int  `yaml:"colors"`

	AutoFlip  bool `yaml:"auto_flip"`
	FlipDelay int  `yaml:"flip_delay"`
}

// Config controls the sand world dimensions, obstacles and behaviour.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Enclosure EnclosureConfig `yaml:"enclosure"`
	Params    Params          `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  32,
		Height: 32,
		Seed:   1337,
		Enclosure: EnclosureConfig{
			Kind: EnclosureDisc,
			Neck: 2,
		},
		Params: Params{
			GravityAngle: 0,
			RotateStep:   10,
			Accumulator:  AccumulatorPerParticle,
			Resolve:      ResolveImmediate,
			Fallback:     true,
			Spawn:        true,
			Colors:       len(grainColors),
			FlipDelay:    20,
		},
	}
}

// Validate reports settings the automaton cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height)
	}
	if err := c.Enclosure.Validate(); err != nil {
		return err
	}
	if _, err := NewAccumulator(c.Params.Accumulator); err != nil {
		return err
	}
	if _, err := ParseResolveMode(string(c.Params.Resolve)); err != nil {
		return err
	}
	if c.Params.Colors < 1 || c.Params.Colors > len(grainColors) {
		return fmt.Errorf("colors must be within 1..%d, got %d", len(grainColors), c.Params.Colors)
	}
	if c.Params.MaxParticles < 0 || c.Params.InitialParticles < 0 {
		return fmt.Errorf("particle counts must not be negative")
	}
	return nil
}

// Load reads a YAML file over base. Only fields present in the file change.
func Load(base Config, path string) (Config, error) {
	cfg := base
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Presets returns the embedded named configurations, each layered over
// DefaultConfig.
func Presets() (map[string]Config, error) {
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(presetsYAML, &nodes); err != nil {
		return nil, fmt.Errorf("parsing embedded presets: %w", err)
	}
	out := make(map[string]Config, len(nodes))
	for name, node := range nodes {
		cfg := DefaultConfig()
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decoding preset %s: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		out[name] = cfg
	}
	return out, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return FromMapOver(DefaultConfig(), cfg)
}

// FromMapOver applies flag-style overrides on top of base. Unparseable values
// are ignored.
func FromMapOver(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["angle"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GravityAngle = NormalizeAngle(parsed)
		}
	}
	if v, ok := cfg["rotate_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.RotateStep = parsed
		}
	}
	if v, ok := cfg["accumulator"]; ok {
		if _, err := NewAccumulator(AccumulatorMode(v)); err == nil {
			c.Params.Accumulator = AccumulatorMode(v)
		}
	}
	if v, ok := cfg["resolve"]; ok {
		if mode, err := ParseResolveMode(v); err == nil {
			c.Params.Resolve = mode
		}
	}
	if v, ok := cfg["fallback"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Fallback = parsed
		}
	}
	if v, ok := cfg["spawn"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Spawn = parsed
		}
	}
	if v, ok := cfg["max_particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxParticles = parsed
		}
	}
	if v, ok := cfg["initial_particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.InitialParticles = parsed
		}
	}
	if v, ok := cfg["colors"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= len(grainColors) {
			c.Params.Colors = parsed
		}
	}
	if v, ok := cfg["auto_flip"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.AutoFlip = parsed
		}
	}
	if v, ok := cfg["flip_delay"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.FlipDelay = parsed
		}
	}
	if v, ok := cfg["enclosure"]; ok {
		e := EnclosureConfig{Kind: v}
		if e.Validate() == nil {
			c.Enclosure.Kind = v
		}
	}
	if v, ok := cfg["neck"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Enclosure.Neck = parsed
		}
	}
	if v, ok := cfg["floor_row"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Enclosure.FloorRow = parsed
		}
	}
	if v, ok := cfg["floor_gaps"]; ok {
		c.Enclosure.FloorGaps = parseIntList(v)
	}
	if v, ok := cfg["rubble_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Enclosure.RubbleDensity = parsed
		}
	}
	return c
}

func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}
