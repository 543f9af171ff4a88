package app

import (
	"fmt"
	"strings"

	"tilt-sand/internal/core"
	"tilt-sand/internal/sims/sand"
)

// BuildSim constructs the named simulation. Without a config file the sim
// comes from the registry factory fed with overrides; with one, the file is
// layered over the preset first and the overrides applied on top.
func BuildSim(name, configPath string, overrides map[string]string) (core.Sim, error) {
	if configPath != "" {
		w, err := sand.Open(name, configPath, overrides)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	factory, ok := core.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %s)", name, strings.Join(core.Names(), ", "))
	}
	return factory(overrides), nil
}
