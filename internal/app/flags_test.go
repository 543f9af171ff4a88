package app

import (
	"flag"
	"io"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-sim", "hourglass", "-scale", "4", "-seed", "9", "-rotated", "-hud", "0"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Sim != "hourglass" || cfg.Scale != 4 || cfg.Seed != 9 || !cfg.Rotated || cfg.HUDWidth != 0 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.TPS != NewConfig().TPS {
		t.Fatal("unset flags keep their defaults")
	}
}

func TestConfigBindCollectsOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "w=40", "-set", " angle = 90 "}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Overrides["w"] != "40" || cfg.Overrides["angle"] != "90" {
		t.Fatalf("overrides = %v", cfg.Overrides)
	}
	if got := cfg.Overrides.String(); got != "angle=90,w=40" {
		t.Fatalf("String() = %q", got)
	}
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("expected an error for a value without '='")
	}
}
