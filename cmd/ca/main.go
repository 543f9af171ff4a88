//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"tilt-sand/internal/app"
	"tilt-sand/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := logging.New("ca", cfg.LogLevel)

	sim, err := app.BuildSim(cfg.Sim, cfg.ConfigPath, cfg.Overrides)
	if err != nil {
		logger.Fatal("cannot build simulation", "sim", cfg.Sim, "error", err)
	}
	sim.Reset(cfg.Seed)
	logger.Info("starting", "sim", sim.Name(), "size", sim.Size(), "overrides", cfg.Overrides.String())

	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("tilt-sand - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
