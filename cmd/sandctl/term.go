package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"tilt-sand/internal/audio"
	"tilt-sand/internal/control"
	"tilt-sand/internal/term"
)

var (
	flagTermTPS   int
	flagTermSound bool
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Watch and steer the automaton in the terminal",
	Long: `Interactive terminal viewer.

Controls:
  A/Left     - Rotate gravity counter-clockwise by the rotate step
  D/Right    - Rotate gravity clockwise by the rotate step
  1-9        - Compass directions laid out like a numpad (2 = down, 8 = up)
  V          - Toggle the rotated view
  Space      - Pause
  N          - Single tick
  R / S      - Reset / reset with a fresh seed
  Q/Esc      - Quit`,
	RunE: runTerm,
}

func init() {
	termCmd.Flags().IntVar(&flagTermTPS, "tps", 30, "Ticks per second")
	termCmd.Flags().BoolVar(&flagTermSound, "sound", false, "Click when a grain lands")
}

func runTerm(cmd *cobra.Command, args []string) error {
	w, err := openWorld()
	if err != nil {
		return err
	}

	var clicker term.Clicker
	if flagTermSound {
		c := audio.NewClicker()
		if err := c.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "error", err)
		} else {
			defer c.Cleanup()
			clicker = c
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewer := term.NewViewer(control.NewSession(w, flagSeed), screen, clicker)
	if err := term.Run(ctx, screen, viewer, flagTermTPS); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
