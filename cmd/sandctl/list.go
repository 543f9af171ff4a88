package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilt-sand/internal/core"
	"tilt-sand/internal/sims/sand"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in presets",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	presets, err := sand.Presets()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-10s  %-7s  %-10s  %-6s  %s\n", "PRESET", "SIZE", "ENCLOSURE", "ANGLE", "STEPPING")
	for _, name := range core.Names() {
		cfg, ok := presets[name]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-10s  %-7s  %-10s  %-6g  %s/%s\n",
			name,
			fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			cfg.Enclosure.Kind,
			cfg.Params.GravityAngle,
			cfg.Params.Accumulator,
			cfg.Params.Resolve,
		)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'sandctl term --preset <name>' to watch one.")
	return nil
}
