package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"tilt-sand/internal/sims/sand"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sandctl %v: %v", args, err)
	}
	return out.String()
}

func TestListShowsPresets(t *testing.T) {
	out := execute(t, "list")
	for _, name := range []string{"sand", "hourglass", "drift", "rubble"} {
		if !strings.Contains(out, name) {
			t.Fatalf("list output missing %q:\n%s", name, out)
		}
	}
}

func TestRunWritesTraceAndFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	out := execute(t, "run", "--preset", "sand", "--ticks", "40", "--trace", path, "--frame")
	if !strings.Contains(out, "#") || !strings.Contains(out, "grains") {
		t.Fatalf("unexpected run output:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("trace missing: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n"); lines != 40 {
		t.Fatalf("trace has %d data rows, want 40", lines)
	}
}

func TestDriftPrintsSummary(t *testing.T) {
	out := execute(t, "drift", "--step", "45", "--ticks", "20", "--accumulator", "shared")
	if !strings.Contains(out, "samples 8") {
		t.Fatalf("drift output:\n%s", out)
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")
	execute(t, "snapshot", "--preset", "drift", "--ticks", "5", "--tile", "2", "--out", path)
	img, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("snapshot bounds %v", b)
	}
}

func TestFrameText(t *testing.T) {
	g := sand.NewGrid(3, 2)
	g.SetObstacle(1, 0)
	g.Spawn(sand.Point{R: 0, C: 2}, 0, 0)
	if got := frameText(g.Snapshot()); got != "..o\n#.." {
		t.Fatalf("frameText = %q", got)
	}
}

func TestRunAppliesSetOverrides(t *testing.T) {
	t.Cleanup(func() { flagSet = nil })
	out := execute(t, "run", "--preset", "drift", "--set", "w=20,h=12", "--ticks", "3")
	if !strings.Contains(out, "20x12") {
		t.Fatalf("overrides not applied:\n%s", out)
	}
}
