package trace

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPlotDrawsPaths(t *testing.T) {
	tr, err := Parse([]byte(sampleTrace))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	img := Plot(tr, 320, 240)
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("bounds = %v, want 320x240", img.Bounds())
	}

	lit := 0
	for _, v := range img.Pix {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("plot is blank")
	}
}

func TestPlotSinglePointTrace(t *testing.T) {
	tr := &Trace{Samples: []Sample{
		{AtMs: 0, Phase: "start", Contacts: []Contact{{ID: 0, X: 100, Y: 100}}},
	}}

	// A single point has zero span; the projection must not divide by it.
	img := Plot(tr, 100, 100)
	if img == nil {
		t.Fatal("Plot returned nil")
	}
}

func TestWritePNG(t *testing.T) {
	tr, err := Parse([]byte(sampleTrace))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plot.png")
	if err := WritePNG(tr, path, 320, 240); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening plot: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding plot: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("plot is %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
}
