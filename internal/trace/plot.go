package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"touchsense/internal/touch"
)

const plotMargin = 24

// Plot renders the trace's contact paths into a grayscale image.
// Each contact's path is drawn as a connected polyline; the start of a
// path is marked with an outlined box and the end with a filled one.
func Plot(tr *Trace, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))

	minX, minY, maxX, maxY := bounds(tr)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scaleX := float64(width-2*plotMargin) / spanX
	scaleY := float64(height-2*plotMargin) / spanY

	project := func(c Contact) (int, int) {
		x := plotMargin + int(math.Round((c.X-minX)*scaleX))
		y := plotMargin + int(math.Round((c.Y-minY)*scaleY))
		return x, y
	}

	// One polyline per contact ID across the whole trace.
	last := make(map[int][2]int)
	seen := make(map[int]bool)
	for _, s := range tr.Samples {
		phase, _ := touch.ParsePhase(s.Phase)
		for _, c := range s.Contacts {
			x, y := project(c)
			if prev, ok := last[c.ID]; ok {
				drawLine(img, prev[0], prev[1], x, y)
			}
			if !seen[c.ID] {
				drawBox(img, x, y, false)
				seen[c.ID] = true
			}
			if phase == touch.PhaseEnd {
				drawBox(img, x, y, true)
			}
			last[c.ID] = [2]int{x, y}
		}
	}
	// Close out paths that never saw an end sample.
	for _, p := range last {
		drawBox(img, p[0], p[1], true)
	}

	label := tr.Name
	if label == "" {
		label = "trace"
	}
	drawText(img, 4, 14, fmt.Sprintf("%s (%d samples, %dms)",
		label, len(tr.Samples), tr.DurationMs()))

	return img
}

// WritePNG plots the trace and writes it to a PNG file.
func WritePNG(tr *Trace, path string, width, height int) error {
	img := Plot(tr, width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding plot: %w", err)
	}
	return nil
}

func bounds(tr *Trace) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range tr.Samples {
		for _, c := range s.Contacts {
			minX = math.Min(minX, c.X)
			minY = math.Min(minY, c.Y)
			maxX = math.Max(maxX, c.X)
			maxY = math.Max(maxY, c.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

// drawLine is Bresenham's algorithm on the gray buffer.
func drawLine(img *image.Gray, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(img, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawBox(img *image.Gray, cx, cy int, filled bool) {
	const r = 3
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if filled || x == cx-r || x == cx+r || y == cy-r || y == cy+r {
				setPixel(img, x, y)
			}
		}
	}
}

func drawText(img *image.Gray, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func setPixel(img *image.Gray, x, y int) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetGray(x, y, color.Gray{Y: 255})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
