package analysis

import (
	"testing"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// squareOnBlack creates a black buffer with a white square whose top-left
// corner is at (x1, y1) and bottom-right (exclusive) at (x2, y2).
func squareOnBlack(t *testing.T, width, height, x1, y1, x2, y2 int) *raster.Buffer {
	t.Helper()
	buf := raster.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if x >= x1 && x < x2 && y >= y1 && y < y2 {
				v = 255
			}
			buf.SetRGBA(x, y, v, v, v, 255)
		}
	}
	return buf
}

func TestSuspectRegions_FindsSeam(t *testing.T) {
	src := squareOnBlack(t, 30, 30, 8, 8, 20, 20)

	result := SuspectRegions(src, 100, 20)

	if result.Count < 1 {
		t.Fatal("expected at least one region around the square boundary")
	}
	r := result.Regions[0]

	// The cluster hugs the square's edge, so its bounding box must contain
	// the square boundary and not much more.
	if r.Bounds.X1 > 8 || r.Bounds.Y1 > 8 || r.Bounds.X2 < 19 || r.Bounds.Y2 < 19 {
		t.Errorf("region bounds %+v do not cover the square boundary", r.Bounds)
	}
	if r.MeanMagnitude < 200 {
		t.Errorf("mean magnitude %.1f, want strong seam (> 200)", r.MeanMagnitude)
	}
	if r.PixelCount < 20 {
		t.Errorf("pixel count %d, want at least the boundary length", r.PixelCount)
	}
}

func TestSuspectRegions_UniformImage(t *testing.T) {
	buf := raster.New(20, 20)
	for i := range buf.Pix {
		buf.Pix[i] = 77
	}

	result := SuspectRegions(buf, 80, 100)

	if result.Count != 0 {
		t.Errorf("uniform image produced %d regions, want 0", result.Count)
	}
}

func TestSuspectRegions_MinAreaFilter(t *testing.T) {
	src := squareOnBlack(t, 30, 30, 12, 12, 18, 18)

	// The square's boundary box is ~7x7 = ~49 square pixels; an area floor
	// above that must suppress it.
	result := SuspectRegions(src, 100, 500)

	if result.Count != 0 {
		t.Errorf("got %d regions despite min_area filter, want 0", result.Count)
	}
}

func TestSuspectRegions_EchoesParameters(t *testing.T) {
	buf := raster.New(10, 10)

	result := SuspectRegions(buf, 42, 77)

	if result.Threshold != 42 || result.MinArea != 77 {
		t.Errorf("parameter echo: got threshold=%d min_area=%d, want 42 and 77", result.Threshold, result.MinArea)
	}
}

func TestSuspectRegions_SortedByArea(t *testing.T) {
	// Two squares of different sizes, well separated.
	src := squareOnBlack(t, 60, 30, 4, 4, 12, 12)
	for y := 8; y < 26; y++ {
		for x := 34; x < 54; x++ {
			src.SetRGBA(x, y, 255, 255, 255, 255)
		}
	}

	result := SuspectRegions(src, 100, 10)

	if result.Count < 2 {
		t.Fatalf("expected two regions, got %d", result.Count)
	}
	for i := 1; i < len(result.Regions); i++ {
		if result.Regions[i].Area > result.Regions[i-1].Area {
			t.Fatal("regions not sorted by area descending")
		}
	}
}
