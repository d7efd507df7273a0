package filters

import (
	"bytes"
	"testing"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

func TestColorMap_Dimensions(t *testing.T) {
	src := solidBuffer(t, 21, 5, 10, 200, 30)
	out := ColorMap(src)

	if out.Width != 21 || out.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 21x5", out.Width, out.Height)
	}
}

func TestColorMap_GrayPixelIsArtificial(t *testing.T) {
	// R=G=B gives uniformity 1 > 0.9, so artificialness is 255 regardless
	// of the zero saturation.
	src := solidBuffer(t, 3, 3, 128, 128, 128)
	out := ColorMap(src)

	r, g, b, a := out.RGBA(1, 1)
	// 0.3*128 + 0.7*255, 0.3*128 + 0.5*255, 0.3*128 + 0.3*255
	if r != 216 || g != 165 || b != 114 {
		t.Errorf("gray pixel: got (%d,%d,%d), want (216,165,114)", r, g, b)
	}
	if a != 255 {
		t.Errorf("alpha: got %d, want 255", a)
	}
}

func TestColorMap_HighSaturationIsArtificial(t *testing.T) {
	// Pure red: saturation 1 > 0.8 trips the artificial branch.
	src := solidBuffer(t, 3, 3, 255, 0, 0)
	out := ColorMap(src)

	r, g, b, _ := out.RGBA(1, 1)
	if r < 250 {
		t.Errorf("red channel %d, want saturated (>= 250)", r)
	}
	// G and B still get the artificialness blended over zero originals.
	if g < 125 || b < 74 {
		t.Errorf("blend: got G=%d B=%d, want ~127 and ~76", g, b)
	}
}

func TestColorMap_ModerateSaturationPassthrough(t *testing.T) {
	// (200, 100, 100): saturation 0.5, uniformity 1 - 100/255 - 0 - 100/255
	// ≈ 0.22. Neither branch trips, so artificialness = 0.5*255 = 127.5.
	src := solidBuffer(t, 3, 3, 200, 100, 100)
	out := ColorMap(src)

	r, g, b, _ := out.RGBA(1, 1)
	// 0.3*200 + 0.7*127.5 = 149.25; 0.3*100 + 0.5*127.5 = 93.75;
	// 0.3*100 + 0.3*127.5 = 68.25
	if r != 149 || g != 93 || b != 68 {
		t.Errorf("moderate pixel: got (%d,%d,%d), want (149,93,68)", r, g, b)
	}
}

func TestColorMap_FullGridIncludingBorders(t *testing.T) {
	// Unlike the other three kernels, the color kernel writes every pixel,
	// corners included. This asymmetry is part of the output contract.
	src := solidBuffer(t, 6, 6, 30, 30, 30)
	out := ColorMap(src)

	corners := [][2]int{{0, 0}, {5, 0}, {0, 5}, {5, 5}}
	for _, c := range corners {
		_, _, _, a := out.RGBA(c[0], c[1])
		if a != 255 {
			t.Errorf("corner (%d,%d): alpha %d, want 255 (color kernel has no border exclusion)", c[0], c[1], a)
		}
	}

	// Contrast with the bordered kernels on the same input.
	edge := EdgeMap(src)
	for _, c := range corners {
		_, _, _, a := edge.RGBA(c[0], c[1])
		if a != 0 {
			t.Errorf("edge corner (%d,%d): alpha %d, want 0 (bordered kernel)", c[0], c[1], a)
		}
	}
}

func TestColorMap_BlackPixel(t *testing.T) {
	// max = 0 means saturation is defined as 0, but uniformity is 1, so the
	// artificial branch still trips.
	src := solidBuffer(t, 2, 2, 0, 0, 0)
	out := ColorMap(src)

	r, g, b, a := out.RGBA(0, 0)
	if r != 178 || g != 127 || b != 76 {
		t.Errorf("black pixel: got (%d,%d,%d), want (178,127,76)", r, g, b)
	}
	if a != 255 {
		t.Errorf("alpha: got %d, want 255", a)
	}
}

func TestColorMap_Idempotent(t *testing.T) {
	src := raster.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, uint8(x*30), uint8(y*30), uint8((x+y)*15), 255)
		}
	}

	first := ColorMap(src)
	second := ColorMap(src)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("re-running ColorMap on the same input produced different bytes")
	}
}
