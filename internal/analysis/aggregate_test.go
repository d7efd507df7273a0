package analysis

import (
	"context"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// gradientBuffer creates a buffer with a horizontal brightness ramp, which
// gives every kernel something nonzero to report.
func gradientBuffer(t *testing.T, width, height int) *raster.Buffer {
	t.Helper()
	buf := raster.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			buf.SetRGBA(x, y, v, v/2, 255-v, 255)
		}
	}
	return buf
}

func decodeMap(t *testing.T, m FilterMap) (width, height int) {
	t.Helper()
	decoded, err := base64.StdEncoding.DecodeString(m.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRun(t *testing.T) {
	src := gradientBuffer(t, 24, 16)

	report, err := Run(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Width != 24 || report.Height != 16 {
		t.Errorf("report dimensions: got %dx%d, want 24x16", report.Width, report.Height)
	}

	wantKeys := []string{MapEdgeDetection, MapTextureAnalysis, MapLightingAnalysis, MapColorDistribution}
	if len(report.Maps) != len(wantKeys) {
		t.Errorf("map count: got %d, want %d", len(report.Maps), len(wantKeys))
	}
	for _, key := range wantKeys {
		m, ok := report.Maps[key]
		if !ok {
			t.Errorf("missing map %q", key)
			continue
		}
		if m.Width != 24 || m.Height != 16 {
			t.Errorf("%s dimensions: got %dx%d, want 24x16", key, m.Width, m.Height)
		}
		if m.MimeType != "image/png" {
			t.Errorf("%s MimeType: got %s, want image/png", key, m.MimeType)
		}
		w, h := decodeMap(t, m)
		if w != 24 || h != 16 {
			t.Errorf("%s decoded dimensions: got %dx%d, want 24x16", key, w, h)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	// The kernels run concurrently, but the report must not depend on
	// scheduling: two runs over the same source are identical.
	src := gradientBuffer(t, 16, 16)

	first, err := Run(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := Run(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	for key, m := range first.Maps {
		if second.Maps[key].ImageBase64 != m.ImageBase64 {
			t.Errorf("map %q differs between runs", key)
		}
	}
}

func TestRun_InvalidSource(t *testing.T) {
	src := &raster.Buffer{Pix: nil, Width: 0, Height: 0}

	if _, err := Run(context.Background(), src, 0); err == nil {
		t.Fatal("expected error for invalid source buffer")
	}
}

func TestRun_DegenerateSource(t *testing.T) {
	// A 1x1 source is valid but smaller than any kernel window; the three
	// bordered maps come back fully zeroed, the color map does not.
	src := raster.New(1, 1)
	src.SetRGBA(0, 0, 128, 128, 128, 255)

	report, err := Run(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Maps) != 4 {
		t.Fatalf("map count: got %d, want 4", len(report.Maps))
	}
	for _, key := range []string{MapEdgeDetection, MapTextureAnalysis, MapLightingAnalysis, MapColorDistribution} {
		m := report.Maps[key]
		if m.Width != 1 || m.Height != 1 {
			t.Errorf("%s dimensions: got %dx%d, want 1x1", key, m.Width, m.Height)
		}
	}
}

func TestEncodeMap(t *testing.T) {
	buf := raster.New(7, 5)

	m, err := EncodeMap(buf)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}
	if m.Width != 7 || m.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 7x5", m.Width, m.Height)
	}
	w, h := decodeMap(t, *m)
	if w != 7 || h != 5 {
		t.Errorf("decoded dimensions: got %dx%d, want 7x5", w, h)
	}
}
