package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"
)

// encodeTestPNG returns the PNG encoding of a solid-color image.
func encodeTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImage writes a solid-color PNG to a temp file and returns its
// path. The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(encodeTestPNG(t, width, height, c)); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to write image: %v", err)
	}
	return tmpFile.Name()
}

func TestDecodeSource_PNG(t *testing.T) {
	data := encodeTestPNG(t, 8, 6, color.RGBA{50, 100, 150, 255})

	buf, format, err := DecodeSource(data)
	if err != nil {
		t.Fatalf("DecodeSource failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %s, want png", format)
	}
	if buf.Width != 8 || buf.Height != 6 {
		t.Errorf("dimensions: got %dx%d, want 8x6", buf.Width, buf.Height)
	}
	r, g, b, a := buf.RGBA(4, 3)
	if r != 50 || g != 100 || b != 150 || a != 255 {
		t.Errorf("pixel: got (%d,%d,%d,%d), want (50,100,150,255)", r, g, b, a)
	}
}

func TestDecodeSource_InvalidBytes(t *testing.T) {
	_, _, err := DecodeSource([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected error for invalid bytes")
	}
}

func TestDecodeSource_OversizeRejected(t *testing.T) {
	data := make([]byte, MaxSourceBytes+1)

	_, _, err := DecodeSource(data)
	if err == nil {
		t.Fatal("expected error for oversize source")
	}
}

func TestSourceCache_Load(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 10, 10, color.RGBA{255, 0, 0, 255})
	defer os.Remove(path)

	buf, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if buf.Width != 10 || buf.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", buf.Width, buf.Height)
	}

	// Second load must hit the cache and return the same buffer.
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if &buf.Pix[0] != &again.Pix[0] {
		t.Error("second Load returned a different buffer, expected cache hit")
	}
}

func TestSourceCache_LoadMissing(t *testing.T) {
	cache := NewSourceCache()

	_, err := cache.Load("/nonexistent/image.png")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSourceCache_Evict(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 4, 4, color.RGBA{0, 255, 0, 255})
	defer os.Remove(path)

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if &first.Pix[0] == &second.Pix[0] {
		t.Error("Load after Evict returned the evicted buffer")
	}
}

func TestSourceCache_Clear(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 4, 4, color.RGBA{0, 0, 255, 255})
	defer os.Remove(path)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	cache.mu.RLock()
	n := len(cache.buffers)
	cache.mu.RUnlock()
	if n != 0 {
		t.Errorf("cache has %d entries after Clear, want 0", n)
	}
}

func TestSourceCache_ConcurrentLoad(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 6, 6, color.RGBA{128, 128, 128, 255})
	defer os.Remove(path)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestLoadSourceInfo(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 12, 9, color.RGBA{1, 2, 3, 255})
	defer os.Remove(path)

	info, err := LoadSourceInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadSourceInfo failed: %v", err)
	}
	if info.Width != 12 || info.Height != 9 {
		t.Errorf("dimensions: got %dx%d, want 12x9", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewSourceCache()
	path := createTestImage(t, 30, 20, color.RGBA{9, 9, 9, 255})
	defer os.Remove(path)

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 30 || dims.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", dims.Width, dims.Height)
	}
}
