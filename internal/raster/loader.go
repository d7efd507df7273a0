package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// MaxSourceBytes is the ceiling on encoded source size. Anything larger is
// rejected before a single byte is decoded.
const MaxSourceBytes = 10 * 1024 * 1024

// DecodeSource decodes an in-memory encoded image into an owned Buffer.
//
// This is the entry point every analysis call funnels through: it enforces
// the size ceiling, restricts input to the registered formats (PNG, JPEG,
// GIF, WebP), and converts whatever the codec produced into a plain RGBA
// Buffer.
//
// Returns:
//   - *Buffer: The decoded pixels.
//   - string: The detected format name ("png", "jpeg", "gif", "webp").
//   - error: Non-nil if the source is too large or cannot be decoded. On
//     error no partial buffer is returned.
func DecodeSource(data []byte) (*Buffer, string, error) {
	if len(data) > MaxSourceBytes {
		return nil, "", fmt.Errorf("source is %d bytes, limit is %d", len(data), MaxSourceBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode source image: %w", err)
	}

	return FromImage(img), format, nil
}

// SourceCache provides thread-safe caching of decoded source buffers to
// avoid redundant disk reads and decodes while a caller works through the
// analysis tools on the same image.
//
// Buffers are keyed by the exact path string used to load them. Cached
// buffers stay in memory until Evict() or Clear(); long-running servers
// handling many images should evict once an analysis session is done.
//
// SourceCache is safe for concurrent use by multiple goroutines. Cached
// buffers are shared, so callers must treat them as read-only — which is
// exactly the contract every filter already honors.
type SourceCache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewSourceCache creates an empty cache, ready for concurrent use.
func NewSourceCache() *SourceCache {
	return &SourceCache{
		buffers: make(map[string]*Buffer),
	}
}

// Load retrieves a decoded buffer from the cache, reading and decoding the
// file if it is not cached yet.
//
// The input constraints apply here as they do in DecodeSource: files over
// MaxSourceBytes are rejected by size before being read, and only the
// registered formats decode.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file exceeds the size ceiling
//   - Returns error if the bytes are not a valid PNG, JPEG, GIF, or WebP
func (c *SourceCache) Load(path string) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if stat.Size() > MaxSourceBytes {
		return nil, fmt.Errorf("source is %d bytes, limit is %d", stat.Size(), MaxSourceBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	buf, _, err := DecodeSource(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes every cached buffer, freeing the associated memory.
func (c *SourceCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.mu.Unlock()
}

// Evict removes a single cached buffer by its path. Unknown paths are a
// no-op.
func (c *SourceCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// SourceInfo contains metadata about a loaded source image.
type SourceInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "webp".
	Format string `json:"format"`

	// FileSizeBytes is the size of the encoded file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadSourceInfo loads a source image through the cache and returns its
// metadata: dimensions, detected format, and encoded size.
//
// Unlike extension sniffing, the format comes from the decoder that actually
// handled the bytes, so a mislabeled file reports its true format.
func LoadSourceInfo(cache *SourceCache, path string) (*SourceInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if stat.Size() > MaxSourceBytes {
		return nil, fmt.Errorf("source is %d bytes, limit is %d", stat.Size(), MaxSourceBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	buf, format, err := DecodeSource(data)
	if err != nil {
		return nil, err
	}

	cache.mu.Lock()
	cache.buffers[path] = buf
	cache.mu.Unlock()

	return &SourceInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of a source image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns just the dimensions of a source image, loading it
// into the cache if not already present.
func GetDimensions(cache *SourceCache, path string) (*DimensionsResult, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: buf.Width, Height: buf.Height}, nil
}
