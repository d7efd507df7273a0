package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mediaproof/forensics-mcp/internal/filters"
	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// Map keys in a Report. Clients key off these names, so they are part of
// the output contract.
const (
	MapEdgeDetection     = "edgeDetection"
	MapTextureAnalysis   = "textureAnalysis"
	MapLightingAnalysis  = "lightingAnalysis"
	MapColorDistribution = "colorDistribution"
)

// FilterMap is one encoded forensic map: a base64 PNG the same size as the
// analyzed source.
type FilterMap struct {
	// Width of the map in pixels (same as input).
	Width int `json:"width"`

	// Height of the map in pixels (same as input).
	Height int `json:"height"`

	// ImageBase64 is the map encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// Report contains the full four-map analysis of a single source image.
type Report struct {
	// Width of the analyzed source in pixels.
	Width int `json:"width"`

	// Height of the analyzed source in pixels.
	Height int `json:"height"`

	// Maps holds the four encoded forensic maps keyed by MapEdgeDetection,
	// MapTextureAnalysis, MapLightingAnalysis, and MapColorDistribution.
	Maps map[string]FilterMap `json:"maps"`
}

// EncodeMap wraps a finished filter output buffer as a FilterMap.
func EncodeMap(buf *raster.Buffer) (*FilterMap, error) {
	encoded, err := buf.EncodePNGBase64()
	if err != nil {
		return nil, err
	}
	return &FilterMap{
		Width:       buf.Width,
		Height:      buf.Height,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// Run executes all four forensic kernels against one decoded source and
// returns their encoded maps.
//
// The source buffer is shared read-only across the kernels, which run
// concurrently (one goroutine each). There is no ordering dependency; the
// report is identical to running them back to back. If any map fails to
// encode, the whole call fails with no partial report.
//
// textureRadius selects the texture kernel's window radius; pass 0 for the
// default 5x5 window.
func Run(ctx context.Context, src *raster.Buffer, textureRadius int) (*Report, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("cannot analyze source: %w", err)
	}

	type job struct {
		key string
		fn  func(*raster.Buffer) *raster.Buffer
	}
	jobs := []job{
		{MapEdgeDetection, filters.EdgeMap},
		{MapTextureAnalysis, func(b *raster.Buffer) *raster.Buffer {
			return filters.TextureMap(b, textureRadius)
		}},
		{MapLightingAnalysis, filters.LightingMap},
		{MapColorDistribution, filters.ColorMap},
	}

	results := make([]*FilterMap, len(jobs))
	g, _ := errgroup.WithContext(ctx)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			m, err := EncodeMap(j.fn(src))
			if err != nil {
				return fmt.Errorf("%s: %w", j.key, err)
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	maps := make(map[string]FilterMap, len(jobs))
	for i, j := range jobs {
		maps[j.key] = *results[i]
	}

	return &Report{
		Width:  src.Width,
		Height: src.Height,
		Maps:   maps,
	}, nil
}
