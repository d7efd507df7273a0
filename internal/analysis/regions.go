package analysis

import (
	"sort"

	"github.com/mediaproof/forensics-mcp/internal/filters"
	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (inclusive)
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is a connected cluster of high-gradient pixels worth a closer
// look: a candidate blend seam, halo, or other edge anomaly.
type Region struct {
	// Bounds is the bounding box enclosing the cluster.
	Bounds Bounds `json:"bounds"`

	// Center is the center point of the bounding box.
	Center Point `json:"center"`

	// Width is the horizontal extent in pixels.
	Width int `json:"width"`

	// Height is the vertical extent in pixels.
	Height int `json:"height"`

	// Area is the bounding-box area in square pixels.
	Area int `json:"area"`

	// PixelCount is the number of above-threshold pixels in the cluster.
	PixelCount int `json:"pixel_count"`

	// MeanMagnitude is the average Sobel magnitude over the cluster's
	// pixels (0-255). Higher means a stronger, sharper seam.
	MeanMagnitude float64 `json:"mean_magnitude"`
}

// RegionsResult contains the suspect regions found in a source image,
// sorted by area, largest first.
type RegionsResult struct {
	Regions []Region `json:"regions"`

	// Count is the number of regions found.
	Count int `json:"count"`

	// Threshold is the Sobel magnitude cutoff that was applied.
	Threshold int `json:"threshold"`

	// MinArea is the bounding-box area floor that was applied.
	MinArea int `json:"min_area"`
}

// SuspectRegions localizes clusters of strong edge response in a source.
//
// The edge kernel runs first; pixels whose Sobel magnitude exceeds
// threshold become a binary mask, and 8-connected flood fill groups the
// mask into clusters. Clusters of fewer than 10 pixels are discarded as
// noise, and bounding boxes under minArea square pixels are dropped.
//
// Parameters:
//   - src: Decoded source buffer.
//   - threshold: Magnitude cutoff (0-255). Typical: 60-120. Lower values
//     find fainter seams at the cost of more noise clusters.
//   - minArea: Minimum bounding-box area in square pixels. Typical: 100.
func SuspectRegions(src *raster.Buffer, threshold, minArea int) *RegionsResult {
	w := src.Width
	h := src.Height
	edge := filters.EdgeMap(src)

	// Binary mask of above-threshold pixels. The edge map is grayscale, so
	// the red channel is the magnitude.
	mask := make([]bool, w*h)
	for i := 0; i < w*h; i++ {
		if int(edge.Pix[i*4]) > threshold {
			mask[i] = true
		}
	}

	visited := make([]bool, w*h)
	regions := make([]Region, 0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] || visited[y*w+x] {
				continue
			}

			cluster := floodFill(mask, visited, x, y, w, h)
			if len(cluster) < 10 {
				continue
			}

			minX, minY := w, h
			maxX, maxY := 0, 0
			var magSum float64
			for _, p := range cluster {
				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}
				magSum += float64(edge.Pix[(p.Y*w+p.X)*4])
			}

			boxW := maxX - minX
			boxH := maxY - minY
			area := boxW * boxH
			if area < minArea {
				continue
			}

			regions = append(regions, Region{
				Bounds:        Bounds{X1: minX, Y1: minY, X2: maxX, Y2: maxY},
				Center:        Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
				Width:         boxW,
				Height:        boxH,
				Area:          area,
				PixelCount:    len(cluster),
				MeanMagnitude: magSum / float64(len(cluster)),
			})
		}
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})

	return &RegionsResult{
		Regions:   regions,
		Count:     len(regions),
		Threshold: threshold,
		MinArea:   minArea,
	}
}

// floodFill collects the 8-connected cluster of mask pixels reachable from
// (startX, startY). Stack-based rather than recursive so large seams cannot
// overflow the stack.
func floodFill(mask, visited []bool, startX, startY, w, h int) []Point {
	cluster := make([]Point, 0)
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		i := p.Y*w + p.X
		if visited[i] || !mask[i] {
			continue
		}

		visited[i] = true
		cluster = append(cluster, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return cluster
}
