package filters

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// DefaultTextureRadius is the window radius used when a caller does not
// override it: radius 2, a 5x5 window of 25 samples.
const DefaultTextureRadius = 2

// TextureMap computes a local-variance texture map of the input buffer.
//
// Generated imagery tends to be locally smoother than camera output: skin
// without pores, fabric without weave, backgrounds without sensor noise.
// The map encodes the standard deviation of gray intensity within a sliding
// window, so suspiciously flat regions render dark.
//
// For each pixel whose full (2*radius+1)² window lies inside the image:
//
//	gray = (R + G + B) / 3 for each sample in the window
//	variance = mean((gray - windowMean)²)
//	v = min(sqrt(variance) * 3, 255)
//
// The output pixel is warm-tinted proportional to v: (v, 0.8*v, 0.6*v, 255).
// Pixels within radius of any border are left at the output's zero value.
// A non-positive radius falls back to DefaultTextureRadius.
func TextureMap(src *raster.Buffer, radius int) *raster.Buffer {
	if radius <= 0 {
		radius = DefaultTextureRadius
	}
	w := src.Width
	h := src.Height
	out := raster.New(w, h)
	window := float64((2*radius + 1) * (2*radius + 1))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			if y < radius || y >= h-radius {
				continue
			}
			for x := radius; x < w-radius; x++ {
				var sum float64
				for wy := y - radius; wy <= y+radius; wy++ {
					for wx := x - radius; wx <= x+radius; wx++ {
						sum += gray(src, wx, wy)
					}
				}
				mean := sum / window

				var variance float64
				for wy := y - radius; wy <= y+radius; wy++ {
					for wx := x - radius; wx <= x+radius; wx++ {
						d := gray(src, wx, wy) - mean
						variance += d * d
					}
				}
				variance /= window

				v := math.Sqrt(variance) * 3
				if v > 255 {
					v = 255
				}
				out.SetRGBA(x, y, uint8(v), uint8(v*0.8), uint8(v*0.6), 255)
			}
		}
	})

	return out
}

// gray returns the mean of the three color channels at (x, y).
func gray(b *raster.Buffer, x, y int) float64 {
	i := (y*b.Width + x) * 4
	return float64(int(b.Pix[i])+int(b.Pix[i+1])+int(b.Pix[i+2])) / 3
}
