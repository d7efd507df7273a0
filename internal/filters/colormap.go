package filters

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// ColorMap computes a color-artificiality map of the input buffer.
//
// Two color signatures correlate with synthetic content: oversaturation
// (generators push colors past what sensors capture) and channel
// uniformity (large near-gray areas with suspiciously equal R, G, B). For
// each pixel:
//
//	saturation = 0 if max(R,G,B) == 0, else (max - min) / max
//	uniformity = 1 - |R-G|/255 - |G-B|/255 - |R-B|/255
//	artificial = 255 if saturation > 0.8 or uniformity > 0.9,
//	             else saturation * 255
//
// The output blends the original color with the artificiality value so the
// map remains recognizable:
//
//	R = 0.3*R + 0.7*artificial
//	G = 0.3*G + 0.5*artificial
//	B = 0.3*B + 0.3*artificial
//	A = 255
//
// Unlike the other three kernels, this one runs over the full grid, border
// pixels included: it needs no neighborhood, only the pixel itself. The
// asymmetry is intentional and pinned by a regression test.
func ColorMap(src *raster.Buffer) *raster.Buffer {
	w := src.Width
	h := src.Height
	out := raster.New(w, h)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				r := float64(src.Pix[i])
				g := float64(src.Pix[i+1])
				b := float64(src.Pix[i+2])

				maxC := math.Max(r, math.Max(g, b))
				minC := math.Min(r, math.Min(g, b))

				var saturation float64
				if maxC > 0 {
					saturation = (maxC - minC) / maxC
				}

				uniformity := 1 - math.Abs(r-g)/255 - math.Abs(g-b)/255 - math.Abs(r-b)/255

				artificial := saturation * 255
				if saturation > 0.8 || uniformity > 0.9 {
					artificial = 255
				}

				out.SetRGBA(x, y,
					clamp255(0.3*r+0.7*artificial),
					clamp255(0.3*g+0.5*artificial),
					clamp255(0.3*b+0.3*artificial),
					255)
			}
		}
	})

	return out
}
