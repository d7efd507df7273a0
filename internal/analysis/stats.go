package analysis

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// ColorStatsResult contains the numeric color profile of a source image:
// the quantities the color-distribution map visualizes, reduced to numbers
// a scoring layer can consume directly.
type ColorStatsResult struct {
	// MeanSaturation is the average HSV saturation over all pixels (0-1).
	MeanSaturation float64 `json:"mean_saturation"`

	// HighSaturationFraction is the fraction of pixels with saturation
	// above 0.8 — the same cutoff the color kernel flags as artificial.
	HighSaturationFraction float64 `json:"high_saturation_fraction"`

	// NearGrayFraction is the fraction of pixels whose channel uniformity
	// exceeds 0.9, matching the color kernel's uniformity branch.
	NearGrayFraction float64 `json:"near_gray_fraction"`

	// MeanLuminance is the average HSV value component (0-1).
	MeanLuminance float64 `json:"mean_luminance"`

	// DominantColors lists the most frequent quantized colors, most
	// frequent first.
	DominantColors []ColorFrequency `json:"dominant_colors"`
}

// ColorFrequency is one quantized color and its share of the image.
type ColorFrequency struct {
	// Hex is the quantized color as "#rrggbb".
	Hex string `json:"hex"`

	// Percentage of pixels falling into this quantization bucket (0-100).
	Percentage float64 `json:"percentage"`

	// Hue in degrees (0-360) and Saturation (0-1) of the bucket color.
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
}

// ColorStats computes the color profile of a source buffer.
//
// Saturation and luminance come from HSV; the near-gray measure reuses the
// color kernel's channel-uniformity formula so the numbers line up with the
// colorDistribution map. Dominant colors are quantized to 16-unit buckets
// per channel before counting, grouping perceptually close colors.
//
// count limits how many dominant colors are returned; 0 means 5.
func ColorStats(src *raster.Buffer, count int) (*ColorStatsResult, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("cannot profile source: %w", err)
	}
	if count <= 0 {
		count = 5
	}

	total := src.Width * src.Height
	colorCounts := make(map[string]int)

	var satSum, lumSum float64
	var highSat, nearGray int

	for i := 0; i < total; i++ {
		r := src.Pix[i*4]
		g := src.Pix[i*4+1]
		b := src.Pix[i*4+2]

		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		_, s, v := c.Hsv()
		satSum += s
		lumSum += v
		if s > 0.8 {
			highSat++
		}

		uniformity := 1 - absDiff(r, g)/255.0 - absDiff(g, b)/255.0 - absDiff(r, b)/255.0
		if uniformity > 0.9 {
			nearGray++
		}

		// Quantize to group similar colors, 16 units per channel.
		key := [3]uint8{r / 16 * 16, g / 16 * 16, b / 16 * 16}
		colorCounts[fmt.Sprintf("%02x%02x%02x", key[0], key[1], key[2])]++
	}

	colors := make([]ColorFrequency, 0, len(colorCounts))
	for hex, cnt := range colorCounts {
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			continue
		}
		h, s, _ := c.Hsv()
		colors = append(colors, ColorFrequency{
			Hex:        "#" + hex,
			Percentage: float64(cnt) / float64(total) * 100,
			Hue:        h,
			Saturation: s,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		return colors[i].Percentage > colors[j].Percentage
	})
	if len(colors) > count {
		colors = colors[:count]
	}

	return &ColorStatsResult{
		MeanSaturation:         satSum / float64(total),
		HighSaturationFraction: float64(highSat) / float64(total),
		NearGrayFraction:       float64(nearGray) / float64(total),
		MeanLuminance:          lumSum / float64(total),
		DominantColors:         colors,
	}, nil
}

// absDiff returns |a-b| for two bytes as a float64.
func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
