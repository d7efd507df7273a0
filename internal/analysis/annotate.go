package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// OverlayResult contains a copy of the source with suspect regions boxed,
// encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// RegionCount is the number of regions drawn.
	RegionCount int `json:"region_count"`
}

// Annotate draws the given regions as rectangle outlines on a clone of the
// source and returns the annotated image.
//
// The source buffer itself is never touched; drawing happens on a fresh
// copy. Outlines are two pixels thick, clipped to the image bounds.
//
// colorHex selects the outline color ("#FF0000" or "#FF0000CC"); an
// unparseable value falls back to opaque red.
func Annotate(src *raster.Buffer, regions []Region, colorHex string) (*OverlayResult, error) {
	boxColor, err := parseHexColor(colorHex)
	if err != nil {
		boxColor = color.NRGBA{255, 0, 0, 255}
	}

	canvas := imaging.Clone(src.ToImage())
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()

	for _, r := range regions {
		for t := 0; t < 2; t++ {
			x1 := r.Bounds.X1 - t
			y1 := r.Bounds.Y1 - t
			x2 := r.Bounds.X2 + t
			y2 := r.Bounds.Y2 + t

			for x := x1; x <= x2; x++ {
				setClipped(canvas.Pix, w, h, x, y1, boxColor)
				setClipped(canvas.Pix, w, h, x, y2, boxColor)
			}
			for y := y1; y <= y2; y++ {
				setClipped(canvas.Pix, w, h, x1, y, boxColor)
				setClipped(canvas.Pix, w, h, x2, y, boxColor)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		RegionCount: len(regions),
	}, nil
}

// setClipped writes a pixel into an NRGBA pix slice, ignoring coordinates
// outside the canvas.
func setClipped(pix []uint8, w, h, x, y int, c color.NRGBA) {
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	i := (y*w + x) * 4
	pix[i] = c.R
	pix[i+1] = c.G
	pix[i+2] = c.B
	pix[i+3] = c.A
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF0000CC".
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
