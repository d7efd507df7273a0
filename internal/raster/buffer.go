package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Buffer is an owned, contiguous grid of 8-bit RGBA samples.
//
// Pix holds 4 bytes per pixel (R, G, B, A) in row-major order with origin at
// the top-left corner, so pixel (x, y) starts at Pix[(y*Width+x)*4]. The
// slice length is always exactly Width*Height*4.
type Buffer struct {
	// Pix is the raw sample data: R, G, B, A per pixel, row-major.
	Pix []uint8

	// Width of the grid in pixels.
	Width int

	// Height of the grid in pixels.
	Height int
}

// New allocates a zeroed Buffer of the given dimensions.
//
// Every sample, alpha included, starts at 0. Filters that skip border pixels
// rely on this: whatever they never write stays transparent black.
func New(width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]uint8, width*height*4),
		Width:  width,
		Height: height,
	}
}

// FromImage converts a decoded image into an owned Buffer.
//
// The source is redrawn into non-premultiplied RGBA, so the Buffer holds
// plain 8-bit channel values regardless of the decoder's native color model
// (YCbCr for JPEG, paletted for GIF, and so on).
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	return &Buffer{
		Pix:    nrgba.Pix,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

// RGBA returns the four channel values at (x, y).
//
// Callers must keep coordinates in bounds; like the loops in the filter
// kernels, this method does no range checking of its own beyond the slice
// bounds check.
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA writes the four channel values at (x, y).
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Validate reports whether the Buffer is internally consistent: positive
// dimensions and a Pix slice of exactly Width*Height*4 bytes.
func (b *Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("buffer size mismatch: %d bytes for %dx%d", len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// ToImage wraps the Buffer in an *image.NRGBA sharing the same Pix slice.
//
// No copy is made: mutating the returned image mutates the Buffer. Use it
// for encoding or drawing a finished Buffer, not for aliasing a live input.
func (b *Buffer) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// EncodePNGBase64 encodes the Buffer as a PNG and returns it base64-encoded.
func (b *Buffer) EncodePNGBase64() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToImage()); err != nil {
		return "", fmt.Errorf("failed to encode buffer as PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
