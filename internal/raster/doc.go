// Package raster provides the pixel-buffer foundation for the forensics
// filters: decoding source images into an owned RGBA byte buffer, enforcing
// the server's input constraints, and encoding result buffers back into
// base64 PNG payloads.
//
// # Buffer Representation
//
// All filters operate on the Buffer type: a contiguous, row-major slice of
// 8-bit RGBA samples with an explicit width and height. A Buffer is owned
// exclusively by its producer until handed to a caller; filters treat their
// input Buffer as read-only and allocate a fresh output Buffer per call.
// A freshly allocated Buffer is fully zeroed, including alpha, which is what
// gives the bordered filters their transparent-black boundary ring.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive, (x2,y2) is exclusive
//
// # Input Constraints
//
// DecodeSource and the SourceCache enforce the input contract before any
// filter runs: sources larger than MaxSourceBytes (10 MB) are rejected, and
// only the registered formats (PNG, JPEG, GIF, WebP) decode successfully.
//
// # Thread Safety
//
// SourceCache is safe for concurrent use. Buffer itself carries no locking;
// concurrent readers are safe, and no code in this module writes to a Buffer
// after it has been returned to a caller.
package raster
