// Package filters implements the four per-pixel forensic map kernels: Sobel
// edge magnitude, local-variance texture, luminance-gradient lighting, and
// saturation/uniformity color artificiality.
//
// Each kernel is a pure function from a read-only input raster.Buffer to a
// freshly allocated output Buffer of identical dimensions. Kernels never
// mutate their input, share no state, and are deterministic: re-running a
// kernel on the same input yields byte-identical output. Interior rows are
// processed in parallel; determinism is unaffected because every output
// pixel depends only on the input.
//
// # Border Policy
//
// The edge, texture, and lighting kernels evaluate only pixels whose full
// neighborhood lies inside the image. The outermost ring (one pixel for the
// 3x3 kernels, the window radius for texture) is left at the output
// buffer's zero value: transparent black. The color kernel is the
// exception and runs over the full grid, borders included. These policies
// are load-bearing for downstream consumers and covered by regression
// tests; see the aggregator documentation before changing either.
//
// Images too small to contain a single full kernel window produce an
// all-zero output of the input's size rather than an error.
package filters
