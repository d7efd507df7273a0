// Package analysis composes the forensic filter kernels into the results a
// client actually consumes: the four-map analysis report, suspect-region
// localization, annotated overlays, and numeric color statistics.
//
// The aggregator decodes a source once and fans the four kernels out over
// the same read-only buffer, one goroutine per kernel. The kernels are pure,
// so concurrent execution is observably identical to sequential execution.
//
// Region detection and color statistics are advisory: they point a reviewer
// at areas and numbers worth a closer look. Deciding whether an image is
// synthetic belongs to a scoring layer outside this module.
package analysis
