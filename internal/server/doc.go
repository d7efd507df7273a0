// Package server implements the MCP (Model Context Protocol) server for the
// image-forensics tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the forensic
// filter maps, suspect-region localization, and supporting image tooling
// through the MCP protocol, so MCP-compatible clients can inspect an image
// for manipulation artifacts step by step.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Forensic Maps:
//   - analyze_edge_map: Sobel gradient-magnitude map
//   - analyze_texture_map: Local-variance texture map
//   - analyze_lighting_map: Luminance-gradient map
//   - analyze_color_map: Color-artificiality map
//   - analyze_full: All four maps from one decode
//
// Localization:
//   - analyze_suspect_regions: Bounding boxes of edge anomalies
//   - analyze_annotate: Source with suspect regions boxed
//
// Color Profile:
//   - image_color_stats: Saturation/uniformity statistics and palette
//
// # Source Caching
//
// The server maintains an in-memory cache of decoded sources. Buffers are
// cached by path and shared read-only across tool calls, so a typical
// load-then-analyze sequence decodes each image exactly once. The cache
// persists for the lifetime of the server process.
//
// # Input Constraints
//
// Sources must be PNG, JPEG, GIF, or WebP and at most 10 MB encoded. Both
// constraints are enforced at load time, before any filter runs.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
