package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mediaproof/forensics-mcp/internal/analysis"
	"github.com/mediaproof/forensics-mcp/internal/filters"
	"github.com/mediaproof/forensics-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "analyze_full").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the decoded source from the cache
//  4. Calls the appropriate raster/filters/analysis function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Forensic Maps
	case "analyze_edge_map":
		return s.handleAnalyzeEdgeMap(args)
	case "analyze_texture_map":
		return s.handleAnalyzeTextureMap(args)
	case "analyze_lighting_map":
		return s.handleAnalyzeLightingMap(args)
	case "analyze_color_map":
		return s.handleAnalyzeColorMap(args)
	case "analyze_full":
		return s.handleAnalyzeFull(args)

	// Localization
	case "analyze_suspect_regions":
		return s.handleAnalyzeSuspectRegions(args)
	case "analyze_annotate":
		return s.handleAnalyzeAnnotate(args)

	// Color Profile
	case "image_color_stats":
		return s.handleImageColorStats(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadSourceInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return raster.Crop(buf, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageCropQuadrantArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return raster.CropQuadrant(buf, a.Region, a.Scale)
}

// === Forensic Map Handlers ===

type analyzeMapArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleAnalyzeEdgeMap(args json.RawMessage) (interface{}, error) {
	var a analyzeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.EncodeMap(filters.EdgeMap(buf))
}

type analyzeTextureArgs struct {
	Path   string `json:"path"`
	Radius int    `json:"radius"`
}

func (s *Server) handleAnalyzeTextureMap(args json.RawMessage) (interface{}, error) {
	var a analyzeTextureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.EncodeMap(filters.TextureMap(buf, a.Radius))
}

func (s *Server) handleAnalyzeLightingMap(args json.RawMessage) (interface{}, error) {
	var a analyzeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.EncodeMap(filters.LightingMap(buf))
}

func (s *Server) handleAnalyzeColorMap(args json.RawMessage) (interface{}, error) {
	var a analyzeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.EncodeMap(filters.ColorMap(buf))
}

type analyzeFullArgs struct {
	Path          string `json:"path"`
	TextureRadius int    `json:"texture_radius"`
}

func (s *Server) handleAnalyzeFull(args json.RawMessage) (interface{}, error) {
	var a analyzeFullArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.Run(context.Background(), buf, a.TextureRadius)
}

// === Localization Handlers ===

type suspectRegionsArgs struct {
	Path      string `json:"path"`
	Threshold int    `json:"threshold"`
	MinArea   int    `json:"min_area"`
}

func (s *Server) handleAnalyzeSuspectRegions(args json.RawMessage) (interface{}, error) {
	var a suspectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = 80
	}
	if a.MinArea == 0 {
		a.MinArea = 100
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.SuspectRegions(buf, a.Threshold, a.MinArea), nil
}

type annotateArgs struct {
	Path      string `json:"path"`
	Threshold int    `json:"threshold"`
	MinArea   int    `json:"min_area"`
	BoxColor  string `json:"box_color"`
}

func (s *Server) handleAnalyzeAnnotate(args json.RawMessage) (interface{}, error) {
	var a annotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = 80
	}
	if a.MinArea == 0 {
		a.MinArea = 100
	}
	if a.BoxColor == "" {
		a.BoxColor = "#FF0000"
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions := analysis.SuspectRegions(buf, a.Threshold, a.MinArea)
	return analysis.Annotate(buf, regions.Regions, a.BoxColor)
}

// === Color Profile Handlers ===

type colorStatsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) handleImageColorStats(args json.RawMessage) (interface{}, error) {
	var a colorStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analysis.ColorStats(buf, a.Count)
}
