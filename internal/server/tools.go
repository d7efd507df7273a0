package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool that takes a
// source image path.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (PNG, JPEG, GIF, or WebP; max 10 MB)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and file size. Decodes and caches it for subsequent analysis calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into a suspect region for detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},

		// Forensic Maps
		{
			Name:        "analyze_edge_map",
			Description: "Compute the Sobel gradient-magnitude map of an image. Blend seams and haloing around composited content show up as bright lines. Returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_texture_map",
			Description: "Compute the local-variance texture map of an image. Generated content tends to be suspiciously smooth; flat regions render dark. Returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Variance window radius in pixels. Default 2 (5x5 window)",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_lighting_map",
			Description: "Compute the luminance-gradient lighting map of an image. Lighting that disagrees with scene geometry shows up as bright seams. Returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_color_map",
			Description: "Compute the color-artificiality map of an image, highlighting oversaturated and unnaturally uniform pixels. Returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_full",
			Description: "Run all four forensic maps (edge, texture, lighting, color) from a single decode and return them keyed by name: edgeDetection, textureAnalysis, lightingAnalysis, colorDistribution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"texture_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Texture variance window radius. Default 2",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},

		// Localization
		{
			Name:        "analyze_suspect_regions",
			Description: "Find connected clusters of strong edge response and return their bounding boxes, sorted by area. Use the boxes with image_crop to zoom in.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Sobel magnitude cutoff (0-255). Default 80",
						"default":     80,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum bounding-box area in square pixels. Default 100",
						"default":     100,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_annotate",
			Description: "Return a copy of the image with suspect regions outlined, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Sobel magnitude cutoff (0-255). Default 80",
						"default":     80,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum bounding-box area in square pixels. Default 100",
						"default":     100,
					},
					"box_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex, e.g. #FF0000 or #FF0000CC. Default #FF0000",
						"default":     "#FF0000",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Profile
		{
			Name:        "image_color_stats",
			Description: "Compute the numeric color profile of an image: mean saturation, high-saturation and near-gray pixel fractions, mean luminance, and the dominant color palette.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
