package server

import "github.com/ironsheep/image-effects-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func placementProperties() map[string]interface{} {
	return map[string]interface{}{
		"placement": map[string]interface{}{
			"type":        "string",
			"enum":        imaging.Placements(),
			"description": "Anchor inside the image. Default center-center",
			"default":     imaging.DefaultPlacement,
		},
		"x_offset": map[string]interface{}{
			"type":        "integer",
			"description": "Horizontal shift from the anchored position, in pixels",
			"default":     0,
		},
		"y_offset": map[string]interface{}{
			"type":        "integer",
			"description": "Vertical shift from the anchored position, in pixels",
			"default":     0,
		},
	}
}

func merge(dst, src map[string]interface{}) map[string]interface{} {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, alpha and file size. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
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
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_decode_color",
			Description: "Decode a '#RRGGBBAA' color into red, green, blue, opacity percent and native alpha (0 opaque .. 127 transparent).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"pattern":     "^#[0-9A-Fa-f]{8}$",
						"description": "Color as '#' followed by exactly eight hex digits",
					},
				},
				"required": []string{"color"},
			},
		},

		// Compositing
		{
			Name:        "image_composite",
			Description: "Blend a region of a source image onto a destination image at a given opacity, preserving the alpha channel of both. Returns the result as base64-encoded PNG; files on disk are not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the destination image"),
					"source_path": pathProperty("Absolute path to the source image"),
					"dst_x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge of the target region in the destination",
					},
					"dst_y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge of the target region in the destination",
					},
					"src_x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge of the region in the source",
					},
					"src_y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge of the region in the source",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Region width. Default: rest of the source from src_x",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Region height. Default: rest of the source from src_y",
					},
					"opacity": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"maximum":     100,
						"description": "Source opacity in percent. Default 100",
						"default":     100,
					},
				},
				"required": []string{"path", "source_path"},
			},
		},
		{
			Name:        "image_watermark",
			Description: "Place a watermark image onto an image by anchor, offset, scale and opacity. Returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(map[string]interface{}{
					"path":           pathProperty("Absolute path to the image to watermark"),
					"watermark_path": pathProperty("Absolute path to the watermark image"),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Watermark size in percent of its own size. Default 100",
						"default":     100,
					},
					"opacity": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"maximum":     100,
						"description": "Watermark opacity in percent. Default 100",
						"default":     100,
					},
				}, placementProperties()),
				"required": []string{"path", "watermark_path"},
			},
		},

		// Text
		{
			Name:        "image_text_overlay",
			Description: "Draw a text box, optionally rotated and with a background, onto an image. Returns the result as base64-encoded PNG plus the text's corner points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to draw",
					},
					"font": pathProperty("Optional TrueType font file. Default: the server's default font"),
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Font size in points. Default 12",
						"default":     12,
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation in degrees, counter-clockwise. Default 0",
						"default":     0,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Text color as '#RRGGBBAA'. Default #000000FF",
						"default":     "#000000FF",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Optional background color as '#RRGGBBAA'",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Background padding in pixels. Default 0",
						"default":     0,
					},
				}, placementProperties()),
				"required": []string{"path", "text"},
			},
		},
		{
			Name:        "image_text_bbox",
			Description: "Measure text without drawing it. Returns the lower-left, lower-right, upper-right and upper-left corners relative to the text basepoint.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to measure",
					},
					"font": pathProperty("Optional TrueType font file. Default: the server's default font"),
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Font size in points. Default 12",
						"default":     12,
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation in degrees, counter-clockwise. Default 0",
						"default":     0,
					},
				},
				"required": []string{"text"},
			},
		},

		// Adjustments
		{
			Name:        "image_contrast",
			Description: "Change the contrast of an image. Returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"level": map[string]interface{}{
						"type":        "integer",
						"minimum":     -100,
						"maximum":     100,
						"description": "Contrast change: -100 flattens to grey, 0 keeps, 100 maximizes",
					},
				},
				"required": []string{"path", "level"},
			},
		},

		// Geometry and Environment
		{
			Name:        "image_rectangle_corners",
			Description: "Rotate a width x height rectangle around its top-left corner, move it to (x, y) and return its corners in lower-left, lower-right, upper-right, upper-left order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Rectangle width",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Rectangle height",
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Rotation in degrees, counter-clockwise. Default 0",
						"default":     0,
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Final position of the top-left corner. Default 0",
						"default":     0,
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Final position of the top-left corner. Default 0",
						"default":     0,
					},
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "image_capabilities",
			Description: "Report which optional features (text rendering) are available and the supported placement names.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
