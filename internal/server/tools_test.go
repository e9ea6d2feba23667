package server

import (
	"testing"

	"github.com/ironsheep/image-effects-mcp/internal/imaging"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_decode_color",
		"image_composite",
		"image_watermark",
		"image_text_overlay",
		"image_text_bbox",
		"image_contrast",
		"image_rectangle_corners",
		"image_capabilities",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter is a declared property.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q not declared", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	toolsRequiringPath := []string{
		"image_load",
		"image_dimensions",
		"image_composite",
		"image_watermark",
		"image_text_overlay",
		"image_contrast",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringPath {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("tool %s not found", name)
			continue
		}

		t.Run(name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_Placement(t *testing.T) {
	for _, name := range []string{"image_watermark", "image_text_overlay"} {
		t.Run(name, func(t *testing.T) {
			var tool Tool
			for _, candidate := range GetToolDefinitions() {
				if candidate.Name == name {
					tool = candidate
				}
			}
			props, _ := tool.InputSchema["properties"].(map[string]interface{})
			placement, ok := props["placement"].(map[string]interface{})
			if !ok {
				t.Fatal("placement property missing")
			}
			enum, _ := placement["enum"].([]string)
			if len(enum) != len(imaging.Placements()) {
				t.Errorf("placement enum: got %v", enum)
			}
			if placement["default"] != imaging.DefaultPlacement {
				t.Errorf("placement default: got %v", placement["default"])
			}
			for _, key := range []string{"x_offset", "y_offset"} {
				if _, ok := props[key]; !ok {
					t.Errorf("%s property missing", key)
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tests := []struct {
		tool    string
		param   string
		wantDef interface{}
	}{
		{"image_composite", "opacity", 100},
		{"image_watermark", "opacity", 100},
		{"image_watermark", "scale", 100},
		{"image_text_overlay", "size", 12},
		{"image_text_overlay", "color", "#000000FF"},
		{"image_text_bbox", "size", 12},
		{"image_rectangle_corners", "angle", 0},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.param, func(t *testing.T) {
			props, _ := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("parameter %s not found", tt.param)
			}
			if param["default"] != tt.wantDef {
				t.Errorf("default: got %v, want %v", param["default"], tt.wantDef)
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
