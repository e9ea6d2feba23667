// Package server implements the MCP (Model Context Protocol) server for the
// image effect tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging
// toolkit through the MCP protocol: alpha-preserving compositing,
// watermarks, text overlays, contrast and the supporting color and geometry
// helpers.
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
// Color Operations:
//   - image_decode_color: Decode a '#RRGGBBAA' string
//
// Compositing:
//   - image_composite: Blend a source region onto a destination at an opacity
//   - image_watermark: Anchor, scale and blend a watermark image
//
// Text:
//   - image_text_overlay: Draw a rotated text box with optional background
//   - image_text_bbox: Measure text without drawing it
//
// Adjustments:
//   - image_contrast: Change contrast by a percentage
//
// Geometry and Environment:
//   - image_rectangle_corners: Corners of a rotated, positioned rectangle
//   - image_capabilities: Optional features and placement names
//
// Tools that produce an image return it as base64-encoded PNG. Files on disk
// are never written.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Tools
// that draw onto an image work on a private copy, so a cached image is never
// modified.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: "Tool execution failed", suffixed with the imaging error kind
//     when there is one
//   - data: the Go error string
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
