package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/image-effects-mcp/internal/geometry"
	"github.com/ironsheep/image-effects-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_watermark").
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
// Known failures carry their error kind as a message suffix, e.g.
// "Tool execution failed: InvalidColorFormat".
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		msg := "Tool execution failed"
		if kind := imaging.KindOf(err); kind != imaging.KindUnknown {
			msg += ": " + kind.String()
		}
		return s.errorResponse(req.ID, -32000, msg, err.Error())
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
//  3. Loads images from cache as needed, cloning destinations
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_decode_color":
		return s.handleImageDecodeColor(args)

	// Compositing
	case "image_composite":
		return s.handleImageComposite(args)
	case "image_watermark":
		return s.handleImageWatermark(args)

	// Text
	case "image_text_overlay":
		return s.handleImageTextOverlay(args)
	case "image_text_bbox":
		return s.handleImageTextBBox(args)

	// Adjustments
	case "image_contrast":
		return s.handleImageContrast(args)

	// Geometry and Environment
	case "image_rectangle_corners":
		return s.handleImageRectangleCorners(args)
	case "image_capabilities":
		return s.handleImageCapabilities(args)

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
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageDecodeColorArgs struct {
	Color string `json:"color"`
}

func (s *Server) handleImageDecodeColor(args json.RawMessage) (interface{}, error) {
	var a imageDecodeColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.DescribeColor(a.Color)
}

// === Compositing Handlers ===

type imageCompositeArgs struct {
	Path       string `json:"path"`
	SourcePath string `json:"source_path"`
	DstX       int    `json:"dst_x"`
	DstY       int    `json:"dst_y"`
	SrcX       int    `json:"src_x"`
	SrcY       int    `json:"src_y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Opacity    *int   `json:"opacity"`
}

func (s *Server) handleImageComposite(args json.RawMessage) (interface{}, error) {
	var a imageCompositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pct := intOr(a.Opacity, 100)

	dst, err := s.cache.LoadMutable(a.Path)
	if err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.SourcePath)
	if err != nil {
		return nil, err
	}

	// Width and height default to the rest of the source from (src_x, src_y).
	sb := src.Bounds()
	sp := sb.Min.Add(image.Pt(a.SrcX, a.SrcY))
	if a.Width == 0 {
		a.Width = sb.Max.X - sp.X
	}
	if a.Height == 0 {
		a.Height = sb.Max.Y - sp.Y
	}

	if err := s.toolkit.CopyMergeAlpha(dst, src, image.Pt(a.DstX, a.DstY), sp, a.Width, a.Height, pct); err != nil {
		return nil, err
	}
	return imaging.EncodeResult(dst)
}

type imageWatermarkArgs struct {
	Path          string `json:"path"`
	WatermarkPath string `json:"watermark_path"`
	Placement     string `json:"placement"`
	XOffset       int    `json:"x_offset"`
	YOffset       int    `json:"y_offset"`
	Scale         int    `json:"scale"`
	Opacity       *int   `json:"opacity"`
}

func (s *Server) handleImageWatermark(args json.RawMessage) (interface{}, error) {
	var a imageWatermarkArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	dst, err := s.cache.LoadMutable(a.Path)
	if err != nil {
		return nil, err
	}
	mark, err := s.cache.Load(a.WatermarkPath)
	if err != nil {
		return nil, err
	}

	opts := imaging.WatermarkOptions{
		Placement: a.Placement,
		XOffset:   a.XOffset,
		YOffset:   a.YOffset,
		Scale:     a.Scale,
		Opacity:   intOr(a.Opacity, 100),
	}
	if err := s.toolkit.Watermark(dst, mark, opts); err != nil {
		return nil, err
	}
	return imaging.EncodeResult(dst)
}

// === Text Handlers ===

type imageTextOverlayArgs struct {
	Path       string  `json:"path"`
	Text       string  `json:"text"`
	Font       string  `json:"font"`
	Size       float64 `json:"size"`
	Angle      float64 `json:"angle"`
	Color      string  `json:"color"`
	Background string  `json:"background"`
	Padding    int     `json:"padding"`
	Placement  string  `json:"placement"`
	XOffset    int     `json:"x_offset"`
	YOffset    int     `json:"y_offset"`
}

// TextOverlayResult is the image produced by image_text_overlay together
// with the position of the drawn text.
type TextOverlayResult struct {
	*imaging.ImageResult
	BBox [8]int `json:"bbox"`
}

func (s *Server) handleImageTextOverlay(args json.RawMessage) (interface{}, error) {
	var a imageTextOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size == 0 {
		a.Size = 12
	}
	if a.Color == "" {
		a.Color = "#000000FF"
	}

	dst, err := s.cache.LoadMutable(a.Path)
	if err != nil {
		return nil, err
	}

	bbox, err := s.toolkit.TextOverlay(dst, imaging.TextOverlayOptions{
		Text:       a.Text,
		FontPath:   a.Font,
		Size:       a.Size,
		Angle:      a.Angle,
		Color:      a.Color,
		Background: a.Background,
		Padding:    a.Padding,
		Placement:  a.Placement,
		XOffset:    a.XOffset,
		YOffset:    a.YOffset,
	})
	if err != nil {
		return nil, err
	}

	res, err := imaging.EncodeResult(dst)
	if err != nil {
		return nil, err
	}
	return &TextOverlayResult{ImageResult: res, BBox: bbox}, nil
}

type imageTextBBoxArgs struct {
	Text  string  `json:"text"`
	Font  string  `json:"font"`
	Size  float64 `json:"size"`
	Angle float64 `json:"angle"`
}

// TextBBoxResult describes the measured box of a text string.
type TextBBoxResult struct {
	BBox   [8]int `json:"bbox"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageTextBBox(args json.RawMessage) (interface{}, error) {
	var a imageTextBBoxArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size == 0 {
		a.Size = 12
	}

	bbox, err := s.toolkit.TextBBox(a.Size, a.Angle, a.Font, a.Text)
	if err != nil {
		return nil, err
	}
	b := boundsOf(bbox)
	return &TextBBoxResult{BBox: bbox, Width: b.Dx(), Height: b.Dy()}, nil
}

// === Adjustment Handlers ===

type imageContrastArgs struct {
	Path  string `json:"path"`
	Level int    `json:"level"`
}

func (s *Server) handleImageContrast(args json.RawMessage) (interface{}, error) {
	var a imageContrastArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Contrast(img, a.Level)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeResult(out)
}

// === Geometry and Environment Handlers ===

type imageRectangleCornersArgs struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// RectangleCornersResult lists the corners of a positioned rectangle.
type RectangleCornersResult struct {
	Corners     [8]int          `json:"corners"`
	BoundingBox Region          `json:"bounding_box"`
	Named       map[string]Pair `json:"named"`
}

// Pair is a rounded x,y coordinate.
type Pair struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is an axis-aligned rectangle; x2 and y2 are exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (s *Server) handleImageRectangleCorners(args json.RawMessage) (interface{}, error) {
	var a imageRectangleCornersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("%w: rectangle size %vx%v must be positive", imaging.ErrInvalidArgument, a.Width, a.Height)
	}

	rect := geometry.NewRectangle(a.Width, a.Height).Rotate(a.Angle).Translate(a.X, a.Y)
	corners, err := imaging.RectangleCorners(rect)
	if err != nil {
		return nil, err
	}

	named := make(map[string]Pair, 4)
	for _, name := range []string{geometry.CornerA, geometry.CornerB, geometry.CornerC, geometry.CornerD} {
		p, _ := rect.Corner(name)
		r := p.Round()
		named[name] = Pair{X: r.X, Y: r.Y}
	}

	bb := rect.BoundingBox()
	return &RectangleCornersResult{
		Corners:     corners,
		BoundingBox: Region{X1: bb.Min.X, Y1: bb.Min.Y, X2: bb.Max.X, Y2: bb.Max.Y},
		Named:       named,
	}, nil
}

// CapabilitiesResult reports what this server can do.
type CapabilitiesResult struct {
	imaging.Capabilities
	Placements []string `json:"placements"`
}

func (s *Server) handleImageCapabilities(args json.RawMessage) (interface{}, error) {
	return &CapabilitiesResult{
		Capabilities: s.toolkit.Capabilities(),
		Placements:   imaging.Placements(),
	}, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// boundsOf returns the rectangle spanned by the four points of a box.
func boundsOf(box [8]int) image.Rectangle {
	r := image.Rectangle{Min: image.Pt(box[0], box[1]), Max: image.Pt(box[0], box[1])}
	for i := 2; i < 8; i += 2 {
		if box[i] < r.Min.X {
			r.Min.X = box[i]
		}
		if box[i] > r.Max.X {
			r.Max.X = box[i]
		}
		if box[i+1] < r.Min.Y {
			r.Min.Y = box[i+1]
		}
		if box[i+1] > r.Max.Y {
			r.Max.Y = box[i+1]
		}
	}
	return r
}
