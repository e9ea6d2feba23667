package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ironsheep/image-effects-mcp/internal/geometry"
)

// TextOverlayOptions describes a text box drawn onto an image.
type TextOverlayOptions struct {
	Text     string
	FontPath string  // Empty selects the toolkit default font
	Size     float64 // Points
	Angle    float64 // Degrees, counter-clockwise

	// Color and Background are '#RRGGBBAA' strings. An empty Background
	// draws no box behind the text.
	Color      string
	Background string

	// Padding grows the background box on every side, in pixels.
	Padding int

	Placement string // Anchor name; empty means DefaultPlacement
	XOffset   int
	YOffset   int
}

// TextOverlay draws a possibly rotated text box onto dst.
//
// The padded box is rotated around the text basepoint, anchored inside dst by
// its bounding rectangle and shifted by the offsets. The background, when
// set, is filled as a polygon through the box corners; the text is then drawn
// on top. Returns the text's bounding box in dst coordinates, in the same
// order as DrawText.
func (t *Toolkit) TextOverlay(dst draw.Image, opts TextOverlayOptions) ([8]int, error) {
	if opts.Padding < 0 {
		return [8]int{}, fmt.Errorf("%w: padding %d must not be negative", ErrInvalidArgument, opts.Padding)
	}
	fg, err := AllocateColor(dst, opts.Color)
	if err != nil {
		return [8]int{}, fmt.Errorf("text color: %w", err)
	}

	face, err := t.textFace(opts.Size, opts.FontPath)
	if err != nil {
		return [8]int{}, err
	}
	box := textBox(face, opts.Text)
	face.Close()

	p := float64(opts.Padding)
	a, _ := box.Corner(geometry.CornerA)
	c, _ := box.Corner(geometry.CornerC)
	padded := geometry.FromCorners(
		geometry.Pt(a.X-p, a.Y-p),
		geometry.Pt(c.X+p, a.Y-p),
		geometry.Pt(c.X+p, c.Y+p),
		geometry.Pt(a.X-p, c.Y+p),
	).Rotate(opts.Angle)

	bounds := padded.BoundingBox()
	pos, err := PlaceRect(opts.Placement, dst.Bounds(), bounds.Size())
	if err != nil {
		return [8]int{}, err
	}
	base := pos.Sub(bounds.Min).Add(image.Pt(opts.XOffset, opts.YOffset))

	if opts.Background != "" {
		bg, err := AllocateColor(dst, opts.Background)
		if err != nil {
			return [8]int{}, fmt.Errorf("background color: %w", err)
		}
		corners, err := RectangleCorners(padded.Translate(float64(base.X), float64(base.Y)))
		if err != nil {
			return [8]int{}, err
		}
		if err := FillPolygon(dst, corners[:], bg); err != nil {
			return [8]int{}, err
		}
	}

	return t.DrawText(dst, opts.Size, opts.Angle, base.X, base.Y, fg, opts.FontPath, opts.Text)
}
