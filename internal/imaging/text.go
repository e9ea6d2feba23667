package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-effects-mcp/internal/geometry"
)

// TextDPI is the resolution used to turn a point size into pixels.
const TextDPI = 96

// DrawText renders text onto dst and returns its bounding box.
//
// Parameters:
//   - dst: Image to draw on.
//   - size: Font size in points (at TextDPI). Must be positive.
//   - angle: Rotation in degrees, counter-clockwise.
//   - x, y: Basepoint of the first character, roughly its lower-left corner.
//     y is the baseline, not the bottom of descenders.
//   - c: Text color; its alpha is honored.
//   - fontPath: TrueType font file. Empty selects the toolkit default.
//   - text: UTF-8 text to draw.
//
// Returns:
//   - [8]int: Four points (lower-left, lower-right, upper-right, upper-left)
//     of the text box in dst coordinates.
//   - error: ErrCapabilityUnavailable when text rendering is not available,
//     ErrInvalidArgument for a non-positive size, or a font loading error.
func (t *Toolkit) DrawText(dst draw.Image, size, angle float64, x, y int, c color.Color, fontPath, text string) ([8]int, error) {
	face, err := t.textFace(size, fontPath)
	if err != nil {
		return [8]int{}, err
	}
	defer face.Close()

	box := textBox(face, text)
	origin := fixed.P(x, y)
	src := image.NewUniform(c)

	if normalizeAngle(angle) == 0 {
		d := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: origin}
		d.DrawString(text)
	} else if bounds := box.BoundingBox(); !bounds.Empty() {
		layer := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		d := &font.Drawer{Dst: layer, Src: src, Face: face, Dot: fixed.P(-bounds.Min.X, -bounds.Min.Y)}
		d.DrawString(text)

		rotated := imaging.Rotate(layer, angle, color.Transparent)

		// Follow the basepoint through the rotation, which pivots on the
		// layer's center, to line it up with (x, y).
		half := geometry.Pt(float64(bounds.Dx())/2, float64(bounds.Dy())/2)
		base := geometry.Pt(float64(-bounds.Min.X)-half.X, float64(-bounds.Min.Y)-half.Y).Rotate(angle)
		rb := rotated.Bounds()
		landed := geometry.Pt(float64(rb.Dx())/2+base.X, float64(rb.Dy())/2+base.Y)
		at := geometry.Pt(float64(x)-landed.X, float64(y)-landed.Y).Round()

		draw.Draw(dst, rb.Add(at), rotated, rb.Min, draw.Over)
	}

	return RectangleCorners(box.Rotate(angle).Translate(float64(x), float64(y)))
}

// TextBBox measures text without drawing it.
//
// The returned points are lower-left, lower-right, upper-right and upper-left
// corners of the rotated text box, relative to the basepoint (0,0).
func (t *Toolkit) TextBBox(size, angle float64, fontPath, text string) ([8]int, error) {
	face, err := t.textFace(size, fontPath)
	if err != nil {
		return [8]int{}, err
	}
	defer face.Close()

	return RectangleCorners(textBox(face, text).Rotate(angle))
}

// textFace checks the cached text capability and opens a face for the font.
func (t *Toolkit) textFace(size float64, fontPath string) (font.Face, error) {
	if !t.caps.Text {
		reason := t.caps.Reason
		if reason == "" {
			reason = "text rendering is disabled"
		}
		return nil, fmt.Errorf("%w: %s", ErrCapabilityUnavailable, reason)
	}
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: font size %v must be positive", ErrInvalidArgument, size)
	}
	f, err := t.fonts.Load(t.fontPath(fontPath))
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     TextDPI,
		Hinting: font.HintingFull,
	}), nil
}

// textBox returns the unrotated ink box of text relative to the basepoint.
// Corners a and b sit on the top edge, c and d on the bottom edge.
func textBox(face font.Face, text string) geometry.PositionedRectangle {
	b, _ := font.BoundString(face, text)
	x0, y0 := float64(b.Min.X.Floor()), float64(b.Min.Y.Floor())
	x1, y1 := float64(b.Max.X.Ceil()), float64(b.Max.Y.Ceil())
	return geometry.FromCorners(
		geometry.Pt(x0, y0),
		geometry.Pt(x1, y0),
		geometry.Pt(x1, y1),
		geometry.Pt(x0, y1),
	)
}

// normalizeAngle folds an angle into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
