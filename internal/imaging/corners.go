package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/ironsheep/image-effects-mcp/internal/geometry"
)

// CornerLocator is a positioned rectangle that can report its corners by
// name. geometry.PositionedRectangle implements it.
type CornerLocator interface {
	Corner(name string) (geometry.Point, bool)
}

// polygonOrder is the corner order polygon primitives expect.
var polygonOrder = [4]string{geometry.CornerD, geometry.CornerC, geometry.CornerB, geometry.CornerA}

// RectangleCorners flattens the four corners of rect into x,y pairs in the
// order d, c, b, a, rounded to whole pixels.
//
// For a rectangle with a=(0,0), b=(10,0), c=(10,10), d=(0,10) the result is
// [0 10 10 10 10 0 0 0].
func RectangleCorners(rect CornerLocator) ([8]int, error) {
	var out [8]int
	for i, name := range polygonOrder {
		p, ok := rect.Corner(name)
		if !ok {
			return [8]int{}, fmt.Errorf("%w: rectangle has no corner %q", ErrInvalidArgument, name)
		}
		rp := p.Round()
		out[2*i] = rp.X
		out[2*i+1] = rp.Y
	}
	return out, nil
}

// FillPolygon fills the closed polygon given as a flat x,y coordinate list,
// compositing c over img with anti-aliased edges.
func FillPolygon(img draw.Image, points []int, c color.Color) error {
	if len(points) < 6 || len(points)%2 != 0 {
		return fmt.Errorf("%w: polygon needs at least 3 x,y pairs, got %d values", ErrInvalidArgument, len(points))
	}

	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	z.MoveTo(float32(points[0]-b.Min.X), float32(points[1]-b.Min.Y))
	for i := 2; i < len(points); i += 2 {
		z.LineTo(float32(points[i]-b.Min.X), float32(points[i+1]-b.Min.Y))
	}
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(c), image.Point{})
	return nil
}
