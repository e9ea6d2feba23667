package geometry

import (
	"image"
	"math"
)

// Corner names, in clockwise order starting from the top-left.
const (
	CornerA = "a" // top-left before any rotation
	CornerB = "b" // top-right
	CornerC = "c" // bottom-right
	CornerD = "d" // bottom-left
)

// epsilon absorbs the floating point noise left by trigonometry so that a
// corner at 3.9999999999 still lands on pixel 4.
const epsilon = 1e-9

var cornerIndex = map[string]int{CornerA: 0, CornerB: 1, CornerC: 2, CornerD: 3}

// Point is a position in pixel space with sub-pixel precision.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rotate returns p rotated by deg degrees counter-clockwise around the origin.
func (p Point) Rotate(deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Point{
		X: p.X*cos + p.Y*sin,
		Y: -p.X*sin + p.Y*cos,
	}
}

// Round returns p rounded to the nearest integer pixel.
func (p Point) Round() image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// PositionedRectangle is a rectangle that may have been rotated and moved.
// The zero value is a degenerate rectangle with all corners at the origin.
type PositionedRectangle struct {
	corners [4]Point
}

// NewRectangle returns an axis-aligned width x height rectangle with corner
// a at the origin.
func NewRectangle(width, height float64) PositionedRectangle {
	return PositionedRectangle{corners: [4]Point{
		{0, 0},
		{width, 0},
		{width, height},
		{0, height},
	}}
}

// FromCorners builds a rectangle from explicit corner positions.
func FromCorners(a, b, c, d Point) PositionedRectangle {
	return PositionedRectangle{corners: [4]Point{a, b, c, d}}
}

// FromImageRect returns the axis-aligned rectangle covering r.
func FromImageRect(r image.Rectangle) PositionedRectangle {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	return FromCorners(Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1))
}

// Corner returns the position of the named corner ("a", "b", "c" or "d").
func (r PositionedRectangle) Corner(name string) (Point, bool) {
	i, ok := cornerIndex[name]
	if !ok {
		return Point{}, false
	}
	return r.corners[i], true
}

// Corners returns the corners in a, b, c, d order.
func (r PositionedRectangle) Corners() []Point {
	return []Point{r.corners[0], r.corners[1], r.corners[2], r.corners[3]}
}

// Rotate returns the rectangle rotated by deg degrees counter-clockwise
// around the origin.
func (r PositionedRectangle) Rotate(deg float64) PositionedRectangle {
	for i := range r.corners {
		r.corners[i] = r.corners[i].Rotate(deg)
	}
	return r
}

// RotateAround returns the rectangle rotated by deg degrees counter-clockwise
// around pivot.
func (r PositionedRectangle) RotateAround(pivot Point, deg float64) PositionedRectangle {
	back := Pt(-pivot.X, -pivot.Y)
	return r.Translate(back.X, back.Y).Rotate(deg).Translate(pivot.X, pivot.Y)
}

// Translate returns the rectangle moved by (dx, dy).
func (r PositionedRectangle) Translate(dx, dy float64) PositionedRectangle {
	d := Pt(dx, dy)
	for i := range r.corners {
		r.corners[i] = r.corners[i].Add(d)
	}
	return r
}

// Center returns the mean of the four corners.
func (r PositionedRectangle) Center() Point {
	var c Point
	for _, p := range r.corners {
		c.X += p.X / 4
		c.Y += p.Y / 4
	}
	return c
}

// BoundingBox returns the smallest integer rectangle enclosing every corner.
func (r PositionedRectangle) BoundingBox() image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range r.corners {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX+epsilon)), int(math.Floor(minY+epsilon)),
		int(math.Ceil(maxX-epsilon)), int(math.Ceil(maxY-epsilon)),
	)
}
