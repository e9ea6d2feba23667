package imaging

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// anchor holds the horizontal and vertical alignment of a placement as
// fractions of the free space: 0 = left/top, 1/2 = center, 1 = right/bottom.
type anchor struct {
	h, v int // numerator over 2
}

var anchors = map[string]anchor{
	"left-top":      {0, 0},
	"center-top":    {1, 0},
	"right-top":     {2, 0},
	"left-center":   {0, 1},
	"center-center": {1, 1},
	"right-center":  {2, 1},
	"left-bottom":   {0, 2},
	"center-bottom": {1, 2},
	"right-bottom":  {2, 2},
}

// DefaultPlacement is used when no placement is given.
const DefaultPlacement = "center-center"

// Placements returns the supported placement names, sorted.
func Placements() []string {
	names := make([]string, 0, len(anchors))
	for name := range anchors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlaceRect returns the top-left point at which an object of the given size
// sits inside canvas for the named placement, before offsets are applied.
// Objects larger than the canvas get a negative free space and overhang it.
func PlaceRect(placement string, canvas image.Rectangle, size image.Point) (image.Point, error) {
	if placement == "" {
		placement = DefaultPlacement
	}
	a, ok := anchors[strings.ToLower(placement)]
	if !ok {
		return image.Point{}, fmt.Errorf("%w: unknown placement %q", ErrInvalidArgument, placement)
	}
	free := canvas.Size().Sub(size)
	return image.Point{
		X: canvas.Min.X + free.X*a.h/2,
		Y: canvas.Min.Y + free.Y*a.v/2,
	}, nil
}
