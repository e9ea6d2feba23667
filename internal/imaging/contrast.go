package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Contrast returns a copy of img with its contrast changed by level percent.
//
// Level ranges from -100 (every channel pulled to mid-grey) through 0 (no
// change) to 100 (channels pushed towards 0 or 255). The adjustment works on
// straight color channels, so a semi-transparent pixel ends up with the same
// color as an opaque one. Alpha is kept.
func Contrast(img image.Image, level int) (*image.NRGBA, error) {
	if level < -100 || level > 100 {
		return nil, fmt.Errorf("%w: contrast level %d outside -100..100", ErrInvalidArgument, level)
	}

	out := imaging.Clone(img)
	if level == 0 {
		return out, nil
	}

	// bild adjusts premultiplied pixels; hand it the straight channels as an
	// opaque image and put the alpha back afterwards.
	opaque := image.NewRGBA(out.Rect)
	copy(opaque.Pix, out.Pix)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}

	adjusted := adjust.Contrast(opaque, float64(level)/100)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		copy(out.Pix[i:i+3], adjusted.Pix[i:i+3])
	}
	return out, nil
}
