package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// WatermarkOptions controls where and how a watermark is applied.
type WatermarkOptions struct {
	// Placement is an anchor name such as "right-bottom". Empty means
	// DefaultPlacement.
	Placement string

	// XOffset and YOffset shift the watermark from its anchored position.
	XOffset int
	YOffset int

	// Scale resizes the watermark to this percentage of its own size.
	// Zero or 100 keeps the original size.
	Scale int

	// Opacity of the watermark in percent (0-100).
	Opacity int
}

// Watermark composites mark onto dst, preserving the alpha of both.
//
// The watermark is scaled, anchored, offset and then clipped to dst; the
// visible part is merged with CopyMergeAlpha. A watermark placed entirely
// outside dst leaves dst unchanged and is not an error.
func (t *Toolkit) Watermark(dst draw.Image, mark image.Image, opts WatermarkOptions) error {
	if dst == nil || mark == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if opts.Opacity < 0 || opts.Opacity > 100 {
		return fmt.Errorf("%w: opacity %d outside 0-100", ErrInvalidArgument, opts.Opacity)
	}
	if opts.Scale < 0 {
		return fmt.Errorf("%w: scale %d must not be negative", ErrInvalidArgument, opts.Scale)
	}

	if opts.Scale != 0 && opts.Scale != 100 {
		w := mark.Bounds().Dx() * opts.Scale / 100
		if w < 1 {
			w = 1
		}
		mark = imaging.Resize(mark, w, 0, imaging.Lanczos)
	}

	mb := mark.Bounds()
	pos, err := PlaceRect(opts.Placement, dst.Bounds(), mb.Size())
	if err != nil {
		return err
	}
	pos = pos.Add(image.Pt(opts.XOffset, opts.YOffset))

	placed := image.Rectangle{Min: pos, Max: pos.Add(mb.Size())}
	visible := placed.Intersect(dst.Bounds())
	if visible.Empty() {
		return nil
	}
	sp := mb.Min.Add(visible.Min.Sub(pos))

	return t.CopyMergeAlpha(dst, mark, visible.Min, sp, visible.Dx(), visible.Dy(), opts.Opacity)
}
