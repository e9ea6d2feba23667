package imaging

import (
	"fmt"
	"image"
	"image/draw"
)

// CopyMergeAlpha copies the w x h region at sp in src onto dst at dp, blended
// at pct percent, without corrupting the alpha channel of either image.
//
// Parameters:
//   - dst: Destination image, mutated in place.
//   - src: Source image, read only.
//   - dp: Destination point (top-left of the target region in dst).
//   - sp: Source point (top-left of the region in src).
//   - w, h: Region size in pixels. Must be positive.
//   - pct: Opacity of the source in percent (0-100).
//
// Returns an error wrapping:
//   - ErrInvalidArgument: pct or region out of range; dst is untouched.
//   - ErrResourceAllocationFailed: the scratch buffer could not be created;
//     dst is untouched.
//   - ErrCopyFailed: a copy step failed. dst is untouched unless the failing
//     step was the final copy back, in which case its region is indeterminate.
//
// # Algorithm
//
// At 100% the region is copied directly; nothing is blended, so source
// alpha is carried over as is.
//
// Below 100% the blend happens in a scratch buffer sized to the region:
//  1. the destination region is copied into the scratch buffer
//  2. the source region is merged over it at pct
//  3. the scratch buffer replaces the destination region wholesale
//
// The scratch buffer stores pixels the same way dst does, so copying in and
// out of it is lossless.
func (t *Toolkit) CopyMergeAlpha(dst draw.Image, src image.Image, dp, sp image.Point, w, h, pct int) error {
	if err := validateComposite(dst, src, dp, sp, w, h, pct); err != nil {
		return err
	}
	sr := image.Rect(sp.X, sp.Y, sp.X+w, sp.Y+h)

	if pct == 100 {
		if err := t.raster.Copy(dst, src, dp, sr); err != nil {
			return fmt.Errorf("%w: direct copy: %v", ErrCopyFailed, err)
		}
		return nil
	}

	scratch, err := t.raster.NewTrueColor(w, h, dst.ColorModel())
	if err != nil {
		return fmt.Errorf("%w: scratch buffer %dx%d: %v", ErrResourceAllocationFailed, w, h, err)
	}
	defer t.raster.Release(scratch)

	origin := scratch.Bounds().Min
	if err := t.raster.Copy(scratch, dst, origin, image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}); err != nil {
		return fmt.Errorf("%w: destination into scratch: %v", ErrCopyFailed, err)
	}
	if err := t.raster.Merge(scratch, src, origin, sr, pct); err != nil {
		return fmt.Errorf("%w: source into scratch: %v", ErrCopyFailed, err)
	}
	if err := t.raster.Copy(dst, scratch, dp, scratch.Bounds()); err != nil {
		return fmt.Errorf("%w: scratch back to destination: %v", ErrCopyFailed, err)
	}
	return nil
}

// CopyMergeAlpha runs Toolkit.CopyMergeAlpha on an unbounded NativeRaster.
func CopyMergeAlpha(dst draw.Image, src image.Image, dp, sp image.Point, w, h, pct int) error {
	t := &Toolkit{raster: NativeRaster{}}
	return t.CopyMergeAlpha(dst, src, dp, sp, w, h, pct)
}

func validateComposite(dst draw.Image, src image.Image, dp, sp image.Point, w, h, pct int) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: percentage %d outside 0-100", ErrInvalidArgument, pct)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: region size %dx%d must be positive", ErrInvalidArgument, w, h)
	}
	sr := image.Rect(sp.X, sp.Y, sp.X+w, sp.Y+h)
	if !sr.In(src.Bounds()) {
		return fmt.Errorf("%w: source region %v outside source bounds %v", ErrInvalidArgument, sr, src.Bounds())
	}
	dr := image.Rect(dp.X, dp.Y, dp.X+w, dp.Y+h)
	if !dr.In(dst.Bounds()) {
		return fmt.Errorf("%w: destination region %v outside destination bounds %v", ErrInvalidArgument, dr, dst.Bounds())
	}
	return nil
}
