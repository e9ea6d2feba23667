package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Raster is the set of bitmap primitives the toolkit operations are built on.
//
// Implementations report failures through errors rather than partial results;
// the composite operation relies on this to keep the destination untouched
// when a scratch step fails.
type Raster interface {
	// NewTrueColor allocates a width x height true-color image with its
	// origin at (0,0), storing pixels the way model does.
	NewTrueColor(width, height int, model color.Model) (draw.Image, error)

	// Release gives back an image obtained from NewTrueColor.
	Release(img draw.Image)

	// Copy replaces the pixels of dst in the rectangle starting at dp with
	// the pixels of src in sr. No blending takes place.
	Copy(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle) error

	// Merge composites src's sr over dst at dp with src's alpha scaled by
	// pct percent.
	Merge(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle, pct int) error
}

// NativeRaster implements Raster on top of image/draw.
type NativeRaster struct {
	// MaxPixels caps the size of a single allocation. Zero means no cap.
	MaxPixels int
}

// NewTrueColor allocates an image in the layout of model: *image.RGBA,
// *image.RGBA64 or *image.NRGBA64 for their models, *image.NRGBA otherwise.
func (n NativeRaster) NewTrueColor(width, height int, model color.Model) (draw.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrResourceAllocationFailed, width, height)
	}
	if n.MaxPixels > 0 && width*height > n.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d pixel budget",
			ErrResourceAllocationFailed, width, height, n.MaxPixels)
	}
	r := image.Rect(0, 0, width, height)
	switch model {
	case color.RGBAModel:
		return image.NewRGBA(r), nil
	case color.RGBA64Model:
		return image.NewRGBA64(r), nil
	case color.NRGBA64Model:
		return image.NewNRGBA64(r), nil
	}
	return image.NewNRGBA(r), nil
}

// Release is a no-op; the garbage collector reclaims the buffer once the
// caller drops its reference.
func (n NativeRaster) Release(img draw.Image) {}

// Copy performs a draw.Src copy after checking both rectangles. Images of the
// same layout are copied byte for byte, so non-premultiplied pixels keep their
// exact channels.
func (n NativeRaster) Copy(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle) error {
	r, err := targetRect(dst, src, dp, sr)
	if err != nil {
		return err
	}
	if copyPix(dst, src, r, sr.Min) {
		return nil
	}
	draw.Draw(dst, r, src, sr.Min, draw.Src)
	return nil
}

// copyPix copies rows between two images sharing a pixel layout. It reports
// false when the layouts differ.
func copyPix(dst draw.Image, src image.Image, r image.Rectangle, sp image.Point) bool {
	var (
		dpix, spix       []uint8
		dstride, sstride int
		di, si, bpp      int
	)
	switch d := dst.(type) {
	case *image.NRGBA:
		s, ok := src.(*image.NRGBA)
		if !ok {
			return false
		}
		dpix, spix, dstride, sstride = d.Pix, s.Pix, d.Stride, s.Stride
		di, si, bpp = d.PixOffset(r.Min.X, r.Min.Y), s.PixOffset(sp.X, sp.Y), 4
	case *image.NRGBA64:
		s, ok := src.(*image.NRGBA64)
		if !ok {
			return false
		}
		dpix, spix, dstride, sstride = d.Pix, s.Pix, d.Stride, s.Stride
		di, si, bpp = d.PixOffset(r.Min.X, r.Min.Y), s.PixOffset(sp.X, sp.Y), 8
	case *image.RGBA64:
		s, ok := src.(*image.RGBA64)
		if !ok {
			return false
		}
		dpix, spix, dstride, sstride = d.Pix, s.Pix, d.Stride, s.Stride
		di, si, bpp = d.PixOffset(r.Min.X, r.Min.Y), s.PixOffset(sp.X, sp.Y), 8
	default:
		return false
	}
	n := r.Dx() * bpp
	for y := 0; y < r.Dy(); y++ {
		copy(dpix[di:di+n], spix[si:si+n])
		di += dstride
		si += sstride
	}
	return true
}

// Merge composites src over dst with the source alpha scaled by pct. With pct
// 0 the destination is left as is; with pct 100 it is a plain alpha-aware
// "over".
//
// An *image.NRGBA destination is blended on its straight channels. Any other
// destination goes through draw.DrawMask with a uniform mask carrying the
// percentage.
func (n NativeRaster) Merge(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle, pct int) error {
	r, err := targetRect(dst, src, dp, sr)
	if err != nil {
		return err
	}
	pct = clamp(pct, 0, 100)
	if d, ok := dst.(*image.NRGBA); ok {
		mergeNRGBA(d, r, src, sr.Min, pct)
		return nil
	}
	mask := image.NewUniform(color.Alpha16{A: uint16(pct * 0xffff / 100)})
	draw.DrawMask(dst, r, src, sr.Min, mask, image.Point{}, draw.Over)
	return nil
}

// mergeNRGBA applies "over" in 16-bit straight alpha. Pixels where the scaled
// source alpha is zero are not written.
func mergeNRGBA(dst *image.NRGBA, r image.Rectangle, src image.Image, sp image.Point, pct int) {
	to8 := func(v uint64) uint8 { return uint8((v*0xff + 0x7fff) / 0xffff) }

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := straight16(src, sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)
			sa := uint64(s.A) * uint64(pct) / 100
			if sa == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			d := dst.Pix[i : i+4 : i+4]
			dw := uint64(d[3]) * 0x101 * (0xffff - sa) / 0xffff
			oa := sa + dw
			blend := func(sc uint16, dc uint8) uint8 {
				return to8((uint64(sc)*sa + uint64(dc)*0x101*dw) / oa)
			}
			d[0] = blend(s.R, d[0])
			d[1] = blend(s.G, d[1])
			d[2] = blend(s.B, d[2])
			d[3] = to8(oa)
		}
	}
}

// straight16 returns the non-premultiplied color of img at (x, y).
func straight16(img image.Image, x, y int) color.NRGBA64 {
	if n, ok := img.(*image.NRGBA); ok {
		c := n.NRGBAAt(x, y)
		return color.NRGBA64{
			R: uint16(c.R) * 0x101,
			G: uint16(c.G) * 0x101,
			B: uint16(c.B) * 0x101,
			A: uint16(c.A) * 0x101,
		}
	}
	return color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
}

// targetRect returns the destination rectangle for a copy of sr to dp,
// failing when either side falls outside its image.
func targetRect(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle) (image.Rectangle, error) {
	if sr.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: empty source rectangle %v", ErrCopyFailed, sr)
	}
	if !sr.In(src.Bounds()) {
		return image.Rectangle{}, fmt.Errorf("%w: source rectangle %v outside %v", ErrCopyFailed, sr, src.Bounds())
	}
	r := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}
	if !r.In(dst.Bounds()) {
		return image.Rectangle{}, fmt.Errorf("%w: destination rectangle %v outside %v", ErrCopyFailed, r, dst.Bounds())
	}
	return r, nil
}
