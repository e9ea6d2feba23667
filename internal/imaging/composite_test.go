package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// failingRaster wraps NativeRaster and fails selected steps.
type failingRaster struct {
	NativeRaster
	failAlloc  bool
	failCopyAt int // 1-based index of the Copy call that fails; 0 never
	failMerge  bool

	copies    int
	allocated int
	released  int
}

func (f *failingRaster) NewTrueColor(w, h int, model color.Model) (draw.Image, error) {
	if f.failAlloc {
		return nil, errors.New("out of memory")
	}
	f.allocated++
	return f.NativeRaster.NewTrueColor(w, h, model)
}

func (f *failingRaster) Release(img draw.Image) {
	f.released++
}

func (f *failingRaster) Copy(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle) error {
	f.copies++
	if f.copies == f.failCopyAt {
		return errors.New("copy refused")
	}
	return f.NativeRaster.Copy(dst, src, dp, sr)
}

func (f *failingRaster) Merge(dst draw.Image, src image.Image, dp image.Point, sr image.Rectangle, pct int) error {
	if f.failMerge {
		return errors.New("merge refused")
	}
	return f.NativeRaster.Merge(dst, src, dp, sr, pct)
}

func newTestToolkit(r Raster) *Toolkit {
	return NewToolkit(r, Capabilities{}, nil, "")
}

// gradientRGBA creates an image whose pixels all differ, with partial alpha.
func gradientRGBA(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := uint8(55 + (x*7+y*13)%200)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(int(a) * x / width),
				G: uint8(int(a) * y / height),
				B: a / 2,
				A: a,
			})
		}
	}
	return img
}

func channelsClose(got, want color.RGBA, tol int) bool {
	d := func(a, b uint8) bool {
		diff := int(a) - int(b)
		return diff >= -tol && diff <= tol
	}
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

func TestCopyMergeAlpha_FullOpacityIsDirectCopy(t *testing.T) {
	tests := []struct {
		name   string
		dp, sp image.Point
		w, h   int
	}{
		{"whole image", image.Pt(0, 0), image.Pt(0, 0), 40, 20},
		{"offset destination", image.Pt(10, 5), image.Pt(0, 0), 20, 10},
		{"offset source", image.Pt(0, 0), image.Pt(15, 7), 25, 13},
		{"single pixel", image.Pt(39, 19), image.Pt(3, 4), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := solidRGBA(40, 20, color.RGBA{255, 0, 0, 255})
			src := gradientRGBA(40, 20)

			if err := CopyMergeAlpha(dst, src, tt.dp, tt.sp, tt.w, tt.h, 100); err != nil {
				t.Fatalf("CopyMergeAlpha failed: %v", err)
			}

			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					got := dst.RGBAAt(tt.dp.X+x, tt.dp.Y+y)
					want := src.RGBAAt(tt.sp.X+x, tt.sp.Y+y)
					if got != want {
						t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}

			// Outside the region the destination is untouched.
			if tt.dp.X > 0 {
				if got := dst.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
					t.Errorf("pixel outside region changed to %v", got)
				}
			}
		})
	}
}

func TestCopyMergeAlpha_SelfCopyIsNoOp(t *testing.T) {
	img := gradientRGBA(30, 30)
	before := append([]uint8(nil), img.Pix...)

	if err := CopyMergeAlpha(img, img, image.Pt(5, 5), image.Pt(5, 5), 20, 20, 100); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if !bytes.Equal(before, img.Pix) {
		t.Error("compositing a region onto itself at 100% changed the image")
	}
}

// gradientNRGBA creates a non-premultiplied image with low and zero alpha
// pixels whose color channels still carry information.
func gradientNRGBA(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(200 + x%56),
				G: uint8(100 + y*5),
				B: uint8(x * 6),
				A: uint8((x*3 + y*11) % 70),
			})
		}
	}
	return img
}

func TestCopyMergeAlpha_ZeroOpacityKeepsDestination(t *testing.T) {
	tests := []struct {
		name string
		dst  draw.Image
		pix  func(draw.Image) []uint8
	}{
		{"premultiplied", gradientRGBA(40, 20), func(img draw.Image) []uint8 { return img.(*image.RGBA).Pix }},
		{"straight alpha", gradientNRGBA(40, 20), func(img draw.Image) []uint8 { return img.(*image.NRGBA).Pix }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]uint8(nil), tt.pix(tt.dst)...)
			sources := []image.Image{
				solidRGBA(40, 20, color.RGBA{0, 255, 0, 255}),
				solidRGBA(40, 20, color.RGBA{0, 0, 0, 0}),
			}
			for _, src := range sources {
				if err := CopyMergeAlpha(tt.dst, src, image.Pt(0, 0), image.Pt(0, 0), 40, 20, 0); err != nil {
					t.Fatalf("CopyMergeAlpha failed: %v", err)
				}
				if !bytes.Equal(before, tt.pix(tt.dst)) {
					t.Fatal("compositing at 0% changed the destination")
				}
			}
		})
	}
}

func TestCopyMergeAlpha_StraightAlphaDestination(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	dst.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 3})
	dst.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 20})
	dst.SetNRGBA(2, 0, color.NRGBA{37, 211, 90, 64})
	dst.SetNRGBA(3, 0, color.NRGBA{255, 0, 0, 0})
	before := append([]uint8(nil), dst.Pix...)

	// A transparent source leaves every channel alone at any percentage.
	transparent := solidRGBA(4, 1, color.RGBA{0, 0, 0, 0})
	if err := CopyMergeAlpha(dst, transparent, image.Pt(0, 0), image.Pt(0, 0), 4, 1, 60); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if !bytes.Equal(before, dst.Pix) {
		t.Errorf("transparent source changed the destination: got %v, want %v", dst.Pix, before)
	}

	// Opaque blue at 50% over opaque red.
	red := solidNRGBA(2, 2, color.NRGBA{255, 0, 0, 255})
	blue := solidNRGBA(2, 2, color.NRGBA{0, 0, 255, 255})
	if err := CopyMergeAlpha(red, blue, image.Pt(0, 0), image.Pt(0, 0), 2, 2, 50); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if got := red.NRGBAAt(1, 1); !channelsClose(color.RGBA(got), color.RGBA{128, 0, 128, 255}, 1) {
		t.Errorf("half blue over red: got %v", got)
	}

	// Half-opaque green at 100% over a fully transparent pixel keeps the
	// source color exactly.
	empty := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	green := solidNRGBA(2, 2, color.NRGBA{0, 255, 0, 128})
	if err := CopyMergeAlpha(empty, green, image.Pt(0, 0), image.Pt(0, 0), 2, 2, 99); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if got := empty.NRGBAAt(0, 0); got.R != 0 || got.G != 255 || got.B != 0 || got.A < 125 || got.A > 128 {
		t.Errorf("green over transparent: got %v", got)
	}
}

func TestCopyMergeAlpha_HalfRedGreen(t *testing.T) {
	dst := solidRGBA(40, 20, color.RGBA{255, 0, 0, 255})
	src := solidRGBA(40, 20, color.RGBA{0, 255, 0, 255})

	if err := CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 40, 20, 50); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}

	want := color.RGBA{128, 128, 0, 255}
	for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 19}, {39, 19}, {20, 10}} {
		got := dst.RGBAAt(p.X, p.Y)
		if !channelsClose(got, want, 2) {
			t.Errorf("pixel %v: got %v, want ≈%v", p, got, want)
		}
		if got.A != 255 {
			t.Errorf("pixel %v: alpha changed to %d", p, got.A)
		}
	}
}

func TestCopyMergeAlpha_PreservesAlpha(t *testing.T) {
	// Semi-transparent source over a fully transparent destination: the
	// result keeps the source color and carries pct of its alpha.
	dst := solidRGBA(10, 10, color.RGBA{0, 0, 0, 0})
	src := solidRGBA(10, 10, color.NRGBA{0, 0, 255, 128})

	if err := CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 10, 10, 50); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}

	got := color.NRGBAModel.Convert(dst.At(5, 5)).(color.NRGBA)
	if got.B < 250 || got.R != 0 || got.G != 0 {
		t.Errorf("color: got %v, want blue", got)
	}
	if got.A < 62 || got.A > 66 {
		t.Errorf("alpha: got %d, want ≈64", got.A)
	}
}

func TestCopyMergeAlpha_Validation(t *testing.T) {
	dst := solidRGBA(40, 20, color.RGBA{255, 0, 0, 255})
	src := solidRGBA(20, 20, color.RGBA{0, 255, 0, 255})

	tests := []struct {
		name   string
		dp, sp image.Point
		w, h   int
		pct    int
	}{
		{"negative pct", image.Pt(0, 0), image.Pt(0, 0), 10, 10, -1},
		{"pct over 100", image.Pt(0, 0), image.Pt(0, 0), 10, 10, 101},
		{"zero width", image.Pt(0, 0), image.Pt(0, 0), 0, 10, 50},
		{"negative height", image.Pt(0, 0), image.Pt(0, 0), 10, -1, 50},
		{"source too wide", image.Pt(0, 0), image.Pt(0, 0), 21, 10, 50},
		{"source offset out", image.Pt(0, 0), image.Pt(15, 0), 10, 10, 50},
		{"destination overflow", image.Pt(35, 0), image.Pt(0, 0), 10, 10, 50},
		{"negative destination", image.Pt(-1, 0), image.Pt(0, 0), 10, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]uint8(nil), dst.Pix...)
			err := CopyMergeAlpha(dst, src, tt.dp, tt.sp, tt.w, tt.h, tt.pct)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
			if !bytes.Equal(before, dst.Pix) {
				t.Error("destination changed on invalid arguments")
			}
		})
	}
}

func TestCopyMergeAlpha_AllocationFailure(t *testing.T) {
	dst := gradientRGBA(40, 20)
	before := append([]uint8(nil), dst.Pix...)
	src := solidRGBA(40, 20, color.RGBA{0, 255, 0, 255})

	tk := newTestToolkit(&failingRaster{failAlloc: true})
	err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 40, 20, 50)
	if !errors.Is(err, ErrResourceAllocationFailed) {
		t.Fatalf("got %v, want ErrResourceAllocationFailed", err)
	}
	if KindOf(err) != KindResourceAllocationFailed {
		t.Errorf("KindOf: got %v", KindOf(err))
	}
	if !bytes.Equal(before, dst.Pix) {
		t.Error("destination changed after allocation failure")
	}
}

func TestCopyMergeAlpha_PixelBudget(t *testing.T) {
	dst := gradientRGBA(40, 20)
	before := append([]uint8(nil), dst.Pix...)
	src := solidRGBA(40, 20, color.RGBA{0, 255, 0, 255})

	tk := newTestToolkit(NativeRaster{MaxPixels: 100})
	err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 40, 20, 50)
	if !errors.Is(err, ErrResourceAllocationFailed) {
		t.Fatalf("got %v, want ErrResourceAllocationFailed", err)
	}
	if !bytes.Equal(before, dst.Pix) {
		t.Error("destination changed after allocation failure")
	}

	// A region inside the budget still goes through.
	if err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 10, 10, 50); err != nil {
		t.Errorf("small region failed: %v", err)
	}
}

func TestCopyMergeAlpha_StepFailures(t *testing.T) {
	tests := []struct {
		name           string
		raster         *failingRaster
		wantUnmodified bool
	}{
		{"destination into scratch", &failingRaster{failCopyAt: 1}, true},
		{"source merge", &failingRaster{failMerge: true}, true},
		{"copy back", &failingRaster{failCopyAt: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := gradientRGBA(40, 20)
			before := append([]uint8(nil), dst.Pix...)
			src := solidRGBA(40, 20, color.RGBA{0, 255, 0, 255})

			tk := newTestToolkit(tt.raster)
			err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 40, 20, 50)
			if !errors.Is(err, ErrCopyFailed) {
				t.Fatalf("got %v, want ErrCopyFailed", err)
			}
			if tt.wantUnmodified && !bytes.Equal(before, dst.Pix) {
				t.Error("destination changed after a pre-copy-back failure")
			}
			if tt.raster.allocated != tt.raster.released {
				t.Errorf("scratch buffers: %d allocated, %d released", tt.raster.allocated, tt.raster.released)
			}
		})
	}
}

func TestCopyMergeAlpha_ReleasesScratchOnSuccess(t *testing.T) {
	r := &failingRaster{}
	tk := newTestToolkit(r)
	dst := solidRGBA(8, 8, color.RGBA{255, 0, 0, 255})
	src := solidRGBA(8, 8, color.RGBA{0, 0, 255, 255})

	if err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 8, 8, 30); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if r.allocated != 1 || r.released != 1 {
		t.Errorf("scratch buffers: %d allocated, %d released, want 1/1", r.allocated, r.released)
	}

	if err := tk.CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 8, 8, 100); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	if r.allocated != 1 {
		t.Error("100% composite should not allocate a scratch buffer")
	}
}

func TestCopyMergeAlpha_NRGBADestination(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{255, 0, 0, 255}), image.Point{}, draw.Src)
	src := solidRGBA(10, 10, color.RGBA{0, 0, 255, 255})

	if err := CopyMergeAlpha(dst, src, image.Pt(2, 2), image.Pt(0, 0), 5, 5, 50); err != nil {
		t.Fatalf("CopyMergeAlpha failed: %v", err)
	}
	got := dst.NRGBAAt(4, 4)
	if got.A != 255 || got.R < 125 || got.R > 130 || got.B < 125 || got.B > 130 {
		t.Errorf("blended pixel: got %v, want ≈(128,0,128,255)", got)
	}
	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel outside region changed to %v", got)
	}
}
