// Package imaging provides the raster operations behind the image effects:
// alpha-preserving region compositing, '#RRGGBBAA' color decoding and
// allocation, TrueType text drawing and measurement, polygon filling from
// rectangle corners, watermarking, text overlays and contrast adjustment.
//
// All operations work with standard Go image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Toolkit
//
// Operations that need raster primitives, fonts or optional capabilities are
// methods on Toolkit. A Toolkit carries no image state: destination and source
// images are passed explicitly to every call and are never retained.
//
//	fonts := imaging.NewFontCache()
//	tk := imaging.NewToolkit(imaging.NativeRaster{}, imaging.ProbeCapabilities(fonts, ""), fonts, "")
//	err := tk.CopyMergeAlpha(dst, src, image.Pt(10, 10), image.Pt(0, 0), 40, 20, 50)
//
// # Alpha Scales
//
// Colors enter as '#RRGGBBAA', where AA runs from 00 (transparent) to FF
// (opaque). Internally the alpha is also kept on the native 0-127 scale, where
// 0 is opaque and 127 transparent:
//
//	alpha = 127 - floor(opacity/100 * 127)
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can tell them apart
// with errors.Is or KindOf:
//   - ErrInvalidColorFormat: malformed color string
//   - ErrResourceAllocationFailed: a scratch buffer could not be created
//   - ErrCopyFailed: a pixel copy step failed
//   - ErrCapabilityUnavailable: text rendering is unavailable
//   - ErrInvalidArgument: region, percentage or corner out of range
//
// No operation retries internally.
//
// # Thread Safety
//
// ImageCache and FontCache are safe for concurrent use. Operations on the
// same destination image must be serialized by the caller.
package imaging
