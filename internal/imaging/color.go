package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxNativeAlpha is the fully transparent value on the native alpha scale.
// The native scale runs the opposite way from hex opacity: 0 is fully opaque.
const MaxNativeAlpha = 127

// RGBA is a color decoded from a '#RRGGBBAA' string.
//
// Two alpha encodings are carried side by side:
//   - Opacity: percentage derived from the AA byte (0 = transparent, 100 = opaque)
//   - Alpha: native scale (0 = opaque, 127 = transparent)
type RGBA struct {
	R       uint8 `json:"r"`       // Red component (0-255)
	G       uint8 `json:"g"`       // Green component (0-255)
	B       uint8 `json:"b"`       // Blue component (0-255)
	Opacity int   `json:"opacity"` // Opacity percentage (0-100)
	Alpha   uint8 `json:"alpha"`   // Native alpha (0-127)
}

// DecodeRGBA parses a color in the form '#RRGGBBAA'.
//
// The leading '#RRGGBB' must be a well-formed hex color and the trailing pair
// a hex byte. The byte is turned into an opacity percentage, and the opacity
// into native alpha with:
//
//	alpha = 127 - floor(opacity/100 * 127)
//
// so opacity 100 maps to alpha 0 and opacity 0 maps to alpha 127.
//
// Returns a zero RGBA and an error wrapping ErrInvalidColorFormat when the
// string is malformed; a partially decoded color is never returned.
func DecodeRGBA(hex string) (RGBA, error) {
	if len(hex) != 9 {
		return RGBA{}, fmt.Errorf("%w: %q must have the form #RRGGBBAA", ErrInvalidColorFormat, hex)
	}
	if hex[0] != '#' {
		return RGBA{}, fmt.Errorf("%w: %q is missing the leading '#'", ErrInvalidColorFormat, hex)
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return RGBA{}, fmt.Errorf("%w: %q has a non-hex character at offset %d", ErrInvalidColorFormat, hex, i)
		}
	}

	c, err := colorful.Hex(hex[:7])
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}
	r, g, b := c.RGB255()

	aa, err := strconv.ParseUint(hex[7:], 16, 8)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}
	opacity := OpacityFromByte(uint8(aa))

	return RGBA{
		R:       r,
		G:       g,
		B:       b,
		Opacity: opacity,
		Alpha:   NativeAlpha(opacity),
	}, nil
}

// OpacityFromByte converts an 8-bit alpha byte (0x00-0xFF) into an opacity
// percentage, linearly and rounded to the nearest integer.
func OpacityFromByte(a uint8) int {
	return (int(a)*100 + 127) / 255
}

// NativeAlpha converts an opacity percentage into the native alpha scale.
// Opacity is clamped to [0,100]; the result is truncated, never rounded.
func NativeAlpha(opacity int) uint8 {
	opacity = clamp(opacity, 0, 100)
	return uint8(MaxNativeAlpha - opacity*MaxNativeAlpha/100)
}

// OpacityFromNative converts a native alpha value back into an opacity
// percentage, rounded to the nearest integer. It is the inverse of
// NativeAlpha within one unit.
func OpacityFromNative(alpha uint8) int {
	a := clamp(int(alpha), 0, MaxNativeAlpha)
	return ((MaxNativeAlpha-a)*100 + MaxNativeAlpha/2) / MaxNativeAlpha
}

// NRGBA returns the color as a non-premultiplied color.NRGBA whose alpha is
// derived from the native alpha value.
func (c RGBA) NRGBA() color.NRGBA {
	a := int(MaxNativeAlpha - clamp(int(c.Alpha), 0, MaxNativeAlpha))
	return color.NRGBA{
		R: c.R,
		G: c.G,
		B: c.B,
		A: uint8((a*255 + MaxNativeAlpha/2) / MaxNativeAlpha),
	}
}

// Hex re-encodes the color as '#RRGGBBAA' using the opacity percentage.
func (c RGBA) Hex() string {
	rgb := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	aa := (clamp(c.Opacity, 0, 100)*255 + 50) / 100
	return fmt.Sprintf("%s%02X", strings.ToUpper(rgb.Hex()), aa)
}

// ColorResult is the decoded form of a '#RRGGBBAA' string as reported to
// tool clients.
type ColorResult struct {
	Input string      `json:"input"` // The string that was decoded
	Hex   string      `json:"hex"`   // Canonical '#RRGGBBAA' re-encoding
	RGBA  RGBA        `json:"rgba"`  // Components with both alpha encodings
	NRGBA color.NRGBA `json:"nrgba"` // 8-bit non-premultiplied equivalent
}

// DescribeColor decodes hex and reports it in every supported form.
func DescribeColor(hex string) (*ColorResult, error) {
	c, err := DecodeRGBA(hex)
	if err != nil {
		return nil, err
	}
	return &ColorResult{
		Input: hex,
		Hex:   c.Hex(),
		RGBA:  c,
		NRGBA: c.NRGBA(),
	}, nil
}

func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
