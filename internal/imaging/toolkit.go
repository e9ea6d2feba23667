package imaging

import "fmt"

// Capabilities records which optional primitives are usable.
//
// It is produced once by ProbeCapabilities, typically at startup, and then
// handed to NewToolkit; operations consult the cached value instead of probing
// on every call.
type Capabilities struct {
	// Text is true when TrueType text can be drawn and measured.
	Text bool `json:"text"`

	// Reason explains why a capability is missing. Empty when all are present.
	Reason string `json:"reason,omitempty"`
}

// ProbeCapabilities detects the optional primitives of this build.
//
// Text rendering needs the TrueType path compiled in (it is left out by the
// notext build tag) and a default font that parses. An empty fontPath selects
// the embedded Go Regular font.
func ProbeCapabilities(fonts *FontCache, fontPath string) Capabilities {
	if !textCompiled {
		return Capabilities{Reason: "text rendering is not compiled into this build"}
	}
	if _, err := fonts.Load(fontPath); err != nil {
		return Capabilities{Reason: fmt.Sprintf("default font unusable: %v", err)}
	}
	return Capabilities{Text: true}
}

// Toolkit bundles the raster primitives, cached capabilities and fonts used
// by the image operations.
//
// A Toolkit never holds an image: every operation receives the images it
// works on as parameters, and nothing is retained after it returns.
// A Toolkit is safe for concurrent use as long as callers do not share a
// destination image between goroutines.
type Toolkit struct {
	raster      Raster
	caps        Capabilities
	fonts       *FontCache
	defaultFont string
}

// NewToolkit creates a toolkit. A nil raster selects NativeRaster{} and a nil
// font cache a fresh one. defaultFont is used when an operation is called with
// an empty font path; empty means the embedded Go Regular font.
func NewToolkit(raster Raster, caps Capabilities, fonts *FontCache, defaultFont string) *Toolkit {
	if raster == nil {
		raster = NativeRaster{}
	}
	if fonts == nil {
		fonts = NewFontCache()
	}
	return &Toolkit{
		raster:      raster,
		caps:        caps,
		fonts:       fonts,
		defaultFont: defaultFont,
	}
}

// DefaultToolkit returns a toolkit on NativeRaster with freshly probed
// capabilities and the embedded default font.
func DefaultToolkit() *Toolkit {
	fonts := NewFontCache()
	return NewToolkit(NativeRaster{}, ProbeCapabilities(fonts, ""), fonts, "")
}

// Capabilities returns the capabilities the toolkit was created with.
func (t *Toolkit) Capabilities() Capabilities {
	return t.caps
}

func (t *Toolkit) fontPath(path string) string {
	if path == "" {
		return t.defaultFont
	}
	return path
}
