// Package config reads the server configuration from the environment.
//
// All settings are read once by Load at startup. Load also probes the optional
// imaging capabilities, so the rest of the program consults the cached result
// instead of probing on every call.
//
// Environment variables:
//
//	IMAGE_EFFECTS_LOG_LEVEL           "debug" enables debug logging
//	IMAGE_EFFECTS_FONT                default TrueType font file (empty: embedded Go Regular)
//	IMAGE_EFFECTS_MAX_SCRATCH_PIXELS  pixel budget for scratch buffers (0: unlimited)
//	IMAGE_EFFECTS_DISABLE_TEXT        "1" or "true" turns text rendering off
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-effects-mcp/internal/imaging"
)

// Environment variable names.
const (
	EnvLogLevel         = "IMAGE_EFFECTS_LOG_LEVEL"
	EnvFont             = "IMAGE_EFFECTS_FONT"
	EnvMaxScratchPixels = "IMAGE_EFFECTS_MAX_SCRATCH_PIXELS"
	EnvDisableText      = "IMAGE_EFFECTS_DISABLE_TEXT"
)

// Config holds the settings and probed capabilities of one server process.
type Config struct {
	LogLevel         string
	FontPath         string
	MaxScratchPixels int

	// Capabilities is the cached probe result, after any overrides.
	Capabilities imaging.Capabilities

	fonts *imaging.FontCache
}

// Load reads the environment and probes the imaging capabilities.
//
// A malformed numeric or boolean value is an error. A default font that cannot
// be loaded is not: text rendering is then reported as unavailable.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
		FontPath: strings.TrimSpace(os.Getenv(EnvFont)),
		fonts:    imaging.NewFontCache(),
	}

	if v := strings.TrimSpace(os.Getenv(EnvMaxScratchPixels)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: invalid pixel count %q", EnvMaxScratchPixels, v)
		}
		cfg.MaxScratchPixels = n
	}

	disableText := false
	if v := strings.TrimSpace(os.Getenv(EnvDisableText)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", EnvDisableText, v)
		}
		disableText = b
	}

	if disableText {
		cfg.Capabilities = imaging.Capabilities{Reason: "text rendering disabled by " + EnvDisableText}
	} else {
		cfg.Capabilities = imaging.ProbeCapabilities(cfg.fonts, cfg.FontPath)
	}

	return cfg, nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Toolkit builds an imaging toolkit from the configuration. Toolkits built
// from the same Config share its font cache.
func (c *Config) Toolkit() *imaging.Toolkit {
	if c.fonts == nil {
		c.fonts = imaging.NewFontCache()
	}
	return imaging.NewToolkit(
		imaging.NativeRaster{MaxPixels: c.MaxScratchPixels},
		c.Capabilities,
		c.fonts,
		c.FontPath,
	)
}
