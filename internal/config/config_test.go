package config

import (
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/image-effects-mcp/internal/imaging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvLogLevel, EnvFont, EnvMaxScratchPixels, EnvDisableText} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Debug() {
		t.Error("debug should be off by default")
	}
	if cfg.FontPath != "" || cfg.MaxScratchPixels != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Capabilities.Text {
		t.Errorf("text should be available with the embedded font: %s", cfg.Capabilities.Reason)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, " DEBUG ")
	t.Setenv(EnvMaxScratchPixels, "1000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug() {
		t.Error("debug should be on")
	}
	if cfg.MaxScratchPixels != 1000 {
		t.Errorf("MaxScratchPixels: got %d, want 1000", cfg.MaxScratchPixels)
	}
}

func TestLoad_DisableText(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDisableText, "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Capabilities.Text {
		t.Error("text should be disabled")
	}

	_, err = cfg.Toolkit().TextBBox(12, 0, "", "x")
	if !errors.Is(err, imaging.ErrCapabilityUnavailable) {
		t.Errorf("TextBBox: got %v, want ErrCapabilityUnavailable", err)
	}
}

func TestLoad_MissingFontDisablesText(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFont, "/nonexistent/font.ttf")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load should not fail on a missing font: %v", err)
	}
	if cfg.Capabilities.Text {
		t.Error("text should be unavailable without a usable font")
	}
	if cfg.Capabilities.Reason == "" {
		t.Error("missing capability should carry a reason")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric pixels", EnvMaxScratchPixels, "lots"},
		{"negative pixels", EnvMaxScratchPixels, "-5"},
		{"bad boolean", EnvDisableText, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load should fail for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_ToolkitPixelBudget(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxScratchPixels, "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	err = cfg.Toolkit().CopyMergeAlpha(dst, src, image.Pt(0, 0), image.Pt(0, 0), 8, 8, 50)
	if !errors.Is(err, imaging.ErrResourceAllocationFailed) {
		t.Errorf("got %v, want ErrResourceAllocationFailed", err)
	}
}
