package imaging

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache provides thread-safe caching of parsed TrueType fonts keyed by
// file path. The empty path maps to the embedded Go Regular font.
type FontCache struct {
	mu    sync.RWMutex
	fonts map[string]*truetype.Font
}

// NewFontCache creates an empty font cache.
func NewFontCache() *FontCache {
	return &FontCache{
		fonts: make(map[string]*truetype.Font),
	}
}

// Load returns the parsed font at path, reading and parsing it on first use.
func (c *FontCache) Load(path string) (*truetype.Font, error) {
	c.mu.RLock()
	if f, ok := c.fonts[path]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		data = b
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}

	c.mu.Lock()
	c.fonts[path] = f
	c.mu.Unlock()

	return f, nil
}
