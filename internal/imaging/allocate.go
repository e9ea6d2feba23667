package imaging

import (
	"image"
	"image/color"
)

// AllocateColor decodes a '#RRGGBBAA' string and resolves it to a color that
// can be drawn on img, honoring the alpha channel.
//
// For paletted images the color is looked up in the palette and appended when
// missing and the palette still has room; a full palette yields its nearest
// entry. For every other image type the color is converted through the image's
// color model.
func AllocateColor(img image.Image, hex string) (color.Color, error) {
	c, err := DecodeRGBA(hex)
	if err != nil {
		return nil, err
	}
	return allocate(img, c.NRGBA()), nil
}

func allocate(img image.Image, c color.NRGBA) color.Color {
	p, ok := img.(*image.Paletted)
	if !ok {
		return img.ColorModel().Convert(c)
	}

	r, g, b, a := c.RGBA()
	for _, entry := range p.Palette {
		er, eg, eb, ea := entry.RGBA()
		if er == r && eg == g && eb == b && ea == a {
			return entry
		}
	}
	if len(p.Palette) < 256 {
		// The palette may share its backing array with other images.
		palette := make(color.Palette, len(p.Palette), len(p.Palette)+1)
		copy(palette, p.Palette)
		p.Palette = append(palette, c)
		return c
	}
	return p.Palette.Convert(c)
}
