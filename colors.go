package kterm

import "image/color"

// Palette is the 256-entry color table every session attached to a Terminal
// shares (spec §3 "a fixed small bound of concurrent sessions sharing a
// palette"). Indices 0-15 are the ANSI/bright colors, 16-231 the 6x6x6 color
// cube, 232-255 grayscale.
type Palette [256]color.RGBA

// DefaultPalette is the standard xterm-style 256-color palette.
var DefaultPalette = buildDefaultPalette()

// CGAPalette is the 16-color EGA/CGA palette ANSI.SYS conformance forces;
// entries 16-255 fall back to the default cube/grayscale since ANSI.SYS never
// addresses them.
var CGAPalette = buildCGAPalette()

func buildDefaultPalette() Palette {
	var p Palette
	copy(p[:16], []color.RGBA{
		{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
		{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
		{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
		{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
	})
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = color.RGBA{gray, gray, gray, 255}
	}
	return p
}

func buildCGAPalette() Palette {
	p := buildDefaultPalette()
	copy(p[:16], []color.RGBA{
		{0, 0, 0, 255}, {170, 0, 0, 255}, {0, 170, 0, 255}, {170, 85, 0, 255},
		{0, 0, 170, 255}, {170, 0, 170, 255}, {0, 170, 170, 255}, {170, 170, 170, 255},
		{85, 85, 85, 255}, {255, 85, 85, 255}, {85, 255, 85, 255}, {255, 255, 85, 255},
		{85, 85, 255, 255}, {255, 85, 255, 255}, {85, 255, 255, 255}, {255, 255, 255, 255},
	})
	return p
}

// DefaultForeground is the default text color.
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// Resolve converts a ColorRef to concrete RGBA using pal, falling back to
// def (DefaultForeground or DefaultBackground) for ColorDefault.
func (ref ColorRef) Resolve(pal *Palette, def color.RGBA) color.RGBA {
	switch ref.Kind {
	case ColorPalette:
		return pal[ref.Index]
	case ColorRGB:
		return color.RGBA{R: ref.R, G: ref.G, B: ref.B, A: 255}
	default:
		return def
	}
}
