package vt

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

const paletteSize = 256

// ansiColors is the default 16-color palette.
var ansiColors = [16]string{
	"#000000", // black
	"#CC0000", // red
	"#4E9A06", // green
	"#C4A000", // yellow
	"#3465A4", // blue
	"#75507B", // magenta
	"#06989A", // cyan
	"#D3D7CF", // white
	"#555753", // bright black
	"#EF2929", // bright red
	"#8AE234", // bright green
	"#FCE94F", // bright yellow
	"#729FCF", // bright blue
	"#AD7FA8", // bright magenta
	"#34E2E2", // bright cyan
	"#EEEEEC", // bright white
}

// seedPalette fills the 256 entries: the 16 ANSI colors, the 6x6x6
// color cube, and 24 grayscale steps.
func seedPalette(p *[paletteSize]string) {
	copy(p[:16], ansiColors[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = fmt.Sprintf("#%02X%02X%02X", cubeChannel(r), cubeChannel(g), cubeChannel(b))
				i++
			}
		}
	}
	for step := 0; step < 24; step++ {
		v := 8 + step*10
		p[i] = fmt.Sprintf("#%02X%02X%02X", v, v, v)
		i++
	}
}

func cubeChannel(v int) int {
	if v == 0 {
		return 0
	}
	return v*40 + 55
}

// ColorHex resolves c to a #RRGGBB string. Tagged RGB values decode
// directly; palette indexes look up the table, defaulting to white
// when out of range.
func (s *Screen) ColorHex(c Color) string {
	if c&colorRGBFlag != 0 {
		return fmt.Sprintf("#%02X%02X%02X", (c>>16)&0xFF, (c>>8)&0xFF, c&0xFF)
	}
	if int(c) >= paletteSize {
		return "#FFFFFF"
	}
	return s.palette[c]
}

// PaletteColor returns palette entry index, or empty when out of range.
func (s *Screen) PaletteColor(index int) string {
	if index < 0 || index >= paletteSize {
		return ""
	}
	return s.palette[index]
}

// SetPaletteColor overwrites one palette entry. The color accepts the
// X11 forms XParseColor understands (#RRGGBB, rgb:RR/GG/BB, named) and
// is stored normalized to #RRGGBB. Invalid indexes or colors are
// ignored.
func (s *Screen) SetPaletteColor(index int, color string) {
	if index < 0 || index >= paletteSize {
		return
	}
	c := ansi.XParseColor(color)
	if c == nil {
		return
	}
	r, g, b, _ := c.RGBA()
	s.palette[index] = fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
