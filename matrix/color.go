package matrix

import "image/color"

func qadd(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xff {
		return 0xff
	}
	return uint8(s)
}

// AddSat adds two colors channel by channel, clamping at full brightness.
func AddSat(a, b color.RGBA) color.RGBA {
	return color.RGBA{R: qadd(a.R, b.R), G: qadd(a.G, b.G), B: qadd(a.B, b.B), A: 0xff}
}

// Div divides every channel by n.
func Div(c color.RGBA, n uint8) color.RGBA {
	if n == 0 {
		return c
	}
	return color.RGBA{R: c.R / n, G: c.G / n, B: c.B / n, A: 0xff}
}

func scale8(v, s uint8) uint8 {
	return uint8((uint16(v) * (uint16(s) + 1)) >> 8)
}

// Scale dims c to brightness/255. Full brightness leaves c unchanged.
func Scale(c color.RGBA, brightness uint8) color.RGBA {
	if brightness == 0xff {
		return c
	}
	return color.RGBA{R: scale8(c.R, brightness), G: scale8(c.G, brightness), B: scale8(c.B, brightness), A: 0xff}
}

// Gray returns an opaque gray level.
func Gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Lit reports whether any channel is on.
func Lit(c color.RGBA) bool {
	return c.R != 0 || c.G != 0 || c.B != 0
}
