// Package matrix models the addressable LED panel: a serpentine-wired strip
// folded into rows, the frame buffer that feeds it and the sink contract the
// renderer writes through.
package matrix

// Panel dimensions of the 19x19 build.
const (
	Width  = 19
	Height = 19
)

// Layout maps 2D coordinates onto the strip. Even rows run left to right,
// odd rows run right to left.
type Layout struct {
	Width  int
	Height int
}

// Serpentine returns the layout of a w x h panel.
func Serpentine(w, h int) Layout {
	return Layout{Width: w, Height: h}
}

// Default is the layout of the 19x19 panel.
func Default() Layout {
	return Serpentine(Width, Height)
}

// Len returns the number of LEDs on the strip.
func (l Layout) Len() int {
	return l.Width * l.Height
}

// Contains reports whether (x, y) lies on the panel.
func (l Layout) Contains(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Index returns the strip position of (x, y). ok is false off the panel.
func (l Layout) Index(x, y int) (i int, ok bool) {
	if !l.Contains(x, y) {
		return 0, false
	}
	if y%2 == 0 {
		return y*l.Width + x, true
	}
	return y*l.Width + (l.Width - 1 - x), true
}

// XY is the inverse of Index.
func (l Layout) XY(i int) (x, y int, ok bool) {
	if i < 0 || i >= l.Len() {
		return 0, 0, false
	}
	y = i / l.Width
	x = i % l.Width
	if y%2 != 0 {
		x = l.Width - 1 - x
	}
	return x, y, true
}
