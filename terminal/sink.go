// Package terminal renders the LED panel in a terminal and reads controller
// keys from it.
package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ledtris/matrix"
)

// Screen is the part of tcell.Screen the sink draws with.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// CellWidth is the number of terminal columns per LED, which keeps the
// panel roughly square.
const CellWidth = 2

// Sink draws each LED as a pair of block characters.
type Sink struct {
	screen  Screen
	layout  matrix.Layout
	originX int
	originY int
}

// NewSink draws a panel of the given layout with its top-left corner at
// (originX, originY) on screen.
func NewSink(screen Screen, layout matrix.Layout, originX, originY int) *Sink {
	return &Sink{screen: screen, layout: layout, originX: originX, originY: originY}
}

// Style returns the terminal style used for an LED color.
func Style(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (s *Sink) Set(x, y int, c color.RGBA) {
	if !s.layout.Contains(x, y) {
		return
	}
	r, style := '█', Style(c)
	if !matrix.Lit(c) {
		r, style = '·', tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	}
	for i := 0; i < CellWidth; i++ {
		s.screen.SetContent(s.originX+x*CellWidth+i, s.originY+y, r, nil, style)
	}
}

func (s *Sink) Commit() error {
	s.screen.Show()
	return nil
}
