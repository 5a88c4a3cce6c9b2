package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// StatusLine is an io.Writer that shows the most recent line written to it
// in one screen row.
type StatusLine struct {
	screen Screen
	x, y   int
	width  int
	style  tcell.Style
}

// NewStatusLine draws at (x, y), clearing width columns on every write.
func NewStatusLine(screen Screen, x, y, width int) *StatusLine {
	return &StatusLine{screen: screen, x: x, y: y, width: width, style: tcell.StyleDefault}
}

func (s *StatusLine) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}

	runes := []rune(text)
	for i := 0; i < s.width; i++ {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		s.screen.SetContent(s.x+i, s.y, r, nil, s.style)
	}
	s.screen.Show()
	return len(p), nil
}
