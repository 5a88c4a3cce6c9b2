package transport

import (
	"fmt"
	"io"
	"sync"

	"github.com/plus3/ledtris/tetris"
)

// StatusWriter writes SCORE and GAME_OVER lines for the controller.
type StatusWriter struct {
	mu     sync.Mutex
	w      io.Writer
	lines  int
	closed bool
}

func NewStatusWriter(w io.Writer) *StatusWriter {
	return &StatusWriter{w: w}
}

// WriteEvents writes one line per status-bearing event, in order.
func (s *StatusWriter) WriteEvents(events []tetris.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	for _, ev := range events {
		line, ok := ev.StatusLine()
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(s.w, "%s\n", line); err != nil {
			return fmt.Errorf("write status %q: %w", line, err)
		}
		s.lines++
	}
	return nil
}

// Lines returns how many status lines were written.
func (s *StatusWriter) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Close stops further writes. The underlying writer is left open.
func (s *StatusWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
