package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ledtris/tetris"
)

// SessionPanel shows the current engine frame and offers a start button.
type SessionPanel struct {
	// Frame returns the latest frame. It may return nil before the first tick.
	Frame func() *tetris.Frame
	// Queue, if set, is reported alongside the frame.
	Queue *tetris.CommandQueue
	// Start is called when the start button is pressed.
	Start func()

	Lines int
}

// Observe counts cleared lines across sessions.
func (p *SessionPanel) Observe(events []tetris.Event) {
	for _, ev := range events {
		if ev.Kind == tetris.EventLineCleared {
			p.Lines++
		}
	}
}

// Summary returns the panel text for a frame.
func Summary(f *tetris.Frame) []string {
	if f == nil {
		return []string{"no frame yet"}
	}
	lines := []string{
		fmt.Sprintf("State: %s", f.State),
		fmt.Sprintf("Score: %d", f.Score),
		fmt.Sprintf("Time: %s / %s", f.Elapsed.Truncate(time.Second/10), (f.Elapsed + f.Remaining).Truncate(time.Second)),
		fmt.Sprintf("Locked cells: %d", f.Grid.Count()),
	}
	if f.HasPiece {
		lines = append(lines, fmt.Sprintf("Piece: %s at %d,%d", f.Piece.Shape.Name, f.Piece.X, f.Piece.Y))
	} else {
		lines = append(lines, "Piece: none")
	}
	return lines
}

func (p *SessionPanel) Render() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var f *tetris.Frame
	if p.Frame != nil {
		f = p.Frame()
	}
	for _, line := range Summary(f) {
		imgui.Text(line)
	}
	imgui.Text(fmt.Sprintf("Lines cleared: %d", p.Lines))

	if p.Queue != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Queue: %d/%d (dropped %d)", p.Queue.Len(), p.Queue.Cap(), p.Queue.Dropped()))
	}

	if p.Start != nil {
		imgui.Separator()
		if imgui.Button("Start") {
			p.Start()
		}
	}

	imgui.End()
}
