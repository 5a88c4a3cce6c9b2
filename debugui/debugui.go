// Package debugui draws Dear ImGui inspector panels for a running session.
// Panels register as items; the System defers their render functions to the
// end of the tick, inside the ImGui frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ledtris/loop"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System defers every item's render function and refreshes InputState.
type System struct {
	Items []Item
	Input InputState
}

// Add registers a render function.
func (s *System) Add(render func()) {
	s.Items = append(s.Items, Item{Render: render})
}

func (s *System) Name() string {
	return "debugui"
}

// Execute updates input state and queues all ImGui render functions.
func (s *System) Execute(frame *loop.UpdateFrame) {
	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		frame.Commands.Defer(item.Render)
	}
}
