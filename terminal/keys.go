package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ledtris/tetris"
)

// KeyCommand maps a key press to a controller command. Arrows move, s or
// Enter starts a session.
func KeyCommand(key tcell.Key, r rune) (tetris.Command, bool) {
	switch key {
	case tcell.KeyLeft:
		return tetris.CmdLeft, true
	case tcell.KeyRight:
		return tetris.CmdRight, true
	case tcell.KeyDown:
		return tetris.CmdDown, true
	case tcell.KeyEnter:
		return tetris.CmdStart, true
	case tcell.KeyRune:
		switch r {
		case 's', 'S':
			return tetris.CmdStart, true
		case 'L', 'R', 'D':
			return tetris.ParseCommand(byte(r))
		}
	}
	return 0, false
}

// QuitKey reports whether the key ends the program.
func QuitKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && r == 'q')
}

// EventSource is the part of tcell.Screen the key reader polls.
type EventSource interface {
	PollEvent() tcell.Event
}

// Keys turns terminal key events into controller commands.
type Keys struct {
	commands chan tetris.Command
	quit     chan struct{}
	resize   chan struct{}
}

// PollKeys reads events from src until it returns nil, which tcell does
// after Fini.
func PollKeys(src EventSource) *Keys {
	k := &Keys{
		commands: make(chan tetris.Command, tetris.DefaultQueueCapacity),
		quit:     make(chan struct{}),
		resize:   make(chan struct{}, 1),
	}
	go k.poll(src)
	return k
}

func (k *Keys) poll(src EventSource) {
	defer close(k.quit)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if QuitKey(ev.Key(), ev.Rune()) {
				return
			}
			if cmd, ok := KeyCommand(ev.Key(), ev.Rune()); ok {
				select {
				case k.commands <- cmd:
				default:
				}
			}
		case *tcell.EventResize:
			select {
			case k.resize <- struct{}{}:
			default:
			}
		}
	}
}

// Drain moves pending commands into q without blocking.
func (k *Keys) Drain(q *tetris.CommandQueue) int {
	queued := 0
	for {
		select {
		case cmd := <-k.commands:
			if q.Push(cmd) {
				queued++
			}
		default:
			return queued
		}
	}
}

// Quit is closed when the user asks to leave or the screen is finalized.
func (k *Keys) Quit() <-chan struct{} {
	return k.quit
}

// Resized reports, once per resize burst, that the terminal changed size.
func (k *Keys) Resized() <-chan struct{} {
	return k.resize
}
