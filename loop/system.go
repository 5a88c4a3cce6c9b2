package loop

import "time"

// System is one stage of a tick. Systems run in registration order and can
// keep their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// Named gives a system an explicit name in scheduler stats.
func Named(name string, system System) System {
	return named{name: name, System: system}
}

type named struct {
	name string
	System
}

func (n named) Name() string {
	return n.name
}

// UpdateFrame is passed to every system during one tick.
type UpdateFrame struct {
	Tick      int64
	Now       time.Duration
	DeltaTime time.Duration
	Commands  *Commands
}
