package tetris

// Command is a player intent decoded from the controller link.
type Command uint8

const (
	CmdLeft Command = iota + 1
	CmdRight
	CmdDown
	CmdStart
)

func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdDown:
		return "down"
	case CmdStart:
		return "start"
	default:
		return "unknown"
	}
}

// Byte returns the wire character for c, or 0 for an unknown command.
func (c Command) Byte() byte {
	switch c {
	case CmdLeft:
		return 'L'
	case CmdRight:
		return 'R'
	case CmdDown:
		return 'D'
	case CmdStart:
		return 'S'
	default:
		return 0
	}
}

// ParseCommand decodes one wire character. Matching is case-sensitive and
// anything outside L, R, D and S is rejected.
func ParseCommand(b byte) (Command, bool) {
	switch b {
	case 'L':
		return CmdLeft, true
	case 'R':
		return CmdRight, true
	case 'D':
		return CmdDown, true
	case 'S':
		return CmdStart, true
	default:
		return 0, false
	}
}

// ParseCommands decodes a chunk of wire characters in order, dropping the
// unrecognized ones.
func ParseCommands(data []byte) []Command {
	cmds := make([]Command, 0, len(data))
	for _, b := range data {
		if cmd, ok := ParseCommand(b); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// DefaultQueueCapacity bounds the commands buffered between two ticks.
const DefaultQueueCapacity = 64

// CommandQueue is a bounded FIFO of pending commands backed by a ring buffer.
// When full, new commands are dropped and counted.
type CommandQueue struct {
	buf     []Command
	head    int
	size    int
	dropped int
}

// NewCommandQueue creates a queue holding at most capacity commands.
// A non-positive capacity selects DefaultQueueCapacity.
func NewCommandQueue(capacity int) *CommandQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &CommandQueue{buf: make([]Command, capacity)}
}

// Push appends cmd. It returns false if the queue was full.
func (q *CommandQueue) Push(cmd Command) bool {
	if q.size == len(q.buf) {
		q.dropped++
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = cmd
	q.size++
	return true
}

// PushBytes decodes data and enqueues every recognized command. It returns the
// number of commands accepted.
func (q *CommandQueue) PushBytes(data []byte) int {
	accepted := 0
	for _, b := range data {
		cmd, ok := ParseCommand(b)
		if !ok {
			continue
		}
		if q.Push(cmd) {
			accepted++
		}
	}
	return accepted
}

// Pop removes the oldest command.
func (q *CommandQueue) Pop() (Command, bool) {
	if q.size == 0 {
		return 0, false
	}
	cmd := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return cmd, true
}

// Drain removes every pending command in arrival order, appending them to dst.
func (q *CommandQueue) Drain(dst []Command) []Command {
	for {
		cmd, ok := q.Pop()
		if !ok {
			return dst
		}
		dst = append(dst, cmd)
	}
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	return q.size
}

// Cap returns the queue capacity.
func (q *CommandQueue) Cap() int {
	return len(q.buf)
}

// Dropped returns how many commands were rejected because the queue was full.
func (q *CommandQueue) Dropped() int {
	return q.dropped
}
