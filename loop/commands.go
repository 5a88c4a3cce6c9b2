package loop

// Commands buffers work that must run after every system of the tick has
// executed.
type Commands struct {
	defers []func()
}

// Defer queues fn until the end of the tick.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued functions in order, including ones deferred while
// flushing, and resets the buffer.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
