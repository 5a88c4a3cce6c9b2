package transport

import (
	"errors"
	"io"
	"sync"

	"github.com/plus3/ledtris/tetris"
)

// CommandReader pumps controller bytes from a blocking reader into a
// channel. The tick loop drains it without blocking.
type CommandReader struct {
	chunks chan []byte
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// NewCommandReader starts reading r in a goroutine. The goroutine exits
// when r returns an error or EOF.
func NewCommandReader(r io.Reader) *CommandReader {
	cr := &CommandReader{
		chunks: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cr.pump(r)
	return cr
}

func (cr *CommandReader) pump(r io.Reader) {
	defer close(cr.done)
	defer close(cr.chunks)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			cr.chunks <- chunk
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				cr.mu.Lock()
				cr.err = err
				cr.mu.Unlock()
				log().Warn("controller read failed", "err", err)
			}
			return
		}
	}
}

// Drain moves every pending byte into q and returns how many commands were
// queued. Unknown bytes are dropped.
func (cr *CommandReader) Drain(q *tetris.CommandQueue) int {
	queued := 0
	for {
		select {
		case chunk, ok := <-cr.chunks:
			if !ok {
				return queued
			}
			queued += q.PushBytes(chunk)
		default:
			return queued
		}
	}
}

// Done is closed once the underlying reader has failed or hit EOF and all
// bytes were handed to the channel.
func (cr *CommandReader) Done() <-chan struct{} {
	return cr.done
}

// Err returns the read error that stopped the reader, if any.
func (cr *CommandReader) Err() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.err
}
