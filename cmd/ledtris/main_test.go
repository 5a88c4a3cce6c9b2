package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ledtris/tetris"
	"github.com/plus3/ledtris/transport"
)

func TestDefaultFlagsAreRunnable(t *testing.T) {
	o, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, "term", o.control)
	assert.Equal(t, "term", o.led)
	assert.NoError(t, o.validate())

	def := tetris.DefaultConfig()
	assert.Equal(t, def.FallInterval, o.fall)
	assert.Equal(t, def.SessionDuration, o.session)
	assert.Equal(t, def, tetris.NewEngine(o.engineOptions()...).Config())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string][]string{
		"stdin on terminal": {"-control", "stdin"},
		"brightness":        {"-brightness", "300"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			o, err := parseFlags(args)
			require.NoError(t, err)
			assert.Error(t, o.validate())
		})
	}

	o, err := parseFlags([]string{"-control", "stdin", "-led", "none"})
	require.NoError(t, err)
	assert.NoError(t, o.validate())
}

func runWatch(t *testing.T, w watch) <-chan error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()
	return done
}

func waitErr(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(time.Second):
		t.Fatal("watch did not return")
		return nil
	}
}

func TestWatchStopsOnLinkError(t *testing.T) {
	boom := errors.New("device unplugged")
	pr, pw := io.Pipe()
	done := runWatch(t, watch{link: transport.NewCommandReader(pr)})

	pw.CloseWithError(boom)
	assert.ErrorIs(t, waitErr(t, done), boom)
}

func TestWatchStopsOnLinkEOF(t *testing.T) {
	pr, pw := io.Pipe()
	done := runWatch(t, watch{link: transport.NewCommandReader(pr)})

	pw.Close()
	assert.ErrorIs(t, waitErr(t, done), transport.ErrClosed)
}

func TestWatchRepaintsOnResize(t *testing.T) {
	resized := make(chan struct{})
	quit := make(chan struct{})
	repaints := make(chan struct{}, 2)
	done := runWatch(t, watch{
		quit:    quit,
		resized: resized,
		repaint: func() { repaints <- struct{}{} },
	})

	resized <- struct{}{}
	resized <- struct{}{}
	close(quit)

	assert.NoError(t, waitErr(t, done))
	assert.Len(t, repaints, 2)
}

func TestWatchReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch{}.run(ctx) }()

	cancel()
	assert.NoError(t, waitErr(t, done))
}
