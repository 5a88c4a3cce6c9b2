// Command ledtris runs the falling-block game on an LED panel. Commands
// arrive over a serial link, stdin or the terminal keyboard; frames go to
// an Adalight controller or the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ledtris/audio"
	"github.com/plus3/ledtris/loop"
	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/render"
	"github.com/plus3/ledtris/systems"
	"github.com/plus3/ledtris/terminal"
	"github.com/plus3/ledtris/tetris"
	"github.com/plus3/ledtris/transport"
)

type options struct {
	control    string
	led        string
	baud       int
	listPorts  bool
	tick       time.Duration
	brightness uint
	grb        bool
	seed       uint64
	sound      bool
	snapshot   string
	logLevel   string
	logFile    string
	strict     bool
	fall       time.Duration
	session    time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	defaults := tetris.DefaultConfig()
	fs := flag.NewFlagSet("ledtris", flag.ContinueOnError)
	fs.StringVar(&o.control, "control", "term", "Command source: term, stdin, or a serial port path.")
	fs.StringVar(&o.led, "led", "term", "LED output: a serial port path for an Adalight controller, term, or none.")
	fs.IntVar(&o.baud, "baud", transport.DefaultBaud, "Baud rate for serial ports.")
	fs.BoolVar(&o.listPorts, "list-ports", false, "Print the serial ports present on this host and exit.")
	fs.DurationVar(&o.tick, "tick", 10*time.Millisecond, "Scheduler tick interval.")
	fs.UintVar(&o.brightness, "brightness", transport.DefaultBrightness, "LED brightness, 0-255.")
	fs.BoolVar(&o.grb, "grb", true, "Send pixels in GRB order.")
	fs.Uint64Var(&o.seed, "seed", 0, "Piece picker seed. 0 seeds from the clock.")
	fs.BoolVar(&o.sound, "sound", false, "Play tones on score and game over.")
	fs.StringVar(&o.snapshot, "snapshot", "", "Write the final board of every session to this PNG path.")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	fs.StringVar(&o.logFile, "log-file", "", "Write logs to this file instead of stderr.")
	fs.BoolVar(&o.strict, "end-on-blocked-spawn", false, "End the session when a new piece spawns on locked cells.")
	fs.DurationVar(&o.fall, "fall", defaults.FallInterval, "Debug only: gravity interval.")
	fs.DurationVar(&o.session, "session", defaults.SessionDuration, "Debug only: session length.")
	err := fs.Parse(args)
	return o, err
}

func (o options) validate() error {
	if o.brightness > 255 {
		return fmt.Errorf("brightness %d out of range", o.brightness)
	}
	if o.control == "stdin" && o.led == "term" {
		return errors.New("-control stdin cannot share the terminal with -led term; use -control term")
	}
	return nil
}

func (o options) engineOptions() []tetris.Option {
	opts := []tetris.Option{tetris.WithConfig(tetris.Config{
		FallInterval:      o.fall,
		SessionDuration:   o.session,
		EndOnBlockedSpawn: o.strict,
	})}
	if o.seed != 0 {
		opts = append(opts, tetris.WithSeed(o.seed))
	}
	return opts
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.listPorts {
		if err := listPorts(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	if err := run(opts, log); err != nil {
		log.Error("ledtris stopped", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func listPorts(w io.Writer) error {
	names, err := transport.Ports()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		_, err = fmt.Fprintln(w, "no serial ports found")
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(o options) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", o.logLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case o.led == "term" || o.control == "term":
		w = io.Discard
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	tetris.SetLogger(log.With("component", "engine"))
	transport.SetLogger(log.With("component", "transport"))
	systems.SetLogger(log.With("component", "loop"))
	return log, closeFn, nil
}

// ports shares one open serial port between control and LED roles.
type ports map[string]io.ReadWriteCloser

func (p ports) open(name string, baud int) (io.ReadWriteCloser, error) {
	if port, ok := p[name]; ok {
		return port, nil
	}
	port, err := transport.OpenSerial(name, baud)
	if err != nil {
		return nil, err
	}
	p[name] = port
	return port, nil
}

func (p ports) closeAll() {
	for name, port := range p {
		if err := port.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			slog.Warn("close port", "port", name, "err", err)
		}
	}
}

// watch ends the run when the user quits or the serial controller link
// drops, and repaints the terminal after a resize. Nil channels never fire.
type watch struct {
	quit    <-chan struct{}
	resized <-chan struct{}
	repaint func()
	link    *transport.CommandReader
}

func (w watch) run(ctx context.Context) error {
	var linkDone <-chan struct{}
	if w.link != nil {
		linkDone = w.link.Done()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.quit:
			return nil
		case <-w.resized:
			w.repaint()
		case <-linkDone:
			if err := w.link.Err(); err != nil {
				return fmt.Errorf("controller link: %w", err)
			}
			return fmt.Errorf("controller link: %w", transport.ErrClosed)
		}
	}
}

func run(o options, log *slog.Logger) error {
	if err := o.validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	open := ports{}
	defer open.closeAll()

	var screen tcell.Screen
	if o.control == "term" || o.led == "term" {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("terminal init: %w", err)
		}
		defer s.Fini()
		s.Clear()
		screen = s
	}

	var (
		keys *terminal.Keys
		w    watch
	)
	if screen != nil {
		keys = terminal.PollKeys(screen)
		w.quit = keys.Quit()
		w.resized = keys.Resized()
		w.repaint = screen.Sync
	}

	queue := tetris.NewCommandQueue(tetris.DefaultQueueCapacity)
	input := &systems.Input{Queue: queue}
	var status io.Writer

	switch o.control {
	case "stdin":
		input.Sources = append(input.Sources, transport.NewCommandReader(os.Stdin))
		status = os.Stdout
	case "term":
		input.Sources = append(input.Sources, keys)
		status = terminal.NewStatusLine(screen, 0, matrix.Height+1, matrix.Width*terminal.CellWidth)
	default:
		port, err := open.open(o.control, o.baud)
		if err != nil {
			return err
		}
		w.link = transport.NewCommandReader(port)
		input.Sources = append(input.Sources, w.link)
		status = port
	}

	var sink matrix.Sink
	switch o.led {
	case "none":
		sink = matrix.NewCanvas(matrix.Default(), nil)
	case "term":
		sink = terminal.NewSink(screen, matrix.Default(), 0, 0)
	default:
		port, err := open.open(o.led, o.baud)
		if err != nil {
			return err
		}
		order := transport.OrderRGB
		if o.grb {
			order = transport.OrderGRB
		}
		sink = transport.NewAdalightSink(port,
			transport.WithBrightness(uint8(o.brightness)),
			transport.WithColorOrder(order),
		)
	}

	engine := tetris.NewEngine(o.engineOptions()...)
	projector := render.NewProjector(sink)
	game := &systems.Game{Engine: engine, Queue: queue}

	scheduler := loop.NewScheduler(loop.NewMonotonicClock())
	scheduler.Register(input)
	scheduler.Register(game)
	if o.snapshot != "" {
		scheduler.Register(&systems.Snapshot{Game: game, Projector: projector, Path: o.snapshot, Scale: 16})
	}
	scheduler.Register(&systems.Render{Game: game, Projector: projector})
	scheduler.Register(&systems.Status{Game: game, Writer: transport.NewStatusWriter(status)})
	if screen != nil {
		clockRow := terminal.NewStatusLine(screen, 0, matrix.Height+2, matrix.Width*terminal.CellWidth)
		scheduler.Register(&systems.Countdown{Game: game, Writer: clockRow})
	}

	if o.sound {
		chime, closeSpeaker, err := audio.OpenSpeaker()
		if err != nil {
			log.Warn("sound disabled", "err", err)
		} else {
			defer closeSpeaker()
			scheduler.Register(&systems.Observe{Game: game, Observer: chime})
		}
	}

	log.Info("ledtris running",
		"control", o.control,
		"led", o.led,
		"tick", o.tick,
		"session", engine.Config().SessionDuration,
	)
	if o.control == "stdin" {
		log.Info("send S to start, L R D to move")
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.run(ctx)
		stop()
	}()

	scheduler.Run(ctx, o.tick)
	stop()
	err := <-watchErr

	if closer, ok := sink.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warn("close led link", "err", err)
		}
		delete(open, o.led)
	}

	stats := scheduler.GetStats()
	log.Info("ledtris stopped", "ticks", stats.Ticks, "dropped_commands", queue.Dropped())
	return err
}
