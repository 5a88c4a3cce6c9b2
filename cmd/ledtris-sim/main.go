// Command ledtris-sim runs the game in a desktop window that mimics the LED
// panel, with Dear ImGui inspectors for the session and the scheduler.
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/ledtris/debugui"
	debugui_ebiten "github.com/plus3/ledtris/debugui/ebiten"
	"github.com/plus3/ledtris/loop"
	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/render"
	"github.com/plus3/ledtris/systems"
	"github.com/plus3/ledtris/tetris"
	"github.com/plus3/ledtris/transport"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

var unlitColor = color.RGBA{24, 24, 24, 255}

type Sim struct {
	scheduler *loop.Scheduler
	queue     *tetris.CommandQueue
	keys      *keySource
	debug     *debugui.System
	backend   *debugui_ebiten.ImguiBackend

	front []color.RGBA
	panel matrix.Layout
	pitch float32
}

func main() {
	seed := flag.Uint64("seed", 0, "Piece picker seed. 0 seeds from the clock.")
	pitch := flag.Int("pitch", 28, "Distance between LEDs in pixels.")
	snapshotPath := flag.String("snapshot", "", "Write the final board of every session to this PNG path.")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	tetris.SetLogger(log.With("component", "engine"))
	systems.SetLogger(log.With("component", "loop"))

	backend := debugui_ebiten.NewImguiBackend("ledtris simulator", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	sim := &Sim{
		queue: tetris.NewCommandQueue(tetris.DefaultQueueCapacity),
		debug: &debugui.System{},
		panel: matrix.Default(),
		pitch: float32(*pitch),

		backend: backend,
	}
	sim.keys = &keySource{debug: sim.debug}
	sim.front = make([]color.RGBA, sim.panel.Len())

	canvas := matrix.NewCanvas(sim.panel, func(b *matrix.Buffer) error {
		copy(sim.front, b.Pixels())
		return nil
	})

	var engineOpts []tetris.Option
	if *seed != 0 {
		engineOpts = append(engineOpts, tetris.WithSeed(*seed))
	}
	engine := tetris.NewEngine(engineOpts...)
	projector := render.NewProjector(canvas)
	game := &systems.Game{Engine: engine, Queue: sim.queue}

	session := &debugui.SessionPanel{
		Frame: game.Frame,
		Queue: sim.queue,
		Start: func() { sim.queue.Push(tetris.CmdStart) },
	}

	sim.scheduler = loop.NewScheduler(loop.NewMonotonicClock())
	schedulerPanel := debugui.NewSchedulerPanel(sim.scheduler, 240)

	sim.scheduler.Register(&systems.Input{Sources: []systems.CommandSource{sim.keys}, Queue: sim.queue})
	sim.scheduler.Register(game)
	if *snapshotPath != "" {
		sim.scheduler.Register(&systems.Snapshot{Game: game, Projector: projector, Path: *snapshotPath, Scale: 16})
	}
	sim.scheduler.Register(&systems.Render{Game: game, Projector: projector})
	sim.scheduler.Register(&systems.Status{Game: game, Writer: transport.NewStatusWriter(os.Stdout)})
	sim.scheduler.Register(&systems.Observe{Game: game, Observer: sessionObserver{session}})
	sim.scheduler.Register(schedulerPanel)
	sim.scheduler.Register(sim.debug)

	sim.debug.Add(session.Render)
	sim.debug.Add(schedulerPanel.Render)

	if err := ebiten.RunGame(sim); err != nil {
		log.Error("simulator stopped", "err", err)
		os.Exit(1)
	}
}

type sessionObserver struct {
	panel *debugui.SessionPanel
}

func (o sessionObserver) Observe(events []tetris.Event) error {
	o.panel.Observe(events)
	return nil
}

func (s *Sim) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	s.backend.BeginFrame()
	s.scheduler.Once()
	s.backend.EndFrame()
	return nil
}

func (s *Sim) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{8, 8, 10, 255})

	radius := s.pitch * 0.4
	for i, c := range s.front {
		x, y, _ := s.panel.XY(i)
		cx := s.pitch/2 + float32(x)*s.pitch
		cy := s.pitch/2 + float32(y)*s.pitch
		if !matrix.Lit(c) {
			c = unlitColor
		}
		vector.DrawFilledCircle(screen, cx, cy, radius, c, true)
	}

	s.backend.Draw(screen)
}

func (s *Sim) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// keySource maps arrow keys and S or Enter to controller commands. Held
// arrows repeat after a short delay.
type keySource struct {
	debug *debugui.System
}

var keyCommands = []struct {
	key    ebiten.Key
	cmd    tetris.Command
	repeat bool
}{
	{ebiten.KeyArrowLeft, tetris.CmdLeft, true},
	{ebiten.KeyArrowRight, tetris.CmdRight, true},
	{ebiten.KeyArrowDown, tetris.CmdDown, true},
	{ebiten.KeyS, tetris.CmdStart, false},
	{ebiten.KeyEnter, tetris.CmdStart, false},
}

func (k *keySource) Drain(q *tetris.CommandQueue) int {
	if k.debug.Input.WantCaptureKeyboard {
		return 0
	}
	queued := 0
	for _, kc := range keyCommands {
		d := inpututil.KeyPressDuration(kc.key)
		if d == 1 || (kc.repeat && d > 12 && d%4 == 0) {
			if q.Push(kc.cmd) {
				queued++
			}
		}
	}
	return queued
}
