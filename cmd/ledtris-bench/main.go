// Command ledtris-bench plays sessions headlessly with random input on a
// simulated clock and prints a Markdown report.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/ledtris/loop"
	"github.com/plus3/ledtris/matrix"
	"github.com/plus3/ledtris/render"
	"github.com/plus3/ledtris/systems"
	"github.com/plus3/ledtris/tetris"
	"github.com/plus3/ledtris/transport"
)

func main() {
	duration := flag.Duration("duration", 10*time.Minute, "Simulated time to play for.")
	seed := flag.Uint64("seed", 1, "Seed for pieces and random input.")
	rate := flag.Int("rate", 5, "Random commands per simulated second.")
	tick := flag.Duration("tick", 10*time.Millisecond, "Simulated tick interval.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause metrics in the report.")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log.Info("starting bench", "duration", *duration, "seed", *seed, "rate", *rate)

	report := Run(Params{
		Duration: *duration,
		Seed:     *seed,
		Rate:     *rate,
		Tick:     *tick,
	})
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Error("report failed", "err", err)
		os.Exit(1)
	}
	log.Info("bench complete", "ticks", report.TotalTicks, "wall", report.WallTime)
}

type Params struct {
	Duration time.Duration
	Seed     uint64
	Rate     int
	Tick     time.Duration
}

// randomInput sends commands at a steady average rate and restarts a
// session as soon as the previous one ends.
type randomInput struct {
	rng   *rand.Rand
	rate  int
	tick  time.Duration
	game  *systems.Game
	moves []tetris.Command
}

func (r *randomInput) Drain(q *tetris.CommandQueue) int {
	if r.game.Frame().State != tetris.StatePlaying {
		if q.Push(tetris.CmdStart) {
			return 1
		}
		return 0
	}
	p := float64(r.rate) * r.tick.Seconds()
	if r.rng.Float64() >= p {
		return 0
	}
	if q.Push(r.moves[r.rng.IntN(len(r.moves))]) {
		return 1
	}
	return 0
}

type tally struct {
	report *Report
}

func (t tally) Observe(events []tetris.Event) error {
	for _, ev := range events {
		switch ev.Kind {
		case tetris.EventStarted:
			t.report.Sessions++
		case tetris.EventSpawned:
			t.report.Spawns[ev.Piece.Shape.Name]++
		case tetris.EventLocked:
			t.report.Locks++
		case tetris.EventLineCleared:
			t.report.Lines++
		case tetris.EventGameOver:
			t.report.Scores.Add(ev.Score)
		}
	}
	return nil
}

// Run plays for the simulated duration and returns the collected report.
func Run(p Params) *Report {
	if p.Tick <= 0 {
		p.Tick = 10 * time.Millisecond
	}
	report := &Report{
		Duration: p.Duration,
		Seed:     p.Seed,
		Rate:     p.Rate,
		Tick:     p.Tick,
		Spawns:   make(map[string]int),
	}

	clock := &loop.ManualClock{}
	queue := tetris.NewCommandQueue(tetris.DefaultQueueCapacity)
	engine := tetris.NewEngine(tetris.WithSeed(p.Seed))
	game := &systems.Game{Engine: engine, Queue: queue}
	led := transport.NewAdalightSink(io.Discard, transport.WithLayout(matrix.Default()))
	projector := render.NewProjector(led)

	input := &randomInput{
		rng:   rand.New(rand.NewPCG(p.Seed, p.Seed+1)),
		rate:  p.Rate,
		tick:  p.Tick,
		game:  game,
		moves: []tetris.Command{tetris.CmdLeft, tetris.CmdRight, tetris.CmdDown},
	}

	scheduler := loop.NewScheduler(clock)
	scheduler.Register(&systems.Input{Sources: []systems.CommandSource{input}, Queue: queue})
	scheduler.Register(game)
	scheduler.Register(&systems.Render{Game: game, Projector: projector})
	scheduler.Register(&systems.Observe{Game: game, Observer: tally{report}})

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()
	for clock.Now() < p.Duration {
		tickStart := time.Now()
		scheduler.Once()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		clock.Advance(p.Tick)
	}
	report.WallTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.TotalTicks = scheduler.GetStats().Ticks
	report.Systems = scheduler.GetStats().Systems
	report.FramesSent = led.Sent()
	report.FramesSkipped = led.Skipped()
	report.Dropped = queue.Dropped()
	report.TickTime.Finalize()
	return report
}
