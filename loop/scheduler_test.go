package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/ledtris/loop"
)

type recordSystem struct {
	name   string
	log    *[]string
	frames []loop.UpdateFrame
}

func (s *recordSystem) Execute(frame *loop.UpdateFrame) {
	*s.log = append(*s.log, s.name)
	s.frames = append(s.frames, *frame)
}

type CounterSystem struct {
	ExecuteCount int
}

func (s *CounterSystem) Execute(*loop.UpdateFrame) {
	s.ExecuteCount++
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var log []string
		scheduler := loop.NewScheduler(&loop.ManualClock{})
		scheduler.Register(&recordSystem{name: "input", log: &log})
		scheduler.Register(&recordSystem{name: "engine", log: &log})
		scheduler.Register(&recordSystem{name: "render", log: &log})

		scheduler.Once()
		scheduler.Once()

		want := []string{"input", "engine", "render", "input", "engine", "render"}
		if len(log) != len(want) {
			t.Fatalf("expected %d executions, got %d", len(want), len(log))
		}
		for i := range want {
			if log[i] != want[i] {
				t.Errorf("execution %d: expected %s, got %s", i, want[i], log[i])
			}
		}
	})

	t.Run("frames carry clock time and delta", func(t *testing.T) {
		var log []string
		clock := &loop.ManualClock{}
		clock.Set(100 * time.Millisecond)

		scheduler := loop.NewScheduler(clock)
		sys := &recordSystem{name: "s", log: &log}
		scheduler.Register(sys)

		clock.Advance(50 * time.Millisecond)
		scheduler.Once()
		clock.Advance(20 * time.Millisecond)
		scheduler.Once()

		if got := sys.frames[0].Now; got != 150*time.Millisecond {
			t.Errorf("expected now=150ms, got %v", got)
		}
		if got := sys.frames[0].DeltaTime; got != 50*time.Millisecond {
			t.Errorf("expected delta=50ms, got %v", got)
		}
		if got := sys.frames[1].DeltaTime; got != 20*time.Millisecond {
			t.Errorf("expected delta=20ms, got %v", got)
		}
		if sys.frames[1].Tick != 1 {
			t.Errorf("expected tick 1, got %d", sys.frames[1].Tick)
		}
	})

	t.Run("deferred commands run after every system", func(t *testing.T) {
		var log []string
		scheduler := loop.NewScheduler(&loop.ManualClock{})
		scheduler.Register(loop.SystemFunc(func(frame *loop.UpdateFrame) {
			frame.Commands.Defer(func() { log = append(log, "deferred") })
			log = append(log, "first")
		}))
		scheduler.Register(&recordSystem{name: "second", log: &log})

		scheduler.Once()

		want := []string{"first", "second", "deferred"}
		for i := range want {
			if i >= len(log) || log[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, log)
			}
		}

		scheduler.Once()
		if len(log) != 6 {
			t.Errorf("expected deferred command to run once per tick, got %v", log)
		}
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := loop.NewScheduler(&loop.ManualClock{})
		counter := &CounterSystem{}
		scheduler.Register(counter)
		scheduler.Register(loop.Named("status", loop.SystemFunc(func(*loop.UpdateFrame) {})))

		stats := scheduler.GetStats()
		if stats.Systems[0].MinDuration != 0 {
			t.Errorf("expected zero min duration before any tick, got %v", stats.Systems[0].MinDuration)
		}

		for range 3 {
			scheduler.Once()
		}

		stats = scheduler.GetStats()
		if stats.SystemCount != 2 {
			t.Errorf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.Ticks != 3 {
			t.Errorf("expected 3 ticks, got %d", stats.Ticks)
		}
		if stats.Systems[0].Name != "CounterSystem" {
			t.Errorf("expected type name, got %q", stats.Systems[0].Name)
		}
		if stats.Systems[1].Name != "status" {
			t.Errorf("expected explicit name, got %q", stats.Systems[1].Name)
		}
		if stats.Systems[0].ExecutionCount != 3 || counter.ExecuteCount != 3 {
			t.Errorf("expected 3 executions, got %d", stats.Systems[0].ExecutionCount)
		}
		if stats.Systems[0].MaxDuration < stats.Systems[0].MinDuration {
			t.Error("expected max >= min")
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := loop.NewScheduler(nil)
		counter := &CounterSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if counter.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

func TestManualClock(t *testing.T) {
	var clock loop.ManualClock
	clock.Set(time.Second)
	clock.Set(time.Millisecond)
	if clock.Now() != time.Second {
		t.Errorf("expected clock to ignore moving backwards, got %v", clock.Now())
	}
	if got := clock.Advance(-time.Second); got != time.Second {
		t.Errorf("expected negative advance to be ignored, got %v", got)
	}
	if got := clock.Advance(5 * time.Millisecond); got != time.Second+5*time.Millisecond {
		t.Errorf("unexpected time %v", got)
	}
}

func TestMonotonicClock(t *testing.T) {
	clock := loop.NewMonotonicClock()
	a := clock.Now()
	time.Sleep(time.Millisecond)
	if b := clock.Now(); b <= a {
		t.Errorf("expected clock to advance, got %v then %v", a, b)
	}
}
