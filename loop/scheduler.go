// Package loop drives the game tick: a fixed-interval scheduler running an
// ordered list of systems against a monotonic clock.
package loop

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Ticks       int64
	Now         time.Duration
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs registered systems in order once per tick.
type Scheduler struct {
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal
	commands    Commands

	ticks int64
	last  time.Duration
}

// NewScheduler creates a scheduler reading time from clock. A nil clock
// selects the monotonic clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Scheduler{
		clock:   clock,
		systems: make([]System, 0),
		last:    clock.Now(),
	}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Register appends a system. Systems implementing Name() string are
// reported under that name, others under their type name.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if n, ok := system.(interface{ Name() string }); ok {
		return n.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Once executes every registered system for the current clock reading and
// then flushes deferred commands.
func (s *Scheduler) Once() {
	now := s.clock.Now()
	frame := &UpdateFrame{
		Tick:      s.ticks,
		Now:       now,
		DeltaTime: now - s.last,
		Commands:  &s.commands,
	}
	s.last = now
	s.ticks++

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush()
}

// Run executes all systems at the given interval until the context is
// cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Now:         s.last,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return stats
}
