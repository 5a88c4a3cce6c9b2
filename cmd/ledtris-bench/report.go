package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/ledtris/loop"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Rate     int
	Tick     time.Duration

	// Results
	TotalTicks     int64
	WallTime       time.Duration
	TickTime       Stats
	Systems        []loop.SystemStats
	Sessions       int
	Locks          int
	Lines          int
	Scores         Scores
	Spawns         map[string]int
	FramesSent     int
	FramesSkipped  int
	Dropped        int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// Scores collects final session scores.
type Scores struct {
	Count int
	Total int
	Best  int
}

func (s *Scores) Add(score int) {
	s.Count++
	s.Total += score
	s.Best = max(s.Best, score)
}

func (s Scores) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Count)
}

type spawnRow struct {
	Name  string
	Count int
	Share float64
	Bar   string
}

// SpawnRows returns the spawn histogram sorted by shape name.
func (r *Report) SpawnRows() []spawnRow {
	total := 0
	for _, n := range r.Spawns {
		total += n
	}
	names := make([]string, 0, len(r.Spawns))
	for name := range r.Spawns {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([]spawnRow, 0, len(names))
	for _, name := range names {
		n := r.Spawns[name]
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total)
		}
		rows = append(rows, spawnRow{
			Name:  name,
			Count: n,
			Share: share * 100,
			Bar:   strings.Repeat("#", int(share*40+0.5)),
		})
	}
	return rows
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Ledtris Bench Report

## Configuration
- **Simulated Duration:** {{.Duration}}
- **Tick:** {{.Tick}}
- **Seed:** {{.Seed}}
- **Input Rate:** {{.Rate}} commands/s

## Tick Performance
- **Total Ticks:** {{.TotalTicks}}
- **Wall Time:** {{.WallTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **P99:** {{.TickTime.P99}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Gameplay
- **Sessions:** {{.Sessions}} ({{.Scores.Count}} finished)
- **Pieces Locked:** {{.Locks}}
- **Lines Cleared:** {{.Lines}}
- **Score:** avg {{printf "%.2f" .Scores.Avg}}, best {{.Scores.Best}}
- **LED Frames:** {{.FramesSent}} sent, {{.FramesSkipped}} skipped as unchanged
- **Dropped Commands:** {{.Dropped}}

## Spawn Histogram
| Shape | Count | Share | |
|-------|-------|-------|-|
{{- range .SpawnRows}}
| {{.Name}} | {{.Count}} | {{printf "%.1f" .Share}}% | {{.Bar}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
