package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ledtris/loop"
)

// SchedulerPanel lists per-system timings and plots tick durations.
type SchedulerPanel struct {
	scheduler *loop.Scheduler
	ticks     *History
}

func NewSchedulerPanel(scheduler *loop.Scheduler, historyFrames int) *SchedulerPanel {
	return &SchedulerPanel{
		scheduler: scheduler,
		ticks:     NewHistory(historyFrames),
	}
}

// Execute samples the scheduler's tick interval. Register the panel as a
// system to feed the plot.
func (p *SchedulerPanel) Execute(frame *loop.UpdateFrame) {
	if frame.Tick > 0 {
		p.ticks.Push(float32(frame.DeltaTime.Seconds() * 1000))
	}
}

func (p *SchedulerPanel) Name() string {
	return "scheduler-panel"
}

func (p *SchedulerPanel) Render() {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Clock: %s", stats.Now))

	avg := p.ticks.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Tick Interval: %.2f ms (%.0f Hz)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Tick Interval Graph (ms)")
	if values := p.ticks.Values(); len(values) > 0 {
		imgui.PlotLinesFloatPtr("##ticks", &values[0], int32(len(values)))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}

// History returns the tick interval samples in milliseconds.
func (p *SchedulerPanel) History() *History {
	return p.ticks
}
