package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  bool
}

func NewFrameHistory(frames int) *FrameHistory {
	if frames <= 0 {
		frames = 1
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

// Record stores a frame of dt seconds.
func (h *FrameHistory) Record(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Average returns the mean frame time in milliseconds over the recorded frames.
func (h *FrameHistory) Average() float32 {
	n := h.next
	if h.filled {
		n = len(h.samples)
	}
	if n == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:n] {
		sum += s
	}
	return sum / float32(n)
}

// PerformancePanel shows storage counts, per-system timings and a frame time graph.
type PerformancePanel struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	History   *FrameHistory
}

func NewPerformancePanel(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformancePanel {
	return &PerformancePanel{
		Storage:   storage,
		Scheduler: scheduler,
		History:   NewFrameHistory(historyFrames),
	}
}

// Item wraps the panel as an ImguiItem.
func (p *PerformancePanel) Item() ImguiItem {
	return ImguiItem{Title: "Performance", Render: p.Render}
}

func (p *PerformancePanel) Render() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	stats := p.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := p.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.History.samples[0], int32(len(p.History.samples)))

	if p.Scheduler == nil {
		return
	}

	sched := p.Scheduler.GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d  System runs: %d", sched.Frames, sched.TotalExecutions))

	if imgui.BeginTableV("SystemStats", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.Stage.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Archetypes") {
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.ComponentTypes, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}

// FrameSystem feeds frame times into a panel's history.
type FrameSystem struct {
	History *FrameHistory
}

func (s *FrameSystem) Execute(frame *ecs.UpdateFrame) {
	s.History.Record(frame.DeltaTime)
}
