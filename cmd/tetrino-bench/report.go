package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tetrino/ecs"
)

type Report struct {
	Duration     time.Duration
	Edits        int
	FullEvery    int
	RespawnEvery int
	Seed         uint64

	TotalUpdates int64
	TotalTime    time.Duration
	UpdateTime   Stats
	CellRedraws  int64
	FullRedraws  int64
	Respawns     int64
	Entities     int
	Occupied     int
	Systems      []ecs.SystemStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `# tetrino bench

## Configuration
- **Run Duration:** {{.Duration}}
- **Cell edits per frame:** {{.Edits}}
- **Full redraw every:** {{.FullEvery}} frames
- **Respawn every:** {{.RespawnEvery}} frames
- **Seed:** {{.Seed}}

## Results
- **Frames:** {{.TotalUpdates}} in {{.TotalTime}}
- **Frame time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- **Redraw signals:** {{.CellRedraws}} cell, {{.FullRedraws}} full
- **Respawns:** {{.Respawns}}
- **Entities at end:** {{.Entities}}
- **Occupied cells at end:** {{.Occupied}}

## Systems
| System | Stage | Runs | Avg | Max |
|--------|-------|------|-----|-----|
{{- range .Systems}}
| {{.Name}} | {{.Stage}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory
- Heap Alloc: {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Total Alloc: {{.MemStatsStart.TotalAlloc}} -> {{.MemStatsEnd.TotalAlloc}} (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- Num GC: {{.MemStatsStart.NumGC}} -> {{.MemStatsEnd.NumGC}} (delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}})
{{if .GCPauseMetrics}}
## GC Pauses
- **Total GC Pause:** {{ns .MemStatsEnd.PauseTotalNs}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 { return int64(a) - int64(b) },
	"usub": func(a, b uint32) uint32 { return a - b },
	"ns":   func(ns uint64) string { return time.Duration(ns).String() },
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
