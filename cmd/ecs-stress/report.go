package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/hewn/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Entities int
	Workers  int
	Churn    int

	// Results
	TotalUpdates    int64
	TotalCollisions int64
	TotalTime       time.Duration
	UpdateTime      Stats
	Scheduler       *ecs.SchedulerStats
	Storage         ecs.StorageStats
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
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
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// CollisionsPerUpdate is the mean number of pairs found per frame.
func (r *Report) CollisionsPerUpdate() string {
	if r.TotalUpdates == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", float64(r.TotalCollisions)/float64(r.TotalUpdates))
}

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Collision Workers:** {{.Workers}}
- **Churn Per Frame:** {{.Churn}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Collisions Per Update:** {{.CollisionsPerUpdate}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}
## Storage
- **Live Entities:** {{.Storage.LiveEntities}}
- **Tombstones:** {{.Storage.Tombstones}}
- **Next Id:** {{.Storage.NextId}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

var funcs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
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

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
