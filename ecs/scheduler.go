package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Stage selects when a registered system runs.
type Stage int

const (
	// Startup systems run once, before anything else, on the first Once call.
	Startup Stage = iota
	// PostStartup systems run once, after Startup commands have been flushed.
	PostStartup
	// Update systems run on every Once call.
	Update
)

func (s Stage) String() string {
	switch s {
	case Startup:
		return "Startup"
	case PostStartup:
		return "PostStartup"
	case Update:
		return "Update"
	}
	return "Stage(?)"
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system  System
	stage   Stage
	queries []interface{ Execute() }

	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems stage by stage and flushes their commands between stages.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
	started bool
	frames  int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds an Update system.
func (s *Scheduler) Register(system System) {
	s.RegisterIn(Update, system)
}

// RegisterIn adds a system to stage and binds its Query, Singleton and Events fields.
// Startup systems registered after the first Once never run.
func (s *Scheduler) RegisterIn(stage Stage, system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &scheduledSystem{
		system:      system,
		stage:       stage,
		queries:     s.bindFields(system),
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

var ecsPkgPath = reflect.TypeFor[Storage]().PkgPath()

// bindFields initializes every exported Query, Singleton and Events field of system and
// returns the queries that must be executed before each run. Embedded structs from other
// packages are walked too, so systems can share a bundle of accessors. Bundle types must be
// exported to be settable.
func (s *Scheduler) bindFields(system System) []interface{ Execute() } {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return s.bindStruct(value, nil)
}

func (s *Scheduler) bindStruct(value reflect.Value, queries []interface{ Execute() }) []interface{ Execute() } {
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if field.Type().PkgPath() != ecsPkgPath {
			if value.Type().Field(i).Anonymous {
				queries = s.bindStruct(field, queries)
			}
			continue
		}

		name := field.Type().Name()
		if !strings.HasPrefix(name, "Query[") && !strings.HasPrefix(name, "Singleton[") && !strings.HasPrefix(name, "Events[") {
			continue
		}

		accessor := field.Addr().Interface()
		binder, ok := accessor.(interface{ Init(*Storage) })
		if !ok {
			panic("Init method not found on field: " + value.Type().Field(i).Name)
		}
		binder.Init(s.storage)

		if q, ok := accessor.(interface{ Execute() }); ok && strings.HasPrefix(name, "Query[") {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs one frame: the startup stages on the first call, then the Update stage.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.frames, s.storage)

	if !s.started {
		s.started = true
		s.runStage(Startup, frame)
		s.runStage(PostStartup, frame)
	}
	s.runStage(Update, frame)
	s.frames++
}

func (s *Scheduler) runStage(stage Stage, frame *UpdateFrame) {
	for _, sys := range s.systems {
		if sys.stage != stage {
			continue
		}

		start := time.Now()
		for _, q := range sys.queries {
			q.Execute()
		}
		sys.system.Execute(frame)
		duration := time.Since(start)

		sys.executionCount++
		sys.lastDuration = duration
		sys.totalDuration += duration
		sys.minDuration = min(sys.minDuration, duration)
		sys.maxDuration = max(sys.maxDuration, duration)
	}
	frame.Commands.Flush(s.storage)
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Started reports whether the startup stages have run.
func (s *Scheduler) Started() bool {
	return s.started
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, sys := range s.systems {
		var avg time.Duration
		if sys.executionCount > 0 {
			avg = sys.totalDuration / time.Duration(sys.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           sys.name,
			Stage:          sys.stage,
			ExecutionCount: sys.executionCount,
			MinDuration:    sys.minDuration,
			MaxDuration:    sys.maxDuration,
			AvgDuration:    avg,
			LastDuration:   sys.lastDuration,
			TotalDuration:  sys.totalDuration,
		}
		stats.TotalExecutions += sys.executionCount
	}
	return stats
}
