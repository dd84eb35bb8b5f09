package ecs

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
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

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger makes the scheduler emit debug-level frame summaries.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage     *Storage
	systems     []System
	systemStats []*systemStatsInternal
	logger      *zap.Logger
	frames      int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		systems: make([]System, 0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends a system. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once executes all registered systems once with the given delta time and
// returns the finished frame.
func (s *Scheduler) Once(dt time.Duration) *UpdateFrame {
	return s.once(context.Background(), dt)
}

func (s *Scheduler) once(ctx context.Context, dt time.Duration) *UpdateFrame {
	frame := newUpdateFrame(ctx, dt, s.storage)

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

	if frame.Err != nil {
		s.logger.Warn("frame incomplete", zap.Int64("frame", s.frames+1), zap.Error(frame.Err))
	}

	queued := frame.Commands.Len()
	frame.Commands.Flush(s.storage)
	s.frames++

	if ce := s.logger.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(
			zap.Int64("frame", s.frames),
			zap.Duration("dt", dt),
			zap.Int("entities", s.storage.Len()),
			zap.Int("collisions", len(frame.Collisions)),
			zap.Int("commands", queued),
		)
	}

	return frame
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.once(ctx, dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
