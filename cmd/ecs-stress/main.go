// Command ecs-stress measures step and collision throughput on a store
// filled with random moving boxes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/hewn/config"
	"github.com/plus3/hewn/ecs"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 1000, "The initial number of entities to create.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Goroutines for the collision pass, 1 is serial.")
	churn := flag.Int("churn", 0, "Entities deleted and respawned every frame.")
	seed := flag.Int64("seed", 1, "Random seed for the initial population.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the current directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log every frame.")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := config.NewLogger(config.LoggingConfig{Level: level, Format: "console", Path: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	logger.Info("starting ECS stress test")

	storage := ecs.NewStorage()
	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(logger))
	collisions := &ecs.CollisionSystem{Workers: *workers}
	scheduler.Register(ecs.StepSystem{})
	scheduler.Register(collisions)

	rng := rand.New(rand.NewSource(*seed))
	if *churn > 0 {
		scheduler.Register(&churnSystem{count: *churn, rng: rng})
	}

	logger.Info("populating storage", zap.Int("entities", *entityCount))
	for range *entityCount {
		storage.Spawn(randomBox(rng))
	}

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Workers:        *workers,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			frame := scheduler.Once(deltaTime)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
			report.TotalCollisions += int64(len(frame.Collisions))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.GetStats()
	report.Storage = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// randomBox returns a small box somewhere in a 1000x1000 field, moving at
// up to 5 cells per second on each axis.
func randomBox(rng *rand.Rand) ecs.Components {
	return ecs.Components{}.
		WithPosition(rng.Float64()*1000, rng.Float64()*1000).
		WithVelocity(rng.Float64()*10-5, rng.Float64()*10-5).
		WithSize(1+rng.Float64()*4, 1+rng.Float64()*4)
}

// churnSystem replaces the oldest entities with fresh ones through the
// frame's command buffer.
type churnSystem struct {
	count int
	rng   *rand.Rand
}

func (c *churnSystem) Execute(frame *ecs.UpdateFrame) {
	n := 0
	for e := range frame.Storage.All() {
		if n == c.count {
			break
		}
		frame.Commands.Delete(e.Id)
		frame.Commands.Spawn(randomBox(c.rng))
		n++
	}
	frame.Commands.Defer(frame.Storage.Compact)
}
