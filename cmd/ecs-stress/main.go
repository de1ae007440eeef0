package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/entstore/ecs"
	"github.com/sirupsen/logrus"
)

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func main() {
	log := logrus.New()

	// Environment (and an optional .env file) supplies flag defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Fatal("Failed to load .env")
	}

	duration := flag.Duration("duration", envDuration("ECS_STRESS_DURATION", 10*time.Second), "The total duration the test should run for.")
	entityCount := flag.Int("entities", envInt("ECS_STRESS_ENTITIES", 10000), "The initial number of entities to create.")
	opsPerFrame := flag.Int("ops", envInt("ECS_STRESS_OPS", 1000), "Random operations issued per frame.")
	seed := flag.Int64("seed", int64(envInt("ECS_STRESS_SEED", int(time.Now().UnixNano()))), "Random seed.")
	level := flag.String("log-level", envString("ECS_STRESS_LOG_LEVEL", "info"), "Log level (debug logs every rejected operation).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		log.WithError(err).Fatal("Invalid log level")
	}
	log.SetLevel(lvl)

	log.WithField("seed", *seed).Info("Starting ECS stress test...")

	manager := ecs.NewManager(ecs.WithLogger(log), ecs.WithCapacity(*entityCount))
	churn := NewChurn(manager, *seed, log)

	log.WithField("entities", *entityCount).Info("Populating manager...")
	churn.Populate(*entityCount)
	if err := churn.Verify(); err != nil {
		log.WithError(err).Fatal("Invariant violated after population")
	}
	log.Info("Population complete.")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		OpsPerFrame:    *opsPerFrame,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("duration", *duration).Info("Running churn...")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalFrames int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			churn.Frame(*opsPerFrame)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(frameStart))

			if err := churn.Verify(); err != nil {
				log.WithError(err).WithField("frame", totalFrames).Fatal("Invariant violated")
			}
			totalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = totalFrames
	report.Ops = churn.Ops
	report.Final = manager.CollectStats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("Churn finished.")

	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("Failed to generate report")
	}

	log.Info("Stress test complete.")
}
