// Command tetrino-bench runs the board, redraw and piece systems headless and reports frame
// timings. Every frame it edits random cells and sends a mix of per-cell and full redraws.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/logging"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 5*time.Second, "How long to run.")
	edits := flag.Int("edits", 8, "Board cells changed per frame.")
	fullEvery := flag.Int("full-every", 30, "Send a full redraw every N frames (0 disables).")
	respawnEvery := flag.Int("respawn-every", 120, "Respawn the piece every N frames (0 disables).")
	seed := flag.Uint64("seed", 1, "Random seed for edits and piece colors.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	flag.Parse()

	logger, closeLog, err := logging.Stderr(config.LogConfig{Level: "info"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	registry, err := texture.Load(counter(), texture.DefaultPaths())
	if err != nil {
		logger.Fatal("load textures", zap.Error(err))
	}

	rng := tetrino.NewRandom(*seed)
	world := tetrino.NewWorld(registry, tetrino.Options{
		Random: tetrino.NewRandom(*seed + 1),
	})
	world.Step(0)

	report := &Report{
		Duration:     *duration,
		Edits:        *edits,
		FullEvery:    *fullEvery,
		RespawnEvery: *respawnEvery,
		Seed:         *seed,

		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running", zap.Duration("duration", *duration), zap.Int("edits", *edits))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	last := start
	var frame int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		for range *edits {
			x, y := rng.IntN(board.Width), rng.IntN(board.Height)
			cell := board.Empty
			if rng.IntN(2) == 0 {
				cell = board.Filled(tetrino.PickColor(rng))
			}
			world.SetCell(x, y, cell)
			report.CellRedraws++
		}
		if *fullEvery > 0 && frame%int64(*fullEvery) == 0 {
			world.RequestRedraw(tetrino.RedrawAll())
			report.FullRedraws++
		}
		if *respawnEvery > 0 && frame > 0 && frame%int64(*respawnEvery) == 0 {
			world.Respawn()
			report.Respawns++
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		frame++
	}

	report.TotalTime = time.Since(start)
	report.TotalUpdates = frame
	report.UpdateTime.Finalize()
	report.Systems = world.Scheduler.GetStats().Systems
	report.Entities = world.Storage.CollectStats().TotalEntityCount
	report.Occupied = world.Board().Occupied()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
}

// counter hands out a fresh handle per path without touching the disk.
func counter() texture.Loader {
	var next texture.Handle
	return texture.LoaderFunc(func(string) (texture.Handle, error) {
		next++
		return next, nil
	})
}
