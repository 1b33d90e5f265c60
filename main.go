package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/renderer"
	"github.com/pthm-cable/ecosim/sim"
)

func main() {
	if err := run(); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	width := flag.Int("width", 0, "Grid width (0 = use config, default 40)")
	height := flag.Int("height", 0, "Grid height (0 = use config, default 20)")
	days := flag.Int("days", 30, "Number of simulated days to run")
	speed := flag.Duration("speed", 200*time.Millisecond, "Wall-clock delay per simulated hour")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	noRender := flag.Bool("no-render", false, "Run without drawing or pacing (headless)")

	flag.Parse()

	// Stdout belongs to the grid view, so logs go to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := config.Cfg()

	w, h := *width, *height
	if w <= 0 {
		w = cfg.World.Width
	}
	if h <= 0 {
		h = cfg.World.Height
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s, err := sim.New(sim.Options{
		Width:       w,
		Height:      h,
		Seed:        rngSeed,
		OutputDir:   *outputDir,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Warn("closing output failed", "error", err)
		}
	}()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"width", w,
		"height", h,
		"days", *days,
		"render", !*noRender,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := renderer.NewASCII()
	draw := func() {
		if *noRender {
			return
		}
		if err := view.Draw(os.Stdout, s); err != nil {
			slog.Warn("render failed", "error", err)
		}
	}

	interrupted := false
loop:
	for s.Day() < *days {
		draw()
		s.Update()

		if *noRender {
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			continue
		}

		select {
		case <-ctx.Done():
			interrupted = true
			break loop
		case <-time.After(*speed):
		}
	}

	draw()
	if interrupted {
		fmt.Println("\nSimulation terminated by user.")
	} else {
		fmt.Println("\nSimulation complete!")
	}

	slog.Info("simulation finished",
		"tick", s.Tick(),
		"day", s.Day(),
		"plants", s.Stats().PlantCount,
		"interrupted", interrupted,
	)
	return nil
}
