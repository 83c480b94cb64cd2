package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/viewer"
)

func main() {
	opts := cli.Register(flag.CommandLine)
	flag.Parse()
	logger := opts.Logger(os.Stdout)

	cfg, err := opts.Config()
	if err != nil {
		logger.Fatalf("💥 configuration error: %v", err)
	}

	ctx := context.Background()
	frame := simulation.NewFrame(cfg.WorldWidth, cfg.WorldHeight)
	engine, err := simulation.Start(ctx, cfg, frame, logger)
	if err != nil {
		logger.Fatalf("💥 failed to start the simulation: %v", err)
	}
	defer func() {
		if err := engine.Stop(ctx); err != nil {
			logger.Errorf("failed to stop the actor system: %v", err)
		}
	}()

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flock: boids with a spatial hash")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := viewer.NewGame(ctx, engine, frame)
	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("💥 game stopped: %v", err)
	}
}
