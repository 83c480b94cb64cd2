package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/console"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func main() {
	opts := cli.Register(flag.CommandLine)
	logFile := flag.String("log", "", "write logs to this file, stdout belongs to the screen")
	scale := flag.Float64("scale", 4, "world units per terminal column")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	if err := run(opts, *logFile, *scale, *fps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *cli.Options, logFile string, scale float64, fps int) error {
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := opts.Logger(out)

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// the renderer sizes the frame from the terminal before the first tick
	frame := simulation.NewFrame(cfg.WorldWidth, cfg.WorldHeight)
	renderer := console.NewRenderer(screen, scale, frame)
	cfg.WorldWidth, cfg.WorldHeight = frame.FrameSize()

	ctx := context.Background()
	engine, err := simulation.Start(ctx, cfg, frame, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Stop(ctx); err != nil {
			logger.Errorf("failed to stop the actor system: %v", err)
		}
	}()

	interval := time.Second / time.Duration(max(fps, 1))
	return console.NewApp(screen, engine, renderer, logger, interval).Run(ctx)
}
