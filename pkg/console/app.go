package console

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

// App runs the engine in a terminal until the user quits.
type App struct {
	screen   tcell.Screen
	engine   *simulation.Engine
	renderer *Renderer
	logger   golog.Logger
	interval time.Duration

	paused        bool
	stepRequested bool
	lastState     *simulation.Snapshot
	lastTick      uint64
}

// NewApp binds an initialised screen to a started engine. The renderer must
// publish its size to the Frame the engine was started with.
func NewApp(screen tcell.Screen, engine *simulation.Engine, renderer *Renderer, logger golog.Logger, interval time.Duration) *App {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	if interval <= 0 {
		interval = 16 * time.Millisecond // ~60 FPS
	}
	return &App{
		screen:   screen,
		engine:   engine,
		renderer: renderer,
		logger:   logger,
		interval: interval,
	}
}

// Run ticks and draws until Esc, q or Ctrl-C, or until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eventChan := make(chan tcell.Event, 100)
	go pollEvents(ctx, a.screen, eventChan)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventChan:
			if !ok || !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := a.frame(ctx); err != nil {
				return err
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalised, when it
// closes events, or until ctx is done.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// frame advances the simulation unless paused, then redraws.
func (a *App) frame(ctx context.Context) error {
	if !a.paused || a.stepRequested {
		a.stepRequested = false
		tick, err := a.engine.Step(ctx)
		if err != nil {
			return err
		}
		a.lastTick = tick
	}
	select {
	case snap := <-a.engine.Snapshots():
		a.lastState = snap
	default:
	}
	a.renderer.Draw(a.lastState, a.status())
	return nil
}

func (a *App) status() string {
	state := "running"
	if a.paused {
		state = "paused"
	}
	boids := 0
	if a.lastState != nil {
		boids = len(a.lastState.Agents)
	}
	w, h := a.renderer.FrameSize()
	return fmt.Sprintf(" tick %d (%s) | boids %d | frame %.0fx%.0f | [space] pause [s] step [q] quit",
		a.lastTick, state, boids, w, h)
}

// handleEvent reacts to one terminal event, it returns false to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				a.paused = !a.paused
			case 's', 'S':
				a.stepRequested = true
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Resize()
		w, h := a.renderer.FrameSize()
		a.logger.Debugf("terminal resized, frame is now %.0fx%.0f", w, h)
	}
	return true
}
