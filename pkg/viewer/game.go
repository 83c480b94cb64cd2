// Package viewer is the windowed frontend: an ebiten game that drives the
// engine once per frame and draws the latest snapshot.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

var gridColor = color.RGBA{R: 40, G: 40, B: 60, A: 255}

type Game struct {
	ctx       context.Context
	engine    *simulation.Engine
	frame     *simulation.Frame
	lastState *simulation.Snapshot

	// UI Controls
	panel            *ui.UIPanel
	widgetDrawRadius *ui.Slider
	widgetShowGrid   *ui.Checkbox
	widgetPaused     *ui.Checkbox
	stepRequested    bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame wires a started engine to the window. frame must be the
// FrameSource the engine was started with.
func NewGame(ctx context.Context, engine *simulation.Engine, frame *simulation.Frame) *Game {
	p := engine.Params()
	g := &Game{
		ctx:       ctx,
		engine:    engine,
		frame:     frame,
		lastState: &simulation.Snapshot{Width: p.Width, Height: p.Height, DrawRadius: p.DrawRadius}, // Avoid nil pointer
	}

	panel := ui.NewUIPanel("Flock  [Tab] hide", 10, 10, 240, 230)
	panel.AddSection("Display")
	g.widgetDrawRadius = panel.AddSlider("Draw Radius", 0.5, 10, p.DrawRadius)
	g.widgetShowGrid = panel.AddCheckbox("Show Grid [G]", false)
	panel.EndSection()

	panel.AddSection("Simulation")
	g.widgetPaused = panel.AddCheckbox("Paused [Space]", false)
	panel.AddButton("Step [S]", g.requestStep)
	panel.EndSection()
	g.panel = panel

	return g
}

func (g *Game) requestStep() {
	g.stepRequested = true
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.handleKeys()
	g.panel.Update()

	// A paused simulation only moves when asked to
	if !g.widgetPaused.Value || g.stepRequested {
		g.stepRequested = false
		if _, err := g.engine.Step(g.ctx); err != nil {
			return err
		}
	}

	// Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.engine.Snapshots():
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Visible = !g.panel.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.widgetShowGrid.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.requestStep()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.Black)

	if g.widgetShowGrid.Value {
		g.drawGrid(screen)
	}

	// Draw all boids from the last known snapshot
	radius := float32(g.widgetDrawRadius.Value)
	for _, a := range g.lastState.Agents {
		vector.FillCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), radius, a.Color, false)
	}

	g.panel.Draw(screen)
	g.drawStats(screen)
}

// drawGrid shows the spatial hash cells the last tick used
func (g *Game) drawGrid(screen *ebiten.Image) {
	cell := g.lastState.CellSize
	if cell <= 0 {
		return
	}
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	for x := cell; x < float64(w); x += cell {
		vector.StrokeLine(screen, float32(x), 0, float32(x), h, 1, gridColor, false)
	}
	for y := cell; y < float64(h); y += cell {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, gridColor, false)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	state := "running"
	if g.widgetPaused.Value {
		state = "paused"
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d (%s)\nBoids: %d\nFrame: %.0fx%.0f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick, state,
		len(g.lastState.Agents),
		g.lastState.Width, g.lastState.Height,
		g.updateAvg,
		g.drawAvg)
	// Print stats on the right side, away from the panel
	ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-160, 10)
}

// Layout follows the window: the flock lives in whatever size it is given.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.frame.Set(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
