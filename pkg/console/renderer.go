// Package console is the terminal frontend: it draws snapshots with tcell
// and reports the terminal size, scaled to world units, as the flock frame.
package console

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// cellAspect is how many world units a terminal row covers per column unit:
// terminal cells are about twice as tall as they are wide.
const cellAspect = 2.0

// densityGlyphs show how many boids share a cell: 1, 2, 3-4, 5 and more.
var densityGlyphs = []rune{'.', 'o', 'O', '@'}

var statusStyle = tcell.StyleDefault.Reverse(true)

// Renderer draws the flock on a terminal screen. Row 0 is the status line,
// the flock is drawn on the rows below it.
type Renderer struct {
	screen tcell.Screen
	scale  float64 // world units per column
	frame  *simulation.Frame

	cols, rows int
	counts     []int
	styles     []tcell.Style
}

// NewRenderer sizes the renderer from the screen and publishes the matching frame.
func NewRenderer(screen tcell.Screen, scale float64, frame *simulation.Frame) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	r := &Renderer{screen: screen, scale: scale, frame: frame}
	r.Resize()
	return r
}

// Resize reads the screen size again, after a terminal resize event.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.cols, r.rows = max(w, 0), max(h-1, 0)
	n := r.cols * r.rows
	if cap(r.counts) < n {
		r.counts = make([]int, n)
		r.styles = make([]tcell.Style, n)
	}
	r.counts, r.styles = r.counts[:n], r.styles[:n]
	if r.frame != nil && n > 0 {
		r.frame.Set(r.FrameSize())
	}
}

// FrameSize is the world area the terminal can show.
func (r *Renderer) FrameSize() (width, height float64) {
	return float64(r.cols) * r.scale, float64(r.rows) * r.scale * cellAspect
}

// CellOf maps a world position to a terminal cell of the flock area.
// ok is false for positions outside the area, which happens for one tick
// after the terminal shrinks.
func (r *Renderer) CellOf(p geometry.Vector2D) (x, y int, ok bool) {
	x = int(p.X / r.scale)
	y = int(p.Y / (r.scale * cellAspect))
	ok = p.X >= 0 && p.Y >= 0 && x < r.cols && y < r.rows
	return x, y, ok
}

// Draw paints snap, then status on the top line, and shows the result.
func (r *Renderer) Draw(snap *simulation.Snapshot, status string) {
	r.screen.Clear()
	clear(r.counts)

	if snap != nil {
		for _, a := range snap.Agents {
			x, y, ok := r.CellOf(a.Pos)
			if !ok {
				continue
			}
			i := y*r.cols + x
			r.counts[i]++
			r.styles[i] = tcell.StyleDefault.Foreground(tcell.FromImageColor(a.Color))
		}
	}
	for i, n := range r.counts {
		if n == 0 {
			continue
		}
		r.screen.SetContent(i%r.cols, i/r.cols+1, glyph(n), nil, r.styles[i])
	}

	r.drawStatus(status)
	r.screen.Show()
}

func (r *Renderer) drawStatus(status string) {
	x := 0
	for _, ch := range status {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, 0, ch, nil, statusStyle)
		x++
	}
	for ; x < r.cols; x++ {
		r.screen.SetContent(x, 0, ' ', nil, statusStyle)
	}
}

func glyph(n int) rune {
	switch {
	case n <= 1:
		return densityGlyphs[0]
	case n == 2:
		return densityGlyphs[1]
	case n <= 4:
		return densityGlyphs[2]
	default:
		return densityGlyphs[3]
	}
}
