package flock

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lucasb-eyer/go-colorful"
)

// Seed creates p.BoidCount agents scattered over the frame.
// Positions are whole numbers in [0, Width-Margin) x [0, Height-Margin),
// each velocity component is drawn from (-MaxSpeed/2, MaxSpeed/2) and the
// colour is a hue picked from the starting x, so the flock starts as a rainbow.
func Seed(p Params, rng *rand.Rand) []Agent {
	spanX := max(1, int(math.Round(p.Width-p.Margin)))
	spanY := max(1, int(math.Round(p.Height-p.Margin)))
	half := p.MaxSpeed / 2

	agents := make([]Agent, max(p.BoidCount, 0))
	for id := range agents {
		pos := geometry.Vector2D{
			X: float64(rng.IntN(spanX)),
			Y: float64(rng.IntN(spanY)),
		}
		vel := geometry.Vector2D{
			X: (rng.Float64()*2 - 1) * half,
			Y: (rng.Float64()*2 - 1) * half,
		}
		agents[id] = Agent{
			ID:    id,
			State: behavior.State{Pos: pos, Vel: vel, Speed: vel.Len()},
			Color: HueColor(pos.X, p.Width),
		}
	}
	return agents
}

// HueColor maps x across [0, width) onto the colour wheel at full saturation.
func HueColor(x, width float64) color.RGBA {
	hue := 0.0
	if width > 0 {
		hue = math.Mod(360/width*x, 360)
	}
	r, g, b := colorful.Hsl(hue, 1, 0.5).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
