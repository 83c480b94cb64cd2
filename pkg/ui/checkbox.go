package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var defaultCheckColor = color.RGBA{R: 100, G: 200, B: 100, A: 255}

// Checkbox is a boolean toggle, clicked with the mouse or flipped by a shortcut
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64

	CheckColor  color.RGBA
	BorderColor color.RGBA

	held bool
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label:       label,
		Value:       value,
		X:           x,
		Y:           y,
		Size:        16,
		CheckColor:  defaultCheckColor,
		BorderColor: defaultEdgeColor,
	}
}

func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.press(c.Contains(float64(mx), float64(my)) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// press toggles the value on the first frame of a press only,
// holding the button down does not flicker it
func (c *Checkbox) press(down bool) {
	if down && !c.held {
		c.Toggle()
	}
	c.held = down
}

// Toggle flips the value, for keyboard shortcuts
func (c *Checkbox) Toggle() {
	c.Value = !c.Value
}

// Contains reports whether the point is on the box
func (c *Checkbox) Contains(x, y float64) bool {
	return x >= c.X && x <= c.X+c.Size && y >= c.Y && y <= c.Y+c.Size
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	x, y, s := float32(c.X), float32(c.Y), float32(c.Size)
	vector.StrokeRect(screen, x, y, s, s, 2, c.BorderColor, true)
	if c.Value {
		vector.FillRect(screen, x+2, y+2, s-4, s-4, c.CheckColor, true)
	}
}
