package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	defaultButtonColor = color.RGBA{R: 80, G: 120, B: 180, A: 255}
	defaultHoverColor  = color.RGBA{R: 100, G: 150, B: 220, A: 255}
	defaultEdgeColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Button runs OnClick once per mouse click inside it
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	OnClick func()

	BGColor     color.RGBA
	HoverColor  color.RGBA
	BorderColor color.RGBA

	held bool
}

// NewButton creates a button with the default colours, a panel restyles it
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:       label,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		OnClick:     onClick,
		BGColor:     defaultButtonColor,
		HoverColor:  defaultHoverColor,
		BorderColor: defaultEdgeColor,
	}
}

func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.press(b.Contains(float64(mx), float64(my)) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// press fires OnClick on the first frame the button is held down
func (b *Button) press(down bool) {
	if down && !b.held && b.OnClick != nil {
		b.OnClick()
	}
	b.held = down
}

func (b *Button) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	bg := b.BGColor
	if b.Contains(float64(mx), float64(my)) {
		bg = b.HoverColor
	}

	x, y, w, h := float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height)
	vector.FillRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, b.BorderColor, true)

	// debug font glyphs are 6x16
	tx := b.X + (b.Width-float64(len(b.Label)*6))/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(b.Y+b.Height/2-8))
}

// Contains reports whether the point is inside the button
func (b *Button) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}
