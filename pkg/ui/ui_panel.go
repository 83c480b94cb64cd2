package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 {
	return s.H + 25 // Slider height + label space
}

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 5 // Checkbox size + small margin
}

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 20 // Button height + label space
}

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	Title         string
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Visible       bool
	Widgets       []UIWidget
	Labels        []string // Labels for widgets
	ScrollOffset  float64  // Current scroll position

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
	AccentColor color.RGBA // checkbox fill and button background of added widgets

	sections []PanelSection
}

// PanelSection groups consecutive widgets under a header
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new, visible UI panel
func NewUIPanel(title string, x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		AccentColor: defaultCheckColor,
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	yOffset := p.calculateNextYOffset()
	slider := NewSlider(p.X+10, p.Y+yOffset+20, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	yOffset := p.calculateNextYOffset()
	checkbox := NewCheckbox(p.X+10, p.Y+yOffset+20, label, value)
	checkbox.CheckColor = p.AccentColor
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a full width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	yOffset := p.calculateNextYOffset()
	button := NewButton(p.X+10, p.Y+yOffset+20, p.Width-20, 20, label, onClick)
	button.BGColor = p.AccentColor
	p.add(&ButtonWrapper{button}, label)
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
}

// calculateNextYOffset calculates the Y offset for the next widget
func (p *UIPanel) calculateNextYOffset() float64 {
	offset := float64(len(p.sections)) * 25
	for _, widget := range p.Widgets {
		offset += widget.GetHeight()
	}
	return offset
}

// Contains reports whether the point is over the visible panel,
// so the caller can ignore clicks meant for the widgets.
func (p *UIPanel) Contains(x, y float64) bool {
	return p.Visible && x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	if !p.Visible {
		return
	}
	// Handle scroll
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.Scroll(dy * 20)
	}
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// Scroll moves the content by delta pixels, staying inside the content
func (p *UIPanel) Scroll(delta float64) {
	maxScroll := max(p.calculateTotalHeight()-p.Height+40, 0)
	p.ScrollOffset = max(0, min(p.ScrollOffset-delta, maxScroll))
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	// Draw widgets with clipping and scrolling
	currentY := p.Y + 30 - p.ScrollOffset
	widgetIdx := 0

	for sectionIdx, section := range p.sections {
		if currentY >= p.Y-25 && currentY <= p.Y+p.Height {
			sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
			vector.FillRect(screen,
				float32(p.X+5), float32(currentY),
				float32(p.Width-10), 20,
				sectionBG, true)
			ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(currentY+5))
		}
		currentY += 25

		for widgetIdx < section.EndIndex && widgetIdx < len(p.Widgets) {
			widget := p.Widgets[widgetIdx]

			// Only draw if visible
			if currentY >= p.Y-30 && currentY <= p.Y+p.Height {
				if _, isButton := widget.(*ButtonWrapper); !isButton {
					ebitenutil.DebugPrintAt(screen, p.Labels[widgetIdx], int(p.X+10), int(currentY))
				}
				p.adjustWidgetPosition(widget, currentY+15)
				widget.Draw(screen)
			}

			currentY += widget.GetHeight()
			widgetIdx++
		}

		if sectionIdx < len(p.sections)-1 {
			widgetIdx = p.sections[sectionIdx+1].StartIndex
		}
	}
}

// adjustWidgetPosition moves a widget to where it is drawn after scrolling,
// so its hit box follows what the user sees
func (p *UIPanel) adjustWidgetPosition(widget UIWidget, newY float64) {
	switch w := widget.(type) {
	case *SliderWrapper:
		w.Y = newY
	case *CheckboxWrapper:
		w.Y = newY
	case *ButtonWrapper:
		w.Y = newY
	}
}

// calculateTotalHeight calculates the total content height
func (p *UIPanel) calculateTotalHeight() float64 {
	return 30 + p.calculateNextYOffset() // Title space + sections + widgets
}
