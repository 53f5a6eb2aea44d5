package tool

import (
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"polypaint/internal/canvas"
)

// Pencil draws a freehand stroke following the pointer while it is down.
type Pencil struct {
	name  string
	width float64
	color string
	ink   colorful.Color
	dc    *gg.Context

	drawing      bool
	lastX, lastY float64
}

// NewPencil: creates a black pencil of the given width drawing into dc
func NewPencil(name string, width float64, dc *gg.Context) *Pencil {
	p := &Pencil{name: name, width: width, dc: dc}
	p.ChangeColor(DefaultColor)
	return p
}

func (p *Pencil) Name() string   { return p.name }
func (p *Pencil) Width() float64 { return p.width }
func (p *Pencil) Color() string  { return p.color }
func (p *Pencil) Drawing() bool  { return p.drawing }

func (p *Pencil) OnPointerDown(evt canvas.PointerEvent) {
	p.drawing = true
	p.lastX, p.lastY = evt.X, evt.Y
}

func (p *Pencil) OnPointerMove(evt canvas.PointerEvent) {
	if !p.drawing {
		return
	}
	strokeSegment(p.dc, p.width, p.ink, p.lastX, p.lastY, evt.X, evt.Y)
	p.lastX, p.lastY = evt.X, evt.Y
}

func (p *Pencil) OnPointerUp(evt canvas.PointerEvent) {
	if !p.drawing {
		return
	}
	if evt.X != p.lastX || evt.Y != p.lastY {
		strokeSegment(p.dc, p.width, p.ink, p.lastX, p.lastY, evt.X, evt.Y)
	}
	p.drawing = false
}

func (p *Pencil) ChangeWidth(width float64) {
	p.width = width
}

func (p *Pencil) ChangeColor(hex string) {
	ink, ok := parseInk(hex)
	if !ok {
		return
	}
	p.color = hex
	p.ink = ink
}
