package tool

import (
	"github.com/gogpu/gg"

	"polypaint/internal/canvas"
)

// Eraser paints the surface background colour along the pointer path.
// Colour changes are accepted and remembered but never used as ink.
type Eraser struct {
	name  string
	width float64
	color string
	dc    *gg.Context

	erasing      bool
	lastX, lastY float64
}

// NewEraser: creates an eraser of the given width working on dc
func NewEraser(name string, width float64, dc *gg.Context) *Eraser {
	return &Eraser{name: name, width: width, color: DefaultColor, dc: dc}
}

func (e *Eraser) Name() string   { return e.name }
func (e *Eraser) Width() float64 { return e.width }
func (e *Eraser) Color() string  { return e.color }

func (e *Eraser) OnPointerDown(evt canvas.PointerEvent) {
	e.erasing = true
	e.lastX, e.lastY = evt.X, evt.Y
	strokeSegment(e.dc, e.width, canvas.Background.Color(), evt.X, evt.Y, evt.X, evt.Y)
}

func (e *Eraser) OnPointerMove(evt canvas.PointerEvent) {
	if !e.erasing {
		return
	}
	strokeSegment(e.dc, e.width, canvas.Background.Color(), e.lastX, e.lastY, evt.X, evt.Y)
	e.lastX, e.lastY = evt.X, evt.Y
}

func (e *Eraser) OnPointerUp(evt canvas.PointerEvent) {
	if !e.erasing {
		return
	}
	strokeSegment(e.dc, e.width, canvas.Background.Color(), e.lastX, e.lastY, evt.X, evt.Y)
	e.erasing = false
}

func (e *Eraser) ChangeWidth(width float64) {
	e.width = width
}

func (e *Eraser) ChangeColor(hex string) {
	e.color = hex
}
