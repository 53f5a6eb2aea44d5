package tool

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"polypaint/internal/canvas"
)

// ShapeKind selects the outline a Shape tool draws.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeRectangle
	ShapeEllipse
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeLine:
		return "line"
	case ShapeRectangle:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// Shape drags out an outline from the pointer-down anchor and commits it to
// the surface on pointer-up.
type Shape struct {
	name  string
	kind  ShapeKind
	width float64
	color string
	ink   colorful.Color
	dc    *gg.Context

	dragging   bool
	anchorX    float64
	anchorY    float64
	curX, curY float64
}

// NewShape: creates a black outline tool of the given kind
func NewShape(name string, kind ShapeKind, width float64, dc *gg.Context) *Shape {
	s := &Shape{name: name, kind: kind, width: width, dc: dc}
	s.ChangeColor(DefaultColor)
	return s
}

func NewLine(name string, width float64, dc *gg.Context) *Shape {
	return NewShape(name, ShapeLine, width, dc)
}

func NewRectangle(name string, width float64, dc *gg.Context) *Shape {
	return NewShape(name, ShapeRectangle, width, dc)
}

func NewEllipse(name string, width float64, dc *gg.Context) *Shape {
	return NewShape(name, ShapeEllipse, width, dc)
}

func (s *Shape) Name() string    { return s.name }
func (s *Shape) Kind() ShapeKind { return s.kind }
func (s *Shape) Width() float64  { return s.width }
func (s *Shape) Color() string   { return s.color }

func (s *Shape) OnPointerDown(evt canvas.PointerEvent) {
	s.dragging = true
	s.anchorX, s.anchorY = evt.X, evt.Y
	s.curX, s.curY = evt.X, evt.Y
}

func (s *Shape) OnPointerMove(evt canvas.PointerEvent) {
	if !s.dragging {
		return
	}
	s.curX, s.curY = evt.X, evt.Y
}

func (s *Shape) OnPointerUp(evt canvas.PointerEvent) {
	if !s.dragging {
		return
	}
	s.curX, s.curY = evt.X, evt.Y
	s.dragging = false
	s.commit()
}

func (s *Shape) ChangeWidth(width float64) {
	s.width = width
}

func (s *Shape) ChangeColor(hex string) {
	ink, ok := parseInk(hex)
	if !ok {
		return
	}
	s.color = hex
	s.ink = ink
}

func (s *Shape) commit() {
	if s.kind == ShapeLine {
		strokeSegment(s.dc, s.width, s.ink, s.anchorX, s.anchorY, s.curX, s.curY)
		return
	}

	x, y := math.Min(s.anchorX, s.curX), math.Min(s.anchorY, s.curY)
	w, h := math.Abs(s.curX-s.anchorX), math.Abs(s.curY-s.anchorY)
	if w == 0 || h == 0 {
		return
	}

	s.dc.SetLineWidth(s.width)
	s.dc.SetLineJoin(gg.LineJoinMiter)
	s.dc.SetColor(s.ink)
	switch s.kind {
	case ShapeRectangle:
		s.dc.DrawRectangle(x, y, w, h)
	case ShapeEllipse:
		s.dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	}
	_ = s.dc.Stroke()
}
