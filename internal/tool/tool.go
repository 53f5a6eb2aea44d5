// Package tool defines the capability contract every drawing tool satisfies
// and the stock tools: pencil, eraser, line, rectangle and ellipse.
//
// Tools share no base state. Each owns its stroke width and colour and
// renders straight into the gg context it was built with.
package tool

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"polypaint/internal/canvas"
)

// Tool is the capability contract the controller routes input to.
type Tool interface {
	OnPointerDown(evt canvas.PointerEvent)
	OnPointerMove(evt canvas.PointerEvent)
	OnPointerUp(evt canvas.PointerEvent)
	ChangeWidth(width float64)
	ChangeColor(hex string)
}

// Named is implemented by tools that can be selected by name.
type Named interface {
	Name() string
}

// NameOf returns t's name, or "" when t is not Named.
func NameOf(t Tool) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return ""
}

const DefaultColor = "#000000"

// parseInk: hex -> colour, ok=false leaves the caller's ink untouched
func parseInk(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c.Clamped(), true
}

// strokeSegment: round-capped line from (x0,y0) to (x1,y1)
func strokeSegment(dc *gg.Context, width float64, ink color.Color, x0, y0, x1, y1 float64) {
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetColor(ink)
	dc.MoveTo(x0, y0)
	dc.LineTo(x1, y1)
	_ = dc.Stroke()
}
