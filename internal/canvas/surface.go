// Package canvas provides the drawing surface: a pixel-addressable gg
// context, the pointer listeners attached to it, and the property-panel
// fields that sit next to it.
//
// A Surface is not safe for concurrent use. Callers that share one across
// goroutines serialise access themselves (see board.Board).
package canvas

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gg"
)

// Property-panel field ids, by convention.
const (
	WidthFieldID = "input-width"
	ColorFieldID = "input-color"
)

// Background is the colour a freshly loaded surface is cleared to.
var Background = gg.White

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

// Surface: drawing canvas plus its pointer listener registry
type Surface struct {
	width    int
	height   int
	dc       *gg.Context
	handlers map[PointerKind][]pointerHandler
	fields   map[string]*Field
	nextID   uint32
}

// NewSurface: wraps an existing rendering context
func NewSurface(dc *gg.Context) *Surface {
	return &Surface{
		width:    dc.Width(),
		height:   dc.Height(),
		dc:       dc,
		handlers: make(map[PointerKind][]pointerHandler),
		fields:   make(map[string]*Field),
	}
}

// Load acquires a width x height surface cleared to Background, with the
// width and colour fields already in place, and returns it together with
// its 2D rendering context.
func Load(width, height int) (*Surface, *gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(Background)

	s := NewSurface(dc)
	s.AddField(NewField(WidthFieldID))
	s.AddField(NewField(ColorFieldID))
	return s, dc, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Context returns the 2D rendering context tools draw into.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// AddField: attaches a property field, replacing any field with the same id
func (s *Surface) AddField(f *Field) {
	s.fields[f.ID()] = f
}

// Field: looks up a property field by id
func (s *Surface) Field(id string) (*Field, bool) {
	f, ok := s.fields[id]
	return f, ok
}

// OnPointer: registers fn for pointer events of the given kind
func (s *Surface) OnPointer(kind PointerKind, fn func(PointerEvent)) Listener {
	s.nextID++
	id := s.nextID
	s.handlers[kind] = append(s.handlers[kind], pointerHandler{id: id, fn: fn})
	return Listener{id: id, remove: s.removeHandler}
}

// Dispatch delivers evt to every listener registered for evt.Kind, in
// registration order. Each listener runs to completion before the next.
func (s *Surface) Dispatch(evt PointerEvent) {
	registered := s.handlers[evt.Kind]
	handlers := make([]pointerHandler, len(registered))
	copy(handlers, registered)

	for _, h := range handlers {
		h.fn(evt)
	}
}

// ListenerCount returns the number of live pointer listeners of a kind.
func (s *Surface) ListenerCount(kind PointerKind) int {
	return len(s.handlers[kind])
}

// At returns the colour of the pixel at (x, y).
func (s *Surface) At(x, y int) color.Color {
	return s.dc.Image().At(x, y)
}

// EncodePNG writes the current pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode surface png: %w", err)
	}
	return nil
}

func (s *Surface) removeHandler(id uint32) {
	for kind, handlers := range s.handlers {
		for i, h := range handlers {
			if h.id == id {
				s.handlers[kind] = append(handlers[:i], handlers[i+1:]...)
				return
			}
		}
	}
}
