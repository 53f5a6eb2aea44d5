package handlers

import (
	"polypaint/internal/canvas"
	"polypaint/internal/message"
	"polypaint/internal/paint"
)

// PointerHandler: replays pointer frames on a board's surface
type PointerHandler struct{}

func NewPointerHandler() *PointerHandler {
	return &PointerHandler{}
}

// Handle dispatches p as a kind event; the controller's listeners take it from there.
func (h *PointerHandler) Handle(b Board, kind canvas.PointerKind, p *message.Pointer) {
	evt := p.Event(kind)
	b.Do(func(s *canvas.Surface, _ *paint.Controller) {
		s.Dispatch(evt)
	})
}
