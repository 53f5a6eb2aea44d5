package handlers

import (
	"fmt"

	"polypaint/internal/canvas"
	"polypaint/internal/message"
	"polypaint/internal/paint"
)

// PropertyHandler: writes property-panel values into a board's fields
type PropertyHandler struct{}

func NewPropertyHandler() *PropertyHandler {
	return &PropertyHandler{}
}

// Handle sets the field and fires its change listeners. The value is passed
// through raw; a rejected value is not an error and sends no reply.
func (h *PropertyHandler) Handle(b Board, fieldID string, p *message.Property) error {
	var err error
	b.Do(func(s *canvas.Surface, _ *paint.Controller) {
		field, ok := s.Field(fieldID)
		if !ok {
			err = fmt.Errorf("%w: %s", paint.ErrMissingField, fieldID)
			return
		}
		field.Set(p.Value)
		field.Change()
	})
	return err
}
