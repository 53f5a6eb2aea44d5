package handlers

import (
	"errors"
	"fmt"

	"polypaint/internal/canvas"
	"polypaint/internal/message"
	"polypaint/internal/paint"
)

// ToolHandler handles tool selection and listing
type ToolHandler struct {
	validator *message.Validator
}

func NewToolHandler(validator *message.Validator) *ToolHandler {
	return &ToolHandler{validator: validator}
}

// HandleSelect: selects the named tool and confirms the new current tool
func (h *ToolHandler) HandleSelect(b Board, out Responder, sel *message.SelectTool) error {
	var err error
	b.Do(func(_ *canvas.Surface, c *paint.Controller) {
		err = c.SelectToolByName(sel.Name)
	})
	if err != nil {
		if errors.Is(err, paint.ErrUnknownTool) {
			return fmt.Errorf("%w: %s", paint.ErrUnknownTool, h.validator.Sanitize(sel.Name))
		}
		return fmt.Errorf("select tool: %w", err)
	}

	_, current := b.ToolNames()
	return out.WriteJSON(message.ToolSelected{
		Type:    message.TypeToolSelected,
		Current: h.validator.Sanitize(current),
	})
}

// HandleList: replies with the board's tool names
func (h *ToolHandler) HandleList(b Board, out Responder) error {
	names, current := b.ToolNames()
	return out.WriteJSON(message.ToolList{
		Type:    message.TypeToolList,
		Tools:   h.validator.SanitizeAll(names),
		Current: h.validator.Sanitize(current),
	})
}
