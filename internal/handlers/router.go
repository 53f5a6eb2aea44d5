package handlers

import (
	"errors"
	"fmt"

	"polypaint/internal/canvas"
	"polypaint/internal/message"
)

var ErrAlreadyOpen = errors.New("board already open on this connection")

// MessageRouter routes incoming messages to appropriate handlers
type MessageRouter struct {
	validator       *message.Validator
	pointerHandler  *PointerHandler
	propertyHandler *PropertyHandler
	toolHandler     *ToolHandler
}

func NewMessageRouter(validator *message.Validator) *MessageRouter {
	return &MessageRouter{
		validator:       validator,
		pointerHandler:  NewPointerHandler(),
		propertyHandler: NewPropertyHandler(),
		toolHandler:     NewToolHandler(validator),
	}
}

// Route: process a message via appropriate handler
func (mr *MessageRouter) Route(b Board, out Responder, msg []byte) error {
	m, err := mr.validator.Decode(msg)
	if err != nil {
		return err
	}

	switch body := m.Body.(type) {
	case *message.Pointer:
		mr.pointerHandler.Handle(b, pointerKind(m.Type), body)
		return nil
	case *message.Property:
		if m.Type == message.TypeWidth {
			return mr.propertyHandler.Handle(b, canvas.WidthFieldID, body)
		}
		return mr.propertyHandler.Handle(b, canvas.ColorFieldID, body)
	case *message.SelectTool:
		return mr.toolHandler.HandleSelect(b, out, body)
	case *message.Tools:
		return mr.toolHandler.HandleList(b, out)
	case *message.Open:
		return ErrAlreadyOpen
	default:
		return fmt.Errorf("%w: %s", message.ErrUnknownType, m.Type)
	}
}

func pointerKind(msgType string) canvas.PointerKind {
	switch msgType {
	case message.TypePointerDown:
		return canvas.PointerDown
	case message.TypePointerMove:
		return canvas.PointerMove
	default:
		return canvas.PointerUp
	}
}
