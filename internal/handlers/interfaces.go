package handlers

import (
	"polypaint/internal/canvas"
	"polypaint/internal/paint"
)

// Board defines what handlers need from a live board
type Board interface {
	Do(fn func(*canvas.Surface, *paint.Controller))
	ToolNames() ([]string, string)
}

// Responder sends a reply frame to the client driving the board
type Responder interface {
	WriteJSON(v interface{}) error
}
