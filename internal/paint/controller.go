// Package paint holds the controller that sits between raw input and the
// active drawing tool. It routes pointer events verbatim, guards width and
// colour changes with validators, and manages which tool is active.
//
// A Controller is driven from a single goroutine, the same one that
// dispatches events on its surface.
package paint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"polypaint/internal/canvas"
	"polypaint/internal/tool"
	"polypaint/internal/validate"
)

// Width bounds accepted from the property panel, inclusive.
const (
	MinWidth = 0
	MaxWidth = 10
)

var (
	ErrNilSurface   = errors.New("surface is nil")
	ErrNoTools      = errors.New("at least one tool is required")
	ErrNilTool      = errors.New("tool is nil")
	ErrUnknownTool  = errors.New("unknown tool")
	ErrMissingField = errors.New("property field missing")
)

// Surface is what the controller needs from a drawing surface: pointer
// listeners and the property-panel fields beside it.
type Surface interface {
	OnPointer(kind canvas.PointerKind, fn func(canvas.PointerEvent)) canvas.Listener
	Field(id string) (*canvas.Field, bool)
}

// Controller routes surface and panel input to the current tool.
type Controller struct {
	surface   Surface
	tools     []tool.Tool
	current   tool.Tool
	listeners []canvas.Listener

	gesture bool
	last    canvas.PointerEvent
}

// New: binds surface to tools; tools[0] becomes the current tool
func New(surface Surface, tools ...tool.Tool) (*Controller, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	if len(tools) == 0 {
		return nil, ErrNoTools
	}
	for i, t := range tools {
		if t == nil {
			return nil, fmt.Errorf("tool %d: %w", i, ErrNilTool)
		}
	}

	return &Controller{
		surface: surface,
		tools:   append([]tool.Tool(nil), tools...),
		current: tools[0],
	}, nil
}

// AttachListeners registers pointer listeners on the surface and change
// listeners on the width and colour fields. Calling it again while attached
// is a no-op; after DetachListeners it binds afresh.
func (c *Controller) AttachListeners() error {
	if c.Attached() {
		return nil
	}

	width, ok := c.surface.Field(canvas.WidthFieldID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingField, canvas.WidthFieldID)
	}
	color, ok := c.surface.Field(canvas.ColorFieldID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingField, canvas.ColorFieldID)
	}

	c.listeners = []canvas.Listener{
		c.surface.OnPointer(canvas.PointerDown, c.OnPointerDown),
		c.surface.OnPointer(canvas.PointerMove, c.OnPointerMove),
		c.surface.OnPointer(canvas.PointerUp, c.OnPointerUp),
		width.OnChange(c.OnWidthChange),
		color.OnChange(c.OnColorChange),
	}
	return nil
}

// DetachListeners: removes every listener AttachListeners registered
func (c *Controller) DetachListeners() {
	for _, l := range c.listeners {
		l.Remove()
	}
	c.listeners = nil
}

// Attached reports whether the listeners are currently registered.
func (c *Controller) Attached() bool {
	return len(c.listeners) > 0
}

func (c *Controller) OnPointerDown(evt canvas.PointerEvent) {
	c.gesture = true
	c.last = evt
	c.current.OnPointerDown(evt)
}

func (c *Controller) OnPointerMove(evt canvas.PointerEvent) {
	c.last = evt
	c.current.OnPointerMove(evt)
}

func (c *Controller) OnPointerUp(evt canvas.PointerEvent) {
	c.gesture = false
	c.last = evt
	c.current.OnPointerUp(evt)
}

// OnWidthChange forwards raw to the current tool if it parses as a number
// within [MinWidth, MaxWidth]. Anything else is dropped silently.
func (c *Controller) OnWidthChange(raw string) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	if !c.InputValidator(value, MinWidth, MaxWidth) {
		return
	}
	c.current.ChangeWidth(value)
}

// OnColorChange forwards raw to the current tool if it is a "#rrggbb"
// colour. Anything else is dropped silently.
func (c *Controller) OnColorChange(raw string) {
	if !c.ColorValidator(raw) {
		return
	}
	c.current.ChangeColor(raw)
}

func (c *Controller) InputValidator(value, min, max float64) bool {
	return validate.InRange(value, min, max)
}

func (c *Controller) ColorValidator(value string) bool {
	return validate.HexColor(value)
}

// SelectTool makes t the current tool. When a gesture is in progress the
// outgoing tool first receives a pointer-up at the last pointer position so
// it can finish its stroke; the rest of that gesture goes to t, which has
// not seen a pointer-down for it.
func (c *Controller) SelectTool(t tool.Tool) error {
	if t == nil {
		return ErrNilTool
	}
	if t == c.current {
		return nil
	}

	if c.gesture {
		up := c.last
		up.Kind = canvas.PointerUp
		c.current.OnPointerUp(up)
		c.gesture = false
	}
	c.current = t
	return nil
}

// SelectToolByName: selects the first tool from the construction list
// whose name matches
func (c *Controller) SelectToolByName(name string) error {
	for _, t := range c.tools {
		if tool.NameOf(t) == name {
			return c.SelectTool(t)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// CurrentTool returns the active tool; never nil.
func (c *Controller) CurrentTool() tool.Tool {
	return c.current
}

// Tools returns a copy of the construction-time tool list.
func (c *Controller) Tools() []tool.Tool {
	return append([]tool.Tool(nil), c.tools...)
}

// InGesture reports whether a pointer-down has been routed without its
// matching pointer-up.
func (c *Controller) InGesture() bool {
	return c.gesture
}
