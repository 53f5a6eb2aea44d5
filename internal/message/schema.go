package message

import "polypaint/internal/canvas"

// Inbound message types
const (
	TypeOpen        = "open"
	TypePointerDown = "pointerdown"
	TypePointerMove = "pointermove"
	TypePointerUp   = "pointerup"
	TypeWidth       = "width"
	TypeColor       = "color"
	TypeSelectTool  = "selectTool"
	TypeTools       = "tools"
)

// Outbound message types
const (
	TypeReady        = "ready"
	TypeToolList     = "tools"
	TypeToolSelected = "toolSelected"
	TypeError        = "error"
)

// Validation limits
const (
	MaxCoordinate  = 1000000
	MinCoordinate  = -1000000
	MaxValueLength = 50
	MaxNameLength  = 50
	MaxBoardLength = 64
)

// schemaFor: empty schema struct for an inbound type, nil if unknown
func schemaFor(msgType string) interface{} {
	switch msgType {
	case TypeOpen:
		return &Open{}
	case TypePointerDown, TypePointerMove, TypePointerUp:
		return &Pointer{}
	case TypeWidth, TypeColor:
		return &Property{}
	case TypeSelectTool:
		return &SelectTool{}
	case TypeTools:
		return &Tools{}
	default:
		return nil
	}
}

// =============================================================================
// Inbound
// =============================================================================

// Open is the first frame on a connection. Board resumes an existing board.
type Open struct {
	Board string `json:"board,omitempty" validate:"omitempty,max=64,alphanum"`
}

// Pointer carries surface-relative coordinates.
type Pointer struct {
	X *float64 `json:"x" validate:"required,min=-1000000,max=1000000"`
	Y *float64 `json:"y" validate:"required,min=-1000000,max=1000000"`
}

// Event: converts to a canvas pointer event of the given kind
func (p *Pointer) Event(kind canvas.PointerKind) canvas.PointerEvent {
	return canvas.PointerEvent{Kind: kind, X: *p.X, Y: *p.Y}
}

// Property is a raw property-panel value. It is deliberately not checked
// beyond its length: the controller owns width and colour validation.
type Property struct {
	Value string `json:"value" validate:"max=50"`
}

type SelectTool struct {
	Name string `json:"name" validate:"required,max=50"`
}

type Tools struct{}

// =============================================================================
// Outbound
// =============================================================================

type Ready struct {
	Type     string   `json:"type"`
	Board    string   `json:"board"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Tools    []string `json:"tools"`
	Current  string   `json:"current"`
	MinWidth float64  `json:"minWidth"`
	MaxWidth float64  `json:"maxWidth"`
}

type ToolList struct {
	Type    string   `json:"type"`
	Tools   []string `json:"tools"`
	Current string   `json:"current"`
}

type ToolSelected struct {
	Type    string `json:"type"`
	Current string `json:"current"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
