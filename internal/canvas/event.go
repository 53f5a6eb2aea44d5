package canvas

// PointerKind identifies a pointer lifecycle event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	default:
		return "unknown"
	}
}

// PointerEvent: pointer position relative to the surface's top-left corner
type PointerEvent struct {
	Kind PointerKind
	X    float64
	Y    float64
}

// Listener is the handle returned by every registration on a Surface or
// Field. Remove unregisters the callback; removing twice is a no-op.
type Listener struct {
	id     uint32
	remove func(id uint32)
}

// Remove: unregisters the callback so it no longer fires
func (l Listener) Remove() {
	if l.remove == nil {
		return
	}
	l.remove(l.id)
}
