package canvas

// Field is a property-panel input: it holds a raw string value and notifies
// change listeners when the host commits an edit with Change.
type Field struct {
	id       string
	value    string
	handlers []changeHandler
	nextID   uint32
}

type changeHandler struct {
	id uint32
	fn func(value string)
}

// NewField: creates an empty field identified by id
func NewField(id string) *Field {
	return &Field{id: id}
}

// ID returns the field identifier (e.g. "input-width").
func (f *Field) ID() string {
	return f.id
}

// Value returns the current raw value.
func (f *Field) Value() string {
	return f.value
}

// Set: replaces the raw value without notifying listeners
func (f *Field) Set(value string) {
	f.value = value
}

// OnChange: registers fn to run on every Change
func (f *Field) OnChange(fn func(value string)) Listener {
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, changeHandler{id: id, fn: fn})
	return Listener{id: id, remove: f.removeHandler}
}

// Change fires the change listeners, in registration order, with the
// current value.
func (f *Field) Change() {
	handlers := make([]changeHandler, len(f.handlers))
	copy(handlers, f.handlers)

	for _, h := range handlers {
		h.fn(f.value)
	}
}

// ListenerCount returns the number of live change listeners.
func (f *Field) ListenerCount() int {
	return len(f.handlers)
}

func (f *Field) removeHandler(id uint32) {
	for i, h := range f.handlers {
		if h.id == id {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}
