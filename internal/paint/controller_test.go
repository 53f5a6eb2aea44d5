package paint

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"polypaint/internal/canvas"
	"polypaint/internal/tool"
)

// recorder is a Tool that logs every call it receives.
type recorder struct {
	name   string
	calls  []string
	events []canvas.PointerEvent
	widths []float64
	colors []string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) OnPointerDown(evt canvas.PointerEvent) {
	r.calls = append(r.calls, "down")
	r.events = append(r.events, evt)
}

func (r *recorder) OnPointerMove(evt canvas.PointerEvent) {
	r.calls = append(r.calls, "move")
	r.events = append(r.events, evt)
}

func (r *recorder) OnPointerUp(evt canvas.PointerEvent) {
	r.calls = append(r.calls, "up")
	r.events = append(r.events, evt)
}

func (r *recorder) ChangeWidth(width float64) {
	r.calls = append(r.calls, "width")
	r.widths = append(r.widths, width)
}

func (r *recorder) ChangeColor(hex string) {
	r.calls = append(r.calls, "color")
	r.colors = append(r.colors, hex)
}

func setup(t *testing.T, tools ...tool.Tool) (*Controller, *canvas.Surface) {
	t.Helper()
	surface, _, err := canvas.Load(50, 50)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, err := New(surface, tools...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.AttachListeners(); err != nil {
		t.Fatalf("AttachListeners: %v", err)
	}
	return c, surface
}

func field(t *testing.T, s *canvas.Surface, id string) *canvas.Field {
	t.Helper()
	f, ok := s.Field(id)
	if !ok {
		t.Fatalf("field %s missing", id)
	}
	return f
}

func mustContext(t *testing.T) *gg.Context {
	t.Helper()
	return gg.NewContext(10, 10)
}

func changeField(t *testing.T, s *canvas.Surface, id, value string) {
	t.Helper()
	f := field(t, s, id)
	f.Set(value)
	f.Change()
}

func TestNew(t *testing.T) {
	stub := &recorder{name: "toolStub"}
	c, _ := setup(t, stub, &recorder{name: "other"})

	if c.CurrentTool() != stub {
		t.Errorf("expected first tool to be current, got %v", c.CurrentTool())
	}
	if n := len(c.Tools()); n != 2 {
		t.Errorf("expected 2 tools, got %d", n)
	}
}

func TestNew_ContractViolations(t *testing.T) {
	surface, _, err := canvas.Load(10, 10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := New(surface); !errors.Is(err, ErrNoTools) {
		t.Errorf("expected ErrNoTools, got %v", err)
	}
	if _, err := New(surface, &recorder{}, nil); !errors.Is(err, ErrNilTool) {
		t.Errorf("expected ErrNilTool, got %v", err)
	}
	if _, err := New(nil, &recorder{}); !errors.Is(err, ErrNilSurface) {
		t.Errorf("expected ErrNilSurface, got %v", err)
	}
}

func TestAttachListeners_MissingField(t *testing.T) {
	surface := canvas.NewSurface(mustContext(t))
	surface.AddField(canvas.NewField(canvas.WidthFieldID))

	c, err := New(surface, &recorder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.AttachListeners(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	if c.Attached() {
		t.Error("expected nothing attached after a failed attach")
	}
	if n := surface.ListenerCount(canvas.PointerDown); n != 0 {
		t.Errorf("expected no pointer listeners, got %d", n)
	}
}

func TestPointerDispatch(t *testing.T) {
	tests := []struct {
		kind canvas.PointerKind
		want string
	}{
		{canvas.PointerDown, "down"},
		{canvas.PointerMove, "move"},
		{canvas.PointerUp, "up"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			stub := &recorder{}
			_, surface := setup(t, stub)

			surface.Dispatch(canvas.PointerEvent{Kind: tt.kind, X: 3, Y: 4})

			if len(stub.calls) != 1 || stub.calls[0] != tt.want {
				t.Fatalf("expected [%s], got %v", tt.want, stub.calls)
			}
			if e := stub.events[0]; e.X != 3 || e.Y != 4 {
				t.Errorf("expected coordinates (3,4), got (%v,%v)", e.X, e.Y)
			}
		})
	}
}

func TestPointerDispatch_GestureOrder(t *testing.T) {
	stub := &recorder{}
	_, surface := setup(t, stub)

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown, X: 1, Y: 1})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerMove, X: 2, Y: 1})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp, X: 2, Y: 1})

	if got := fmt.Sprint(stub.calls); got != "[down move up]" {
		t.Errorf("expected [down move up], got %s", got)
	}
}

func TestAttachListeners_Idempotent(t *testing.T) {
	stub := &recorder{}
	c, surface := setup(t, stub)

	if err := c.AttachListeners(); err != nil {
		t.Fatalf("second AttachListeners: %v", err)
	}

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown})
	changeField(t, surface, canvas.WidthFieldID, "5")

	if got := fmt.Sprint(stub.calls); got != "[down width]" {
		t.Errorf("expected each handler once, got %s", got)
	}
}

func TestDetachListeners(t *testing.T) {
	stub := &recorder{}
	c, surface := setup(t, stub)

	c.DetachListeners()
	c.DetachListeners()

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerMove})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp})
	changeField(t, surface, canvas.WidthFieldID, "5")
	changeField(t, surface, canvas.ColorFieldID, "#00ff00")

	if len(stub.calls) != 0 {
		t.Errorf("expected no calls after detach, got %v", stub.calls)
	}
	if c.Attached() {
		t.Error("expected Attached to be false")
	}
	if n := field(t, surface, canvas.ColorFieldID).ListenerCount(); n != 0 {
		t.Errorf("expected no colour listeners, got %d", n)
	}

	if err := c.AttachListeners(); err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp})
	if got := fmt.Sprint(stub.calls); got != "[up]" {
		t.Errorf("expected one call after re-attach, got %s", got)
	}
}

func TestWidthChange(t *testing.T) {
	tests := []struct {
		raw   string
		calls int
		want  float64
	}{
		{"10", 1, 10},
		{"0", 1, 0},
		{"5.5", 1, 5.5},
		{" 7 ", 1, 7},
		{"12", 0, 0},
		{"-1", 0, 0},
		{"10.01", 0, 0},
		{"", 0, 0},
		{"abc", 0, 0},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			stub := &recorder{}
			_, surface := setup(t, stub)

			changeField(t, surface, canvas.WidthFieldID, tt.raw)

			if len(stub.widths) != tt.calls {
				t.Fatalf("expected %d ChangeWidth calls, got %d", tt.calls, len(stub.widths))
			}
			if tt.calls == 1 && stub.widths[0] != tt.want {
				t.Errorf("expected width %v, got %v", tt.want, stub.widths[0])
			}
		})
	}
}

func TestColorChange(t *testing.T) {
	tests := []struct {
		raw   string
		calls int
	}{
		{"#00ff00", 1},
		{"#FFAA00", 1},
		{"allo", 0},
		{"#rrggbb", 0},
		{"#fff", 0},
		{"00ff00", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			stub := &recorder{}
			_, surface := setup(t, stub)

			changeField(t, surface, canvas.ColorFieldID, tt.raw)

			if len(stub.colors) != tt.calls {
				t.Fatalf("expected %d ChangeColor calls, got %d", tt.calls, len(stub.colors))
			}
			if tt.calls == 1 && stub.colors[0] != tt.raw {
				t.Errorf("expected %q, got %q", tt.raw, stub.colors[0])
			}
		})
	}
}

func TestValidators(t *testing.T) {
	c, _ := setup(t, &recorder{})

	if !c.InputValidator(5, 0, 10) {
		t.Error("expected 5 to be within [0,10]")
	}
	if !c.InputValidator(0, 0, 10) || !c.InputValidator(10, 0, 10) {
		t.Error("expected bounds to be inclusive")
	}
	if c.InputValidator(-5, 0, 10) || c.InputValidator(15, 0, 10) {
		t.Error("expected out-of-range values to be rejected")
	}
	if !c.ColorValidator("#0000ff") {
		t.Error("expected #0000ff to be valid")
	}
	if c.ColorValidator("#rrggbb") {
		t.Error("expected #rrggbb to be invalid")
	}
}

func TestChangesGoToCurrentTool(t *testing.T) {
	first, second := &recorder{name: "first"}, &recorder{name: "second"}
	c, surface := setup(t, first, second)

	if err := c.SelectTool(second); err != nil {
		t.Fatalf("SelectTool: %v", err)
	}
	changeField(t, surface, canvas.ColorFieldID, "#00ff00")
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown})

	if len(first.calls) != 0 {
		t.Errorf("expected no calls on the previous tool, got %v", first.calls)
	}
	if got := fmt.Sprint(second.calls); got != "[color down]" {
		t.Errorf("expected [color down], got %s", got)
	}
}

func TestSelectTool(t *testing.T) {
	first := &recorder{name: "first"}
	c, _ := setup(t, first)

	if err := c.SelectTool(nil); !errors.Is(err, ErrNilTool) {
		t.Errorf("expected ErrNilTool, got %v", err)
	}
	if c.CurrentTool() != first {
		t.Error("expected a rejected selection to leave the current tool alone")
	}

	external := &recorder{name: "external"}
	if err := c.SelectTool(external); err != nil {
		t.Fatalf("SelectTool: %v", err)
	}
	if c.CurrentTool() != external {
		t.Error("expected a host-assigned tool to become current")
	}
}

func TestSelectToolByName(t *testing.T) {
	first, second := &recorder{name: "pencil"}, &recorder{name: "eraser"}
	c, _ := setup(t, first, second)

	if err := c.SelectToolByName("eraser"); err != nil {
		t.Fatalf("SelectToolByName: %v", err)
	}
	if c.CurrentTool() != second {
		t.Error("expected eraser to be current")
	}
	if err := c.SelectToolByName("spray"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
	if c.CurrentTool() != second {
		t.Error("expected an unknown name to leave the current tool alone")
	}
}

func TestSelectTool_MidGestureFlushesOutgoingTool(t *testing.T) {
	first, second := &recorder{name: "first"}, &recorder{name: "second"}
	c, surface := setup(t, first, second)

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown, X: 1, Y: 1})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerMove, X: 7, Y: 8})
	if !c.InGesture() {
		t.Fatal("expected a gesture in progress")
	}

	if err := c.SelectTool(second); err != nil {
		t.Fatalf("SelectTool: %v", err)
	}
	if c.InGesture() {
		t.Error("expected the gesture to be closed by the switch")
	}
	if got := fmt.Sprint(first.calls); got != "[down move up]" {
		t.Fatalf("expected outgoing tool to see [down move up], got %s", got)
	}
	if up := first.events[2]; up.Kind != canvas.PointerUp || up.X != 7 || up.Y != 8 {
		t.Errorf("expected synthetic pointer-up at (7,8), got %+v", up)
	}

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp, X: 9, Y: 9})
	if got := fmt.Sprint(second.calls); got != "[up]" {
		t.Errorf("expected the rest of the gesture on the new tool, got %s", got)
	}
	if got := fmt.Sprint(first.calls); got != "[down move up]" {
		t.Errorf("expected no further calls on the outgoing tool, got %s", got)
	}
}

func TestSelectTool_BetweenGesturesDoesNotFlush(t *testing.T) {
	first, second := &recorder{name: "first"}, &recorder{name: "second"}
	c, surface := setup(t, first, second)

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp})
	if err := c.SelectTool(second); err != nil {
		t.Fatalf("SelectTool: %v", err)
	}

	if got := fmt.Sprint(first.calls); got != "[down up]" {
		t.Errorf("expected no synthetic pointer-up, got %s", got)
	}
}

func TestEndToEnd_PencilRendersThroughController(t *testing.T) {
	surface, dc, err := canvas.Load(100, 100)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pencil := tool.NewPencil("pencil", 5, dc)
	c, err := New(surface, pencil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.AttachListeners(); err != nil {
		t.Fatalf("AttachListeners: %v", err)
	}

	changeField(t, surface, canvas.ColorFieldID, "#ff00ff")
	if pencil.Color() != "#ff00ff" {
		t.Fatalf("expected pencil colour #ff00ff, got %q", pencil.Color())
	}

	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerDown, X: 10, Y: 10})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerMove, X: 20, Y: 10})
	surface.Dispatch(canvas.PointerEvent{Kind: canvas.PointerUp, X: 20, Y: 10})

	got := color.RGBAModel.Convert(surface.At(15, 10)).(color.RGBA)
	if got != (color.RGBA{R: 255, G: 0, B: 255, A: 255}) {
		t.Errorf("expected pixel (15,10) to be [255 0 255 255], got %v", got)
	}
}

func TestEndToEnd_WidthChangeReachesPencil(t *testing.T) {
	surface, dc, err := canvas.Load(20, 20)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pencil := tool.NewPencil("pencil", 1, dc)
	_, _ = setupWith(t, surface, pencil)

	changeField(t, surface, canvas.WidthFieldID, "10")
	changeField(t, surface, canvas.WidthFieldID, "12")

	if pencil.Width() != 10 {
		t.Errorf("expected width 10, got %v", pencil.Width())
	}
}

func setupWith(t *testing.T, surface *canvas.Surface, tools ...tool.Tool) (*Controller, *canvas.Surface) {
	t.Helper()
	c, err := New(surface, tools...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.AttachListeners(); err != nil {
		t.Fatalf("AttachListeners: %v", err)
	}
	return c, surface
}
