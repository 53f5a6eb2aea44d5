// Package board pairs one drawing surface with one controller for a single
// client, and keeps the set of live boards.
package board

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"polypaint/internal/canvas"
	"polypaint/internal/paint"
	"polypaint/internal/tool"
)

// Board is a surface, its tools and the controller routing input to them.
// All access to the surface and controller goes through the board lock.
type Board struct {
	ID string

	surface    *canvas.Surface
	controller *paint.Controller

	claimed    bool
	createdAt  time.Time
	lastActive time.Time
	mu         sync.Mutex
}

// New: loads a width x height surface, builds the palette's tools with ink
// as their starting colour and attaches a controller to it
func New(id string, width, height int, palette tool.Palette, ink string) (*Board, error) {
	surface, dc, err := canvas.Load(width, height)
	if err != nil {
		return nil, fmt.Errorf("load surface: %w", err)
	}

	tools, err := palette.Build(dc, ink)
	if err != nil {
		return nil, fmt.Errorf("build tools: %w", err)
	}

	controller, err := paint.New(surface, tools...)
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	if err := controller.AttachListeners(); err != nil {
		return nil, fmt.Errorf("attach listeners: %w", err)
	}

	now := time.Now()
	return &Board{
		ID:         id,
		surface:    surface,
		controller: controller,
		createdAt:  now,
		lastActive: now,
	}, nil
}

// Do runs fn with exclusive access to the surface and controller.
func (b *Board) Do(fn func(*canvas.Surface, *paint.Controller)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fn(b.surface, b.controller)
	b.lastActive = time.Now()
}

// Snapshot: writes the surface as PNG
func (b *Board) Snapshot(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.surface.EncodePNG(w)
}

// Size returns the surface dimensions.
func (b *Board) Size() (int, int) {
	return b.surface.Width(), b.surface.Height()
}

// ToolNames: names of the board's tools and of the current one
func (b *Board) ToolNames() ([]string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tools := b.controller.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = tool.NameOf(t)
	}
	return names, tool.NameOf(b.controller.CurrentTool())
}

// Claim: marks the board as driven by a client. False if already claimed.
func (b *Board) Claim() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.claimed {
		return false
	}
	b.claimed = true
	b.lastActive = time.Now()
	return true
}

// Release: frees the board for a later resume
func (b *Board) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.claimed = false
	b.lastActive = time.Now()
}

// Close detaches the controller's listeners. The board is unusable after.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.controller.DetachListeners()
}

// expired: unclaimed and idle for longer than idle
func (b *Board) expired(now time.Time, idle time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.claimed && now.Sub(b.lastActive) > idle
}

// GenerateID generates a random board identifier
func GenerateID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
