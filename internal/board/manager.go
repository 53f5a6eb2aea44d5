package board

import (
	"errors"
	"sync"
	"time"

	"polypaint/internal/tool"
)

var (
	ErrCapacity  = errors.New("server at maximum board capacity")
	ErrBoardBusy = errors.New("board already in use")
)

// Options for boards created by a Manager
type Options struct {
	Width       int
	Height      int
	MaxBoards   int
	IdleTimeout time.Duration
	Palette     tool.Palette
}

// Manager keeps every live board
type Manager struct {
	boards map[string]*Board
	colors *ColorGenerator
	opts   Options
	mu     sync.RWMutex
}

func NewManager(opts Options) *Manager {
	return &Manager{
		boards: make(map[string]*Board),
		colors: NewColorGenerator(),
		opts:   opts,
	}
}

// Open claims the board with the given id when it is still alive, or
// creates and claims a fresh one. An empty or unknown id always creates.
func (m *Manager) Open(id string) (*Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.boards[id]; ok && id != "" {
		if !existing.Claim() {
			return nil, ErrBoardBusy
		}
		return existing, nil
	}

	if len(m.boards) >= m.opts.MaxBoards {
		return nil, ErrCapacity
	}

	b, err := New(GenerateID(), m.opts.Width, m.opts.Height, m.opts.Palette, m.colors.NextColor())
	if err != nil {
		return nil, err
	}
	b.Claim()
	m.boards[b.ID] = b
	return b, nil
}

// Get: looks up a live board
func (m *Manager) Get(id string) (*Board, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.boards[id]
	return b, ok
}

// Remove: closes and forgets a board
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	b, ok := m.boards[id]
	delete(m.boards, id)
	m.mu.Unlock()

	if ok {
		b.Close()
	}
}

// Cleanup removes boards nobody has driven for longer than IdleTimeout and
// returns how many were removed.
func (m *Manager) Cleanup() int {
	now := time.Now()

	m.mu.Lock()
	var expired []*Board
	for id, b := range m.boards {
		if b.expired(now, m.opts.IdleTimeout) {
			expired = append(expired, b)
			delete(m.boards, id)
		}
	}
	m.mu.Unlock()

	for _, b := range expired {
		b.Close()
	}
	return len(expired)
}

// Count returns the number of live boards.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.boards)
}
