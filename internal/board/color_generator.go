package board

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorGenerator: hands out well-spread starting ink colours, one per board
type ColorGenerator struct {
	counter int
	mu      sync.Mutex
}

func NewColorGenerator() *ColorGenerator {
	return &ColorGenerator{}
}

// NextColor: returns the next "#rrggbb" in the golden ratio hue sequence
func (cg *ColorGenerator) NextColor() string {
	cg.mu.Lock()
	defer cg.mu.Unlock()

	const goldenRatio = 0.618033988749895
	hue := float64(cg.counter) * goldenRatio
	hue = hue - float64(int(hue)) // Keep fractional part
	cg.counter++

	// darker than a cursor colour so strokes read well on white
	return colorful.Hsl(hue*360, 0.85, 0.40).Clamped().Hex()
}
