package tool

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"polypaint/internal/validate"
)

// Tool kinds accepted in a palette.
const (
	KindPencil    = "pencil"
	KindEraser    = "eraser"
	KindLine      = "line"
	KindRectangle = "rectangle"
	KindEllipse   = "ellipse"
)

// Spec describes one palette entry.
type Spec struct {
	Name  string  `yaml:"name" validate:"required,max=50"`
	Kind  string  `yaml:"kind" validate:"required,oneof=pencil eraser line rectangle ellipse"`
	Width float64 `yaml:"width" validate:"gt=0,lte=1000"`
	Color string  `yaml:"color,omitempty" validate:"omitempty,len=7,hexcolor"`
}

// Palette: ordered tool list, the first entry is the default tool
type Palette struct {
	Tools []Spec `yaml:"tools" validate:"required,min=1,dive"`
}

var specValidator = validator.New(validator.WithRequiredStructEnabled())

// DefaultPalette returns the built-in tool set.
func DefaultPalette() Palette {
	return Palette{Tools: []Spec{
		{Name: "pencil", Kind: KindPencil, Width: 1},
		{Name: "eraser", Kind: KindEraser, Width: 10},
		{Name: "line", Kind: KindLine, Width: 2},
		{Name: "rectangle", Kind: KindRectangle, Width: 2},
		{Name: "ellipse", Kind: KindEllipse, Width: 2},
	}}
}

// LoadPalette reads and validates a YAML palette file.
func LoadPalette(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read palette %s: %w", path, err)
	}
	return ParsePalette(data)
}

// ParsePalette decodes and validates a YAML palette.
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("decode palette: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}
	return p, nil
}

// Validate: checks every entry and rejects duplicate names
func (p Palette) Validate() error {
	if err := specValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid palette: '%s' failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid palette: %w", err)
	}

	seen := make(map[string]bool, len(p.Tools))
	for _, s := range p.Tools {
		if seen[s.Name] {
			return fmt.Errorf("invalid palette: duplicate tool name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Build instantiates the palette's tools against dc. ink, when it is a
// valid colour, is the starting colour of every entry that sets none.
func (p Palette) Build(dc *gg.Context, ink string) ([]Tool, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tools := make([]Tool, 0, len(p.Tools))
	for _, s := range p.Tools {
		t, err := New(s, dc)
		if err != nil {
			return nil, err
		}

		switch {
		case s.Color != "":
			t.ChangeColor(s.Color)
		case validate.HexColor(ink):
			t.ChangeColor(ink)
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// New: instantiates a single tool from its spec
func New(s Spec, dc *gg.Context) (Tool, error) {
	switch s.Kind {
	case KindPencil:
		return NewPencil(s.Name, s.Width, dc), nil
	case KindEraser:
		return NewEraser(s.Name, s.Width, dc), nil
	case KindLine:
		return NewLine(s.Name, s.Width, dc), nil
	case KindRectangle:
		return NewRectangle(s.Name, s.Width, dc), nil
	case KindEllipse:
		return NewEllipse(s.Name, s.Width, dc), nil
	default:
		return nil, fmt.Errorf("unknown tool kind: %s", s.Kind)
	}
}
